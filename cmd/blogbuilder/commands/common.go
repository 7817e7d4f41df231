package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blog.yaml"`
	Dir     string           `short:"C" help:"Base directory of the blog workspace" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site once and exit"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on changes"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild on changes without serving"`
	Init    InitCmd    `cmd:"" help:"Initialize a new blog workspace"`
	Share   ShareCmd   `cmd:"" help:"Announce the newest post on LinkedIn"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// ConfigPath resolves the configuration file path against the base directory.
func (c *CLI) ConfigPath() string {
	if filepath.IsAbs(c.Config) {
		return c.Config
	}
	return filepath.Join(c.Dir, c.Config)
}

// LoadConfig loads and validates the configuration for the workspace.
func (c *CLI) LoadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath())
}

// WatchConfigPath returns the config path relative to the base directory for
// change tracking, or "" when the file lives outside the workspace.
func (c *CLI) WatchConfigPath() string {
	if !filepath.IsAbs(c.Config) {
		return filepath.Clean(c.Config)
	}
	base, err := filepath.Abs(c.Dir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(base, c.Config)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}

// parseLogLevel determines the log level from the verbose flag and the
// BLOGBUILDER_LOG_LEVEL environment variable. The flag wins.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("BLOGBUILDER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
