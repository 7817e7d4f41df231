// Package config loads and validates the blogbuilder configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Paths    PathsConfig    `yaml:"paths"`
	LinkedIn LinkedInConfig `yaml:"linkedin,omitempty"`
}

// SiteConfig describes the generated site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url"`
}

// PathsConfig holds the directories of a site workspace, all relative to the
// base directory the build runs in.
type PathsConfig struct {
	Output    string `yaml:"output"`
	Posts     string `yaml:"posts"`
	Static    string `yaml:"static"`
	Templates string `yaml:"templates,omitempty"`
}

// LinkedInConfig configures the optional share command. The token is normally
// supplied via the LINKEDIN_ACCESS_TOKEN env var, expanded at load time.
type LinkedInConfig struct {
	AccessToken string `yaml:"access_token,omitempty"`
	AuthorURN   string `yaml:"author_urn,omitempty"`
}

// Load loads configuration from the specified file.
//
// A .env / .env.local file is loaded first (without overriding the process
// environment), then environment variables in the YAML content are expanded,
// defaults are applied, and the path fields are validated.
func Load(configPath string) (*Config, error) {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err == nil {
				break
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "public"
	}
	if c.Paths.Posts == "" {
		c.Paths.Posts = "posts"
	}
	if c.Paths.Static == "" {
		c.Paths.Static = "static"
	}
	if c.Paths.Templates == "" {
		c.Paths.Templates = "templates"
	}
}

// Validate runs the syntactic path checks on every configured directory.
// Semantic checks (resolution, containment, overlap) happen in the site
// generator, which knows the base directory.
func (c *Config) Validate() error {
	if err := CheckRelativePath(RoleOutputDir, c.Paths.Output); err != nil {
		return err
	}
	if err := CheckRelativePath(RolePostsDir, c.Paths.Posts); err != nil {
		return err
	}
	if err := CheckRelativePath(RoleStaticDir, c.Paths.Static); err != nil {
		return err
	}
	if c.Paths.Templates != "" {
		if err := CheckRelativePath(RoleTemplatesDir, c.Paths.Templates); err != nil {
			return err
		}
	}
	return nil
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:       "My Blog",
			Description: "Notes and longer writeups",
			BaseURL:     "https://blog.example.com",
		},
		Paths: PathsConfig{
			Output: "public",
			Posts:  "posts",
			Static: "static",
		},
		LinkedIn: LinkedInConfig{
			AccessToken: "${LINKEDIN_ACCESS_TOKEN}",
			AuthorURN:   "urn:li:person:CHANGEME",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
