package main

import (
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
	"github.com/alecthomas/kong"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("blogbuilder"),
		kong.Description("Build a static blog from Markdown posts."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	ctx.FatalIfErrorf(err)
}
