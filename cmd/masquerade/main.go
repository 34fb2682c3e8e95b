package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the masquerade server"`
	Client  ClientCmd        `cmd:"" help:"Connect with the terminal client"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("masquerade"),
		kong.Description("Server-authoritative social deduction at a masked ball"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
