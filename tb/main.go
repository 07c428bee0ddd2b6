package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/taxbook/cmd"
	"github.com/etnz/taxbook/logger"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("tb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx := logger.WithContext(context.Background(), logger.New(*cmd.Verbose))

	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if ok, code := cmd.RunExtension(ctx, name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(ctx)))
}
