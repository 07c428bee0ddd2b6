package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion: global
// flags and every subcommand with its own flags.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"book": predict.Dirs("*"),
			"v":    predict.Nothing,
			"raw":  predict.Nothing,
		},
	}
	for _, list := range [][]subcommands.Command{Commands, BookCommands} {
		for _, sub := range list {
			c.Sub[sub.Name()] = subCompletion(sub)
		}
	}
	return c
}

func subCompletion(sub subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
	sub.SetFlags(fs)
	c := &complete.Command{Flags: make(map[string]complete.Predictor)}
	fs.VisitAll(func(f *flag.Flag) {
		c.Flags[f.Name] = predict.Something
	})
	return c
}
