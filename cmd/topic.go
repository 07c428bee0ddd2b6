package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxbook/docs"
	"github.com/google/subcommands"
)

// topicCmd displays the user manual.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display a topic of the user manual" }
func (*topicCmd) Usage() string {
	return `tb topic [<topic>...]

  Displays the user manual topics, or the list of topics. "*" displays them all.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{""}
	}
	md, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
