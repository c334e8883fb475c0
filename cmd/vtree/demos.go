package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/internal/errors"
)

func demosCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the built-in demo trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(g.stdout, 0, 4, 2, ' ', 0)
			for _, name := range demo.Names() {
				d, _ := demo.Lookup(name)
				fmt.Fprintf(tw, "  %s\t%s\n", d.Name, d.Description)
			}
			return tw.Flush()
		},
	}
}

// lookupDemo resolves a demo name or returns a coded error.
func lookupDemo(name string) (demo.Demo, error) {
	d, ok := demo.Lookup(name)
	if !ok {
		return demo.Demo{}, errors.New("E150").
			WithDetail(fmt.Sprintf("No demo named %q.", name)).
			WithSuggestion("Run 'vtree demos' to list the available trees")
	}
	return d, nil
}
