package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/viant/taintflow/analyzer/grammar"
	"github.com/viant/taintflow/config"
	"github.com/viant/taintflow/source"
)

func (c *command) graphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the data-flow graph and taint sources of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.analyzer()
			unit, err := a.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return fail(ExitFailure, err)
			}
			defer unit.Close()
			graph := a.Graph(unit)
			if err := c.write(graph); err != nil {
				return fail(ExitFailure, err)
			}

			matcher, err := source.NewMatcher(unit.Grammar, c.config.Rules(unit.Grammar.Name)...)
			if errors.Is(err, grammar.ErrUnsupported) {
				return fail(ExitNoSource, err)
			}
			if err != nil {
				return fail(ExitFailure, err)
			}
			defer matcher.Close()
			tainted, err := source.Resolve(graph, matcher.Match(unit.Root(), unit.Code))
			if errors.Is(err, source.ErrNoMatch) {
				return fail(ExitNoSource, err)
			}
			if err != nil {
				return fail(ExitFailure, err)
			}
			out := c.stdout
			if c.config.Format != config.FormatText {
				out = c.stderr
			}
			return printSources(out, tainted)
		},
	}
}

func printSources(w io.Writer, tainted []*source.Tainted) error {
	for _, t := range tainted {
		if _, err := fmt.Fprintf(w, "[source] method=%s param=%s type=%s at=%s\n", t.Method, t.Parameter, t.Type, t.Address()); err != nil {
			return err
		}
	}
	return nil
}
