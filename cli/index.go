package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/taintflow/analyzer/flow"
	"github.com/viant/taintflow/config"
	"github.com/viant/taintflow/observability"
	"github.com/viant/taintflow/repository"
	"go.uber.org/zap"
)

func (c *command) indexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index <dir>",
		Short: "Analyse every supported source file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if project, err := repository.New().DetectProject(root); err == nil {
				fmt.Fprintf(c.stderr, "project %s (%s) at %s\n", project.Name, project.Type, project.RootPath)
			} else {
				observability.GetLogger().Debug("project detection", zap.String("root", root), zap.Error(err))
			}
			batch, err := c.analyzer().AnalyzeDir(cmd.Context(), root)
			if err != nil {
				return fail(ExitFailure, err)
			}
			if c.config.Format != config.FormatText {
				if err := c.write(batch.Graphs...); err != nil {
					return fail(ExitFailure, err)
				}
			} else {
				for _, graph := range batch.Graphs {
					containers, nodes, edges := summarize(graph)
					fmt.Fprintf(c.stdout, "%s language=%s containers=%d nodes=%d edges=%d\n", graph.Path, graph.Language, containers, nodes, edges)
				}
			}
			for _, failure := range batch.Failures {
				fmt.Fprintf(c.stderr, "failed %v\n", failure)
			}
			fmt.Fprintf(c.stderr, "indexed %d files, %d failed in %s\n", len(batch.Graphs), len(batch.Failures), batch.Elapsed)
			return nil
		},
	}
}

func summarize(graph *flow.Graph) (containers, nodes, edges int) {
	graph.Walk(func(c *flow.Container) bool {
		containers++
		return true
	})
	nodes = graph.Len()
	for i := 0; i < nodes; i++ {
		edges += len(graph.Node(flow.NodeID(i)).Outbound())
	}
	return containers, nodes, edges
}
