package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/shopgraph/internal/graph"
)

func cmdSchema() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), graph.SDL)
		},
	}
}
