package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "shopgraph",
	Short: "shopgraph GraphQL storefront API",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "shopgraph.yaml", "config file path, missing file falls back to defaults and SHOPGRAPH_* env")

	rootCmd.AddCommand(cmdServe(), cmdMigrate(), cmdSeed(), cmdToken(), cmdKeys(), cmdSchema(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show help",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().Help()
		},
	})
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Use -h for help, for example: shopgraph serve --addr :4000")
	}
}
