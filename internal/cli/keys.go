package cli

import "github.com/spf13/cobra"

func cmdKeys() *cobra.Command {
	c := &cobra.Command{
		Use:   "keys",
		Short: "Signing key management",
	}
	c.AddCommand(cmdKeysNew())
	return c
}
