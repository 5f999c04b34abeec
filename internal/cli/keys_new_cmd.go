package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func cmdKeysNew() *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:   "new",
		Short: "Generate an ES384 signing key as JWK and print its key id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return err
			}
			path, kid, err := generateKey(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nKey ID: %s\nUse it with SHOPGRAPH_AUTH_SIGNING_KEY=%s\n", path, kid, path)
			return nil
		},
	}
	c.Flags().StringVar(&dir, "dir", "keys", "directory to write the key pair into")
	return c
}
