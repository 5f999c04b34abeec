package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/shopgraph/internal/types"
)

// cmdToken mints a credential with the server's signing settings, for
// calling guarded mutations from curl or a GraphQL client.
func cmdToken() *cobra.Command {
	var id int64
	var role string
	c := &cobra.Command{
		Use:   "token",
		Short: "Print a signed credential for a user id and role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			p := types.Principal{ID: id, Role: types.Role(role)}
			if p.ID <= 0 {
				return fmt.Errorf("--id must be a positive user id")
			}
			if !p.Role.Valid() {
				return fmt.Errorf("--role must be %q or %q", types.RoleUser, types.RoleAdmin)
			}
			tokens, err := newTokens(cfg)
			if err != nil {
				return err
			}
			tok, err := tokens.Issue(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	c.Flags().Int64Var(&id, "id", 0, "user id the credential speaks for")
	c.Flags().StringVar(&role, "role", string(types.RoleUser), "user or admin")
	return c
}
