package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/config"
	"github.com/TwigBush/shopgraph/internal/seed"
	"github.com/TwigBush/shopgraph/internal/store/pgstore"
)

func cmdSeed() *cobra.Command {
	var reset bool
	var file string
	c := &cobra.Command{
		Use:   "seed",
		Short: "Import the demo data set into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()
			if cfg.Store != config.StorePostgres {
				return errNeedsPostgres
			}

			d, err := loadSeed(file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := pgstore.Connect(ctx, cfg.DatabaseURL, pgstore.Options{MaxConns: 2})
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Migrate(ctx); err != nil {
				return err
			}
			if reset {
				if err := seed.Reset(ctx, s); err != nil {
					return err
				}
				log.Info("seed_reset")
			}
			n, err := seed.Load(ctx, s, auth.Passwords{Cost: cfg.Auth.BcryptCost}, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", n)
			return nil
		},
	}
	c.Flags().BoolVar(&reset, "reset", false, "delete all existing data first")
	c.Flags().StringVarP(&file, "file", "f", "", "YAML data set to import instead of the built-in demo data")
	return c
}

func loadSeed(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Demo()
	}
	b, err := osReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return seed.Parse(b)
}
