package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/shopgraph/internal/config"
	"github.com/TwigBush/shopgraph/internal/store/pgstore"
)

var errNeedsPostgres = errors.New("this command needs store: postgres and a database_url")

func cmdMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()
			if cfg.Store != config.StorePostgres {
				return errNeedsPostgres
			}
			s, err := pgstore.Connect(cmd.Context(), cfg.DatabaseURL, pgstore.Options{MaxConns: 2})
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("migrated")
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
