package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoizo-api/internal/application/migration"
	"github.com/jhoicas/invoizo-api/internal/bootstrap"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and backfill legacy invoices",
	Long: `Applies the PostgreSQL schema (idempotent) and fills defaults on invoices created
before the lifecycle and GST fields existed: status=DRAFT, transactionType=INTRA_STATE
and zeroed gstDetails.`,
	Example: `  invoizoctl migrate
  invoizoctl migrate --schema-only`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("schema-only", false, "Apply the schema without backfilling data")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	schemaOnly, _ := cmd.Flags().GetBool("schema-only")
	ctx := cmd.Context()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DB.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return err
		}
		err = postgres.Migrate(ctx, pool)
		pool.Close()
		if err != nil {
			return err
		}
		log.Info().Msg("schema applied")
	}
	if schemaOnly {
		return nil
	}

	return withContainer(ctx, func(c *bootstrap.Container) error {
		res, err := migration.Backfill(ctx, c.Store, c.Log)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if !res.Success {
			return errors.New("backfill finished with failures; see log")
		}
		return nil
	})
}
