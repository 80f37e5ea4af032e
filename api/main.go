package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/product-values/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// @title Product Values API
// @version 1.0
// @description REST API for creating, reading, updating and deleting products.
// @host localhost:8080
// @BasePath /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("productsvc failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "productsvc",
		Short: "Product values HTTP service",
		Long: `productsvc serves CRUD operations over products stored in SQLite, PostgreSQL or MySQL.

Settings come from flags, PRODUCTSVC_* environment variables and an optional config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&configFile, "config", "c", "", "Path to a config file (yaml, toml or json)")
	persistent.String("db-driver", config.DriverSQLite, "Database driver: sqlite, pgx, postgres or mysql")
	persistent.String("db-dsn", "./test.db", "Database DSN or file path (or set DATABASE_URL)")
	persistent.String("log-level", "info", "Log level: trace, debug, info, warn or error")
	persistent.String("log-format", "console", "Log format: console or json")
	persistent.String("log-file", "", "Also write logs to this file, rotated by size")

	rootCmd.Flags().String("addr", ":8080", "HTTP listen address")
	rootCmd.Flags().Float64("rate-limit", 0, "Requests per second allowed per client (0 disables)")
	rootCmd.Flags().Bool("seed", true, "Insert the seed product at startup")

	bindFlags(v, persistent, map[string]string{
		"database.driver": "db-driver",
		"database.dsn":    "db-dsn",
		"log.level":       "log-level",
		"log.format":      "log-format",
		"log.file":        "log-file",
	})
	bindFlags(v, rootCmd.Flags(), map[string]string{
		"server.addr":   "addr",
		"ratelimit.rps": "rate-limit",
		"seed.enabled":  "seed",
	})

	rootCmd.AddCommand(newMigrateCommand(v, &configFile))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "productsvc %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

func newMigrateCommand(v *viper.Viper, configFile *string) *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the products table and insert the seed product, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			if noSeed {
				cfg.Seed.Enabled = false
			}
			return migrate(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Only create the schema")
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", name, err))
		}
	}
}
