// Package cli implements the fraudstop command line tool
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fraud-stop/shield-wise-guard/internal/bootstrap"
	"github.com/Fraud-stop/shield-wise-guard/internal/config"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database"
	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fraudstop",
		Short:         "fraudstop: check links and numbers for scams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("fraudstop {{.Version}}\n")

	cmd.PersistentFlags().String("config", getenvDefault("FRAUDSTOP_CONFIG", ""), "path to config file")
	cmd.PersistentFlags().Bool("verbose", false, "write logs to stderr")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newListsCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fraudstop %s (intents %s)\n", version, services.IntentTableVersion)
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(path)
}

func commandLogger(cmd *cobra.Command, cfg *config.Config) *logger.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return logger.NewNop()
	}
	return logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     "console",
		TimeFormat: "15:04:05",
		Output:     cmd.ErrOrStderr(),
	})
}

// newClassifier builds the classifier from the configured reference source.
// Postgres is only dialled when it holds the lists, and is released once
// they are loaded.
func newClassifier(ctx context.Context, cmd *cobra.Command) (*services.LinkClassifier, *logger.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log := commandLogger(cmd, cfg)

	var db *database.PostgresDB
	if cfg.Reference.Source == config.ReferenceSourcePostgres {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("reference source unavailable: %w", err)
		}
		defer db.Close()
	}

	refs, err := bootstrap.LoadReferences(ctx, cfg, db, log)
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.NewClassifier(cfg, refs), log, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
