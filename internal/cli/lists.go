package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fraud-stop/shield-wise-guard/internal/bootstrap"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
	"github.com/Fraud-stop/shield-wise-guard/internal/infrastructure/database"
)

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and load reference lists",
	}
	cmd.AddCommand(newListsValidateCmd())
	cmd.AddCommand(newListsImportCmd())
	return cmd
}

func newListsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a YAML reference document or a plain domain list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := args[0]

			if !isYAML(path) {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open list: %w", err)
				}
				defer f.Close()
				domains, err := services.ParseDomainList(f)
				if err != nil {
					return fmt.Errorf("failed to read list: %w", err)
				}
				fmt.Fprintf(out, "%s: %d domains\n", path, len(domains))
				return nil
			}

			data, err := readReferenceFile(path)
			if err != nil {
				return err
			}
			refs, err := services.NewReferenceSet(data)
			if err != nil {
				return err
			}
			malicious, legitimate := refs.Counts()
			fmt.Fprintf(out, "%s: version %q, %d malicious, %d legitimate\n", path, refs.Version(), malicious, legitimate)
			return nil
		},
	}
}

func newListsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the Postgres reference tables with a YAML reference document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readReferenceFile(args[0])
			if err != nil {
				return err
			}
			if _, err := services.NewReferenceSet(data); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("lists import needs database.enabled")
			}
			log := commandLogger(cmd, cfg)

			db, err := database.NewPostgres(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := bootstrap.ImportReferences(cmd.Context(), db, data); err != nil {
				return fmt.Errorf("failed to import reference lists: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d malicious, %d legitimate (version %q)\n",
				len(data.KnownMalicious), len(data.KnownLegitimate), data.Version)
			return nil
		},
	}
}

func readReferenceFile(path string) (models.ReferenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ReferenceData{}, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()
	return services.ParseReferenceData(f)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
