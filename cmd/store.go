package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
	"github.com/papapumpkin/dexline/internal/config"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQLite catalog snapshot",
}

var storeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the TOML catalog into the snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		store, err := catalog.OpenStore(cmd.Context(), cfg.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(cmd.Context(), cat); err != nil {
			return err
		}
		logger.Info("catalog imported",
			zap.String("from", cfg.CatalogPath),
			zap.String("to", cfg.StorePath),
			zap.Int("species", cat.Len()))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d species into %s\n", cat.Len(), cfg.StorePath)
		return nil
	},
}

var storeExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the snapshot back out as TOML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		store, err := catalog.OpenStore(cmd.Context(), cfg.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()
		cat, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if err := catalog.Save(args[0], cat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d species to %s\n", cat.Len(), args[0])
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeExportCmd)
	rootCmd.AddCommand(storeCmd)
}
