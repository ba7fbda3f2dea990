package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
	"github.com/papapumpkin/dexline/internal/config"
	"github.com/papapumpkin/dexline/internal/evolution"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and revalidate the catalog whenever its file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		rules := rulesFromConfig(cfg.Rules)

		holder, err := catalog.NewHolder(cfg.CatalogPath, logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		revalidate := func(c *catalog.Catalog) {
			r := evolution.New(c, rules, evolution.WithLogger(logger))
			if failed := checkLines(out, r, c); failed > 0 {
				logger.Warn("catalog reloaded with broken lines", zap.Int("failed", failed))
				return
			}
			fmt.Fprintf(out, "✓ %s: %d species, all lines resolve\n", holder.Path(), c.Len())
		}
		revalidate(holder.Current())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("watching catalog", zap.String("path", holder.Path()))
		return holder.Watch(ctx, revalidate)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
