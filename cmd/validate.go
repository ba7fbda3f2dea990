package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
	"github.com/papapumpkin/dexline/internal/config"
	"github.com/papapumpkin/dexline/internal/evolution"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the catalog loads and every evolution line resolves",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "✓ catalog loaded (%d species)\n", cat.Len())

		r := evolution.New(cat, rulesFromConfig(cfg.Rules), evolution.WithLogger(logger))
		if failed := checkLines(os.Stderr, r, cat); failed > 0 {
			logger.Warn("evolution lines failed to resolve", zap.Int("failed", failed))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "✓ all evolution lines resolve")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// checkLines resolves the line of every species and form in cat, reports each
// failure to w, and returns the number of failures.
func checkLines(w io.Writer, r *evolution.Resolver, cat *catalog.Catalog) int {
	failed := 0
	check := func(s *catalog.Species, f *catalog.Form) {
		if _, err := r.Line(s, f); err != nil {
			fmt.Fprintf(w, "✗ %v\n", err)
			failed++
		}
	}
	for _, s := range cat.All() {
		check(s, nil)
		for i := range s.Forms {
			check(s, &s.Forms[i])
		}
	}
	return failed
}
