package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dexline/internal/catalog"
	"github.com/papapumpkin/dexline/internal/config"
	"github.com/papapumpkin/dexline/internal/naming"
)

var nameCmd = &cobra.Command{
	Use:   "name <species>",
	Short: "Show the display and export names of a species",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}
		form, _ := cmd.Flags().GetString("form")
		s, f, err := findSpecies(cat, args[0], form)
		if err != nil {
			return err
		}
		shiny, _ := cmd.Flags().GetBool("shiny")
		n := naming.NewNormalizer(naming.NewRandomSource(cfg.Seed), naming.WithLogger(logger))
		writeNames(cmd.OutOrStdout(), n, s, f, shiny)
		return nil
	},
}

func init() {
	nameCmd.Flags().String("form", "", "form of the species")
	nameCmd.Flags().Bool("shiny", false, "use shiny names and images")
	rootCmd.AddCommand(nameCmd)
}

// writeNames prints every name variant of (s, f), one per line.
func writeNames(w io.Writer, n *naming.Normalizer, s *catalog.Species, f *catalog.Form, shiny bool) {
	display := n.DisplayName(s, f, shiny)
	fmt.Fprintf(w, "display:  %s\n", display)
	fmt.Fprintf(w, "showdown: %s\n", naming.ShowdownName(display))
	fmt.Fprintf(w, "image:    %s\n", naming.ImageURL(display, shiny))
	fmt.Fprintf(w, "api:      %s\n", naming.APIURL(s, f))
}
