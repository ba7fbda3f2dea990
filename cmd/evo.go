package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/config"
	"github.com/papapumpkin/dexline/internal/evolution"
	"github.com/papapumpkin/dexline/internal/naming"
	"github.com/papapumpkin/dexline/internal/ui"
)

var evoCmd = &cobra.Command{
	Use:   "evo <species>",
	Short: "Show the evolution line of a species",
	Long: "Resolve and draw the ancestors and forward evolutions of a species, " +
		"given by catalog number or name.",
	Args: cobra.ExactArgs(1),
	RunE: runEvo,
}

func init() {
	evoCmd.Flags().String("form", "", "form of the species")
	evoCmd.Flags().Bool("shiny", false, "label stages with shiny names")
	evoCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(evoCmd)
}

func runEvo(cmd *cobra.Command, args []string) error {
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

	r := evolution.New(cat, rulesFromConfig(cfg.Rules), evolution.WithLogger(logger))
	line, err := r.Line(s, f)
	if err != nil {
		logger.Error("could not compute evolution line", zap.String("species", s.Name), zap.Error(err))
		return fmt.Errorf("could not compute evolution line: %w", err)
	}

	shiny, _ := cmd.Flags().GetBool("shiny")
	n := naming.NewNormalizer(naming.NewRandomSource(cfg.Seed), naming.WithLogger(logger))
	label := func(e evolution.Evolution) string { return n.DisplayName(e.Species, e.Form, shiny) }

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeLineJSON(cmd.OutOrStdout(), line, label)
	}
	renderer := &ui.LineRenderer{UseColor: !cfg.NoColor, Name: label}
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(line))
	return nil
}

// stageJSON is one resolved stage in JSON output.
type stageJSON struct {
	Number      int      `json:"number,omitempty"`
	Name        string   `json:"name"`
	Form        string   `json:"form,omitempty"`
	Types       []string `json:"types"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// lineJSON is the JSON shape of an evolution line. Each entry of Next is one
// row; branch rows hold more than one stage.
type lineJSON struct {
	Prev    []stageJSON   `json:"prev"`
	Current stageJSON     `json:"current"`
	Next    [][]stageJSON `json:"next"`
}

func toStageJSON(e evolution.Evolution, label func(evolution.Evolution) string) stageJSON {
	if e.IsUnresolved() {
		return stageJSON{Name: e.Species.Name, Types: e.Species.Types, Placeholder: true}
	}
	out := stageJSON{
		Number: e.Species.Number,
		Name:   label(e),
		Types:  e.Species.TypesFor(e.Form),
	}
	if e.Form != nil {
		out.Form = e.Form.Name
	}
	return out
}

// writeLineJSON encodes line to w as indented JSON.
func writeLineJSON(w io.Writer, line evolution.Line, label func(evolution.Evolution) string) error {
	out := lineJSON{
		Prev:    make([]stageJSON, 0, len(line.Prev)),
		Current: toStageJSON(line.Current, label),
		Next:    make([][]stageJSON, 0, len(line.Next)),
	}
	for _, e := range line.Prev {
		out.Prev = append(out.Prev, toStageJSON(e, label))
	}
	for _, st := range line.Next {
		row := make([]stageJSON, 0, st.Len())
		for _, e := range st.Members() {
			row = append(row, toStageJSON(e, label))
		}
		out.Next = append(out.Next, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding evolution line: %w", err)
	}
	return nil
}
