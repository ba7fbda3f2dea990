// Package ui renders evolution lines as terminal text.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/dexline/internal/evolution"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF") // cyan: selected species
	colorMuted   = lipgloss.Color("#636363") // gray: types and arrows
	colorWhite   = lipgloss.Color("#EEEEEE") // off-white: names
)

const arrow = "↓"

// LineRenderer draws an evolution line top to bottom: ancestors, the current
// species, then each forward stage with branch siblings side by side.
type LineRenderer struct {
	// UseColor controls whether ANSI colors are emitted.
	UseColor bool

	// Name labels a stage. It is never called with evolution.Unresolved.
	Name func(evolution.Evolution) string
}

// Render returns the drawing for line.
func (r *LineRenderer) Render(line evolution.Line) string {
	var rows []string
	for _, e := range line.Prev {
		rows = append(rows, r.card(e, false))
	}
	rows = append(rows, r.card(line.Current, true))
	for _, st := range line.Next {
		cards := make([]string, 0, st.Len())
		for _, e := range st.Members() {
			cards = append(cards, r.card(e, false))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	sep := r.style(lipgloss.NewStyle().Foreground(colorMuted)).Render(arrow)
	out := make([]string, 0, 2*len(rows)-1)
	for i, row := range rows {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, row)
	}
	return lipgloss.JoinVertical(lipgloss.Center, out...)
}

func (r *LineRenderer) card(e evolution.Evolution, current bool) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Align(lipgloss.Center)

	if e.IsUnresolved() {
		// Keeps the column so sibling rows stay aligned.
		return box.Border(lipgloss.HiddenBorder()).Render("–")
	}

	name := r.style(lipgloss.NewStyle().Foreground(colorWhite)).Render(r.Name(e))
	types := r.style(lipgloss.NewStyle().Foreground(colorMuted)).
		Render(strings.Join(e.Species.TypesFor(e.Form), "/"))

	if current {
		box = box.Border(lipgloss.ThickBorder())
		if r.UseColor {
			box = box.BorderForeground(colorPrimary)
		}
	}
	return box.Render(name + "\n" + types)
}

// style strips colors when UseColor is off.
func (r *LineRenderer) style(s lipgloss.Style) lipgloss.Style {
	if r.UseColor {
		return s
	}
	return s.UnsetForeground()
}
