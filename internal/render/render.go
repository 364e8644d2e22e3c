// Package render draws puzzles for the terminal: each code as a small
// licence plate, the region names underneath, the answer key last.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

var (
	plateColor = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"}
	euBlue     = lipgloss.Color("#003399")
	mutedColor = lipgloss.Color("#6B7280")

	plateStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(plateColor).
			Padding(0, 1).
			Bold(true)
	bandStyle = lipgloss.NewStyle().
			Background(euBlue).
			Foreground(lipgloss.Color("#FFCC00"))
	nameStyle  = lipgloss.NewStyle().Foreground(mutedColor).Width(18)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	keyStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)

// Plate renders one code as a plate with the blue "D" band.
func Plate(code string) string {
	return plateStyle.Render(bandStyle.Render("D") + " " + code)
}

// Record renders a puzzle: plates in a row, one region name per plate in
// the reading order the book uses, and the answer key.
func Record(rec puzzle.Record, showAnswer bool) string {
	plates := make([]string, len(rec.Solution))
	for i, e := range rec.Solution {
		plates[i] = Plate(e.Code)
	}

	var names strings.Builder
	for i, e := range rec.Solution {
		fmt.Fprintf(&names, "%d. %s\n", i+1, nameStyle.Render(e.Name))
	}

	parts := []string{
		titleStyle.Render(fmt.Sprintf("%d Buchstaben", len(rec.Word))),
		lipgloss.JoinHorizontal(lipgloss.Top, plates...),
		strings.TrimRight(names.String(), "\n"),
	}
	if showAnswer {
		parts = append(parts, keyStyle.Render(rec.Word+" = "+rec.AnswerKey()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Stats renders the one-line summary of a run.
func Stats(s puzzle.Stats) string {
	return keyStyle.Render(fmt.Sprintf(
		"%d Wörter, %d geprüft, %d zerlegt, %d Rätsel",
		s.Candidates, s.Attempted, s.Decomposed, s.Accepted,
	))
}
