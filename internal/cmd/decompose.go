package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/render"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
	"github.com/TVLuke/kennzeichen-buch/internal/words"
)

type decomposeOut struct {
	Word     string         `json:"word"`
	Found    bool           `json:"found"`
	Accepted bool           `json:"accepted"`
	Record   *puzzle.Record `json:"record,omitempty"`
	Relaxed  []string       `json:"relaxed,omitempty"`
}

func newDecomposeCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		relaxed bool
	)

	cmd := &cobra.Command{
		Use:   "decompose WORD...",
		Short: "Split single words into codes",
		Long: `Decompose prints the shortest split of each word into distinct codes,
ignoring the length and code-count limits of generate. Umlauts are spelled
out first (Brücke -> BRUECKE).`,
		Example: "  kennzeichen decompose Fahrrad Straße\n  kennzeichen decompose --relaxed --json Kofferraum",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			policy := a.cfg.Policy()
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")

			for _, arg := range args {
				word := words.Normalize(arg)
				d, found, err := segment.FindMinimal(word, lex)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}

				res := decomposeOut{Word: word, Found: found}
				if found {
					rec := puzzle.BuildRecord(word, d, lex)
					res.Record = &rec
					res.Accepted = policy.Eligible(word) && policy.AcceptDecomposition(d)
				}
				if relaxed {
					if r, ok := segment.Relaxed(word, lex); ok {
						res.Relaxed = r
					}
				}

				if asJSON {
					if err := enc.Encode(res); err != nil {
						return err
					}
					continue
				}
				switch {
				case !found:
					fmt.Fprintf(out, "%s: keine Zerlegung ohne Wiederholung\n", word)
				default:
					fmt.Fprintln(out, render.Record(*res.Record, true))
					if !res.Accepted {
						fmt.Fprintln(out, "(kein Rätsel: Wortlänge oder Anzahl Kennzeichen außerhalb der Grenzen)")
					}
				}
				if res.Relaxed != nil {
					fmt.Fprintf(out, "mit Wiederholung: %s\n", segment.Decomposition(res.Relaxed))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of plates")
	cmd.Flags().BoolVar(&relaxed, "relaxed", false, "also show the shortest split when codes may repeat")
	return cmd
}
