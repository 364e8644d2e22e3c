package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/render"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
)

func newGenerateCmd(a *app) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles for the word list and write them out",
		Long: `Generate decomposes every eligible word with as few distinct codes as
possible, keeps the puzzles with enough codes and writes them as JSON.
With db_path set the run is also archived in SQLite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			list, err := a.words()
			if err != nil {
				return err
			}

			res, err := puzzle.Generate(cmd.Context(), list, lex, a.cfg.Policy())
			if err != nil {
				return err
			}

			sinks := []store.Sink{store.NewJSONFile(a.cfg.OutputFile)}
			if a.cfg.DBPath != "" {
				db, err := store.OpenSQLite(a.cfg.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()
				sinks = append(sinks, db)
			}
			if err := store.Tee(sinks...).Save(cmd.Context(), store.NewRun(res)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Stats(res.Stats))
			if preview {
				for _, rec := range puzzle.Select(res.Records, a.cfg.SelectCount, a.cfg.SelectSalt, time.Now()) {
					fmt.Fprintln(out)
					fmt.Fprintln(out, render.Record(rec, true))
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "output JSON file (default "+store.DefaultOutputFile+")")
	f.String("db", "", "SQLite file to archive the run in")
	f.Int("min-codes", 0, "minimum number of codes per puzzle")
	f.StringSlice("exclude", nil, "skip words containing any of these letter pairs (e.g. UE,OU,AE,SS)")
	f.BoolVar(&preview, "preview", false, "print a few puzzles chosen for today")
	return cmd
}
