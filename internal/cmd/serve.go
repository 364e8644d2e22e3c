package cmd

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TVLuke/kennzeichen-buch/internal/httpserver"
	"github.com/TVLuke/kennzeichen-buch/internal/metrics"
	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzles over HTTP",
		Long: `Serve generates a fresh run at startup and serves it read-only.
With db_path set, the run is archived and the newest archived run is
served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			list, err := a.words()
			if err != nil {
				return err
			}
			res, err := puzzle.Generate(ctx, list, lex, a.cfg.Policy())
			if err != nil {
				return err
			}
			m := metrics.New()
			m.ObserveRun(res.Stats)

			var runs store.Store = store.NewMemoryStore()
			if a.cfg.DBPath != "" {
				db, err := store.OpenSQLite(a.cfg.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()
				runs = db
			}
			if err := runs.Save(ctx, store.NewRun(res)); err != nil {
				return err
			}

			eng, err := segment.NewEngine(lex, a.cfg.CacheSize)
			if err != nil {
				return err
			}
			srv := httpserver.New(httpserver.Deps{
				Runs:       runs,
				Lexicon:    lex,
				Engine:     eng,
				Policy:     a.cfg.Policy(),
				Metrics:    m,
				DailySalt:  a.cfg.SelectSalt,
				DailyCount: a.cfg.SelectCount,
			})

			addr := a.cfg.Addr()
			log.Info().Str("addr", addr).Int("puzzles", len(res.Records)).Msg("starting http server")
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("port", "p", "", "listen port or host:port")
	cmd.Flags().String("db", "", "SQLite file to archive and serve runs from")
	return cmd
}
