// internal/httpserver/routes_daily.go
//
// Puzzles of the day.
//   - GET /puzzles/daily?n=3&date=YYYY-MM-DD
//
// Selection is deterministic: HMAC(salt, date) drives the pick, so every
// client asking for the same day gets the same puzzles in the same order.
// Without date the current UTC day is used.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TVLuke/kennzeichen-buch/internal/daily"
	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

const maxDaily = 50

type dailyRes struct {
	Date    string          `json:"date"`
	RunID   string          `json:"runId"`
	Records []puzzle.Record `json:"records"`
}

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	n := s.deps.DailyCount
	if v := q.Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxDaily {
			writeError(w, http.StatusBadRequest, "invalid_n")
			return
		}
		n = parsed
	}

	day := time.Now().UTC()
	if v := q.Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
		day = parsed
	}

	run, ok := s.latest(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{
		Date:    daily.DateKey(day),
		RunID:   run.ID,
		Records: puzzle.Select(run.Records, n, s.deps.DailySalt, day),
	})
}
