// internal/httpserver/server.go
//
// HTTP server wiring for the puzzle API.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, metrics).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Puzzle endpoints: GET /puzzles, GET /puzzles/{word}, GET /puzzles/daily.
//   - On-demand decomposition: POST /decompose.
//   - Debug: GET /debug/lexicon.
//
// Notes:
//   - Read-only over the latest saved run; nothing here mutates the store.
//   - Decompositions go through a cached segment.Engine bound to the
//     lexicon the run was generated with.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/metrics"
	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
	"github.com/TVLuke/kennzeichen-buch/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Runs    store.Store
	Lexicon *lexicon.Lexicon
	Engine  *segment.Engine
	Policy  puzzle.Policy
	Metrics *metrics.Metrics

	DailySalt  string // HMAC key for /puzzles/daily
	DailyCount int    // default n for /puzzles/daily
}

// Server bundles router and dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.DailyCount <= 0 {
		d.DailyCount = 3
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.observe)                       // request metrics
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"kennzeichen","endpoints":["/health","/puzzles","/puzzles/daily","/puzzles/{word}","POST /decompose","/metrics"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	// --- puzzles ---
	s.r.Route("/puzzles", func(r chi.Router) {
		r.Get("/", s.handleList)
		s.mountDaily(r)
		r.Get("/{word}", s.handleWord)
	})
	s.r.Post("/decompose", s.handleDecompose)

	// Debug: lexicon summary
	s.r.Get("/debug/lexicon", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"codes":       s.deps.Lexicon.Len(),
			"multiRegion": s.deps.Lexicon.MultiRegion(),
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// observe records status and latency per route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.deps.Metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ----------------------------- puzzles -------------------------------------

// latest loads the newest run or writes the matching error response.
func (s *Server) latest(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	run, err := s.deps.Runs.Latest(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no_run")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("load latest run")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return nil, false
	}
	return run, true
}

type listRes struct {
	RunID   string          `json:"runId"`
	Stats   puzzle.Stats    `json:"stats"`
	Records []puzzle.Record `json:"records"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	run, ok := s.latest(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(listRes{RunID: run.ID, Stats: run.Stats, Records: run.Records})
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	word := words.Normalize(chi.URLParam(r, "word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	}
	run, ok := s.latest(w, r)
	if !ok {
		return
	}
	rec, found := run.Result().Find(word)
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(rec)
}

// --------------------------- decompose -------------------------------------

type decomposeReq struct {
	Word string `json:"word"`
}

type decomposeRes struct {
	Word     string         `json:"word"`
	Found    bool           `json:"found"`
	Accepted bool           `json:"accepted"`
	Record   *puzzle.Record `json:"record,omitempty"`
}

// handleDecompose runs the engine for an arbitrary word. Length and code
// count are reported in Accepted but do not block the answer.
func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req decomposeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word := words.Normalize(req.Word)
	d, found, err := s.deps.Engine.Decompose(word)
	if errors.Is(err, lexicon.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "invalid_word")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("decompose")
		writeError(w, http.StatusInternalServerError, "decompose_failed")
		return
	}
	s.deps.Metrics.ObserveDecompose(found)

	res := decomposeRes{Word: word, Found: found}
	if found {
		rec := puzzle.BuildRecord(word, d, s.deps.Lexicon)
		res.Record = &rec
		res.Accepted = s.deps.Policy.Eligible(word) && s.deps.Policy.AcceptDecomposition(d)
	}
	_ = json.NewEncoder(w).Encode(res)
}
