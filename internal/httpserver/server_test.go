package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVLuke/kennzeichen-buch/internal/httpserver"
	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/metrics"
	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
)

type fixture struct {
	srv *httptest.Server
	run *store.Run
}

func newFixture(t *testing.T, withRun bool) *fixture {
	t.Helper()
	lex, err := lexicon.New([]lexicon.Entry{
		{Code: "F", Name: "Frankfurt am Main"},
		{Code: "A", Name: "Augsburg"},
		{Code: "HR", Name: "Schwalm-Eder-Kreis"},
		{Code: "RA", Name: "Rastatt"},
		{Code: "D", Name: "Düsseldorf"},
		{Code: "ST", Name: "Steinfurt"},
		{Code: "SE", Name: "Segeberg"},
		{Code: "S", Name: "Stuttgart"},
		{Code: "HD", Name: "Heidelberg"},
		{Code: "HD", Name: "Rhein-Neckar-Kreis"},
	})
	require.NoError(t, err)
	eng, err := segment.NewEngine(lex, 16)
	require.NoError(t, err)

	runs := store.NewMemoryStore()
	f := &fixture{}
	if withRun {
		res, err := puzzle.Generate(context.Background(), []string{"FAHRRAD", "STRASSE", "AMPEL"}, lex, puzzle.DefaultPolicy())
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		f.run = store.NewRun(res)
		require.NoError(t, runs.Save(context.Background(), f.run))
	}

	s := httpserver.New(httpserver.Deps{
		Runs:      runs,
		Lexicon:   lex,
		Engine:    eng,
		Policy:    puzzle.DefaultPolicy(),
		Metrics:   metrics.New(),
		DailySalt: "test",
	})
	f.srv = httptest.NewServer(s.Router())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.Contains(resp.Header.Get("Content-Type"), "json") && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealthAndIndex(t *testing.T) {
	f := newFixture(t, false)

	code, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])

	code, body = f.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "kennzeichen", body["service"])

	code, body = f.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", body["error"])
}

func TestPuzzles_NoRun(t *testing.T) {
	f := newFixture(t, false)
	for _, p := range []string{"/puzzles", "/puzzles/daily", "/puzzles/FAHRRAD"} {
		code, body := f.do(t, http.MethodGet, p, "")
		assert.Equal(t, http.StatusNotFound, code, p)
		assert.Equal(t, "no_run", body["error"], p)
	}
}

func TestPuzzles_List(t *testing.T) {
	f := newFixture(t, true)

	code, body := f.do(t, http.MethodGet, "/puzzles", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, f.run.ID, body["runId"])
	records := body["records"].([]any)
	require.Len(t, records, 2)
	first := records[0].(map[string]any)
	assert.Equal(t, "FAHRRAD", first["word"])

	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["accepted"])
}

func TestPuzzles_Word(t *testing.T) {
	f := newFixture(t, true)

	code, body := f.do(t, http.MethodGet, "/puzzles/stra%C3%9Fe", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "STRASSE", body["word"])
	sol := body["solution"].([]any)
	assert.Equal(t, map[string]any{"code": "ST", "name": "Steinfurt"}, sol[0])

	code, _ = f.do(t, http.MethodGet, "/puzzles/BAHNHOF", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = f.do(t, http.MethodGet, "/puzzles/123", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_word", body["error"])
}

func TestPuzzles_Daily(t *testing.T) {
	f := newFixture(t, true)

	code, body := f.do(t, http.MethodGet, "/puzzles/daily?n=1&date=2024-05-01", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-05-01", body["date"])
	first := body["records"].([]any)
	assert.Len(t, first, 1)

	_, again := f.do(t, http.MethodGet, "/puzzles/daily?n=1&date=2024-05-01", "")
	assert.Equal(t, first, again["records"])

	_, all := f.do(t, http.MethodGet, "/puzzles/daily?n=10&date=2024-05-01", "")
	assert.Len(t, all["records"].([]any), 2)

	code, body = f.do(t, http.MethodGet, "/puzzles/daily?n=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_n", body["error"])

	code, body = f.do(t, http.MethodGet, "/puzzles/daily?date=01.05.2024", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_date", body["error"])
}

func TestDecompose(t *testing.T) {
	f := newFixture(t, false)

	code, body := f.do(t, http.MethodPost, "/decompose", `{"word":"Fahrrad"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "FAHRRAD", body["word"])
	assert.Equal(t, true, body["found"])
	assert.Equal(t, true, body["accepted"])
	rec := body["record"].(map[string]any)
	assert.Len(t, rec["solution"].([]any), 5)

	code, body = f.do(t, http.MethodPost, "/decompose", `{"word":"FAD"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, false, body["accepted"], "too short for a puzzle")

	code, body = f.do(t, http.MethodPost, "/decompose", `{"word":"XYZ"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["found"])
	assert.Nil(t, body["record"])

	code, body = f.do(t, http.MethodPost, "/decompose", `{"word":"!!"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_word", body["error"])

	code, body = f.do(t, http.MethodPost, "/decompose", `{`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad_json", body["error"])
}

func TestDebugLexicon(t *testing.T) {
	f := newFixture(t, false)
	code, body := f.do(t, http.MethodGet, "/debug/lexicon", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 9, body["codes"])
	multi := body["multiRegion"].(map[string]any)
	assert.Equal(t, []any{"Heidelberg", "Rhein-Neckar-Kreis"}, multi["HD"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, false)
	f.do(t, http.MethodGet, "/health", "")

	resp, err := http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `kennzeichen_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
