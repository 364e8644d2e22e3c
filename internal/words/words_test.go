package words_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/words"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Straße":      "STRASSE",
		"Fußgänger":   "FUSSGAENGER",
		"Brücke":      "BRUECKE",
		"Ölkanne":     "OELKANNE",
		"  fahrrad  ": "FAHRRAD",
		"Café":        "CAFE",
		"Park-Uhr":    "PARKUHR",
		"ABC 123":     "ABC",
		"GROẞ":        "GROSS",
		"u\u0308ber":  "UEBER",
		"":            "",
		"1234":        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, words.Normalize(in), in)
	}
}

func TestDefault(t *testing.T) {
	list, err := words.Default()
	require.NoError(t, err)
	assert.Len(t, list, 114)
	assert.Equal(t, "AMPEL", list[0])
	assert.Contains(t, list, "FAHRRAD")
	for _, w := range list {
		assert.True(t, lexicon.IsUpperAlpha(w), w)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# Liste\nStraße\n\nampel\nAMPEL\nBrücke\n---\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	list, err := words.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"STRASSE", "AMPEL", "BRUECKE"}, list)
}

func TestLoad_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n\n"), 0o644))

	_, err := words.Load(path)
	assert.ErrorIs(t, err, words.ErrEmptyList)

	_, err = words.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	def, err := words.Resolve("")
	require.NoError(t, err)
	assert.Len(t, def, 114)

	path := filepath.Join(t.TempDir(), "w.txt")
	require.NoError(t, os.WriteFile(path, []byte("Kofferraum\n"), 0o644))
	list, err := words.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"KOFFERRAUM"}, list)
}
