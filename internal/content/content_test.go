package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	p, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, p.Images)
	require.NotEmpty(t, p.Words)
	require.GreaterOrEqual(t, len(p.Motifs), MinMotifs)

	for _, m := range p.Motifs {
		require.NotEmpty(t, m.Text)
		require.NotEmpty(t, m.Keywords, "motif %q has no banned keywords", m.Text)
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "images.json"), []string{"/a.svg", "/b.svg"})
	writeJSON(t, filepath.Join(dir, "words.json"), []string{"one", "two"})
	writeJSON(t, filepath.Join(dir, "motifs.json"), []Motif{
		{Text: "first", Keywords: []string{"a"}},
		{Text: "second", Keywords: []string{"b"}},
	})

	p, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, p.Words)
	require.Len(t, p.Motifs, 2)
}

func TestLoadRejectsTooFewMotifs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeJSON(t, filepath.Join(dir, "images.json"), []string{"/a.svg"})
	writeJSON(t, filepath.Join(dir, "words.json"), []string{"one"})
	writeJSON(t, filepath.Join(dir, "motifs.json"), []Motif{{Text: "only", Keywords: []string{"a"}}})

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadMissingDir(t *testing.T) {
	t.Parallel()
	_, err := Load("/does/not/exist")
	require.Error(t, err)
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}
