package textfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSupports(t *testing.T) {
	e := New()

	assert.True(t, e.Supports("turkey.txt"))
	assert.True(t, e.Supports("notes.MD"))
	assert.False(t, e.Supports("turkey.pdf"))
	assert.False(t, e.Supports("turkey"))
}

func TestPageCount(t *testing.T) {
	e := New()
	path := writeCorpusFile(t, "guide.txt", "sayfa bir\fsayfa iki\fsayfa üç")

	count, err := e.PageCount(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPageCount_SinglePage(t *testing.T) {
	e := New()
	path := writeCorpusFile(t, "guide.txt", "tek sayfa, ayraç yok")

	count, err := e.PageCount(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExtractPage(t *testing.T) {
	e := New()
	path := writeCorpusFile(t, "guide.txt", "sayfa bir\fsayfa iki")

	got, err := e.ExtractPage(context.Background(), path, 2)
	require.NoError(t, err)
	assert.Equal(t, "sayfa iki", got)
}

func TestExtractPage_OutOfRange(t *testing.T) {
	e := New()
	path := writeCorpusFile(t, "guide.txt", "sayfa bir")

	_, err := e.ExtractPage(context.Background(), path, 0)
	assert.Error(t, err)

	_, err = e.ExtractPage(context.Background(), path, 2)
	assert.Error(t, err)
}

func TestExtractPage_MissingFile(t *testing.T) {
	e := New()

	_, err := e.ExtractPage(context.Background(), "/nonexistent.txt", 1)
	assert.Error(t, err)
}
