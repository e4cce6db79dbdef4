package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/reading"
)

func testReading(t *testing.T) *reading.Reading {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	seed := int64(7)
	opts := reading.DefaultOptions()
	opts.Seed = &seed
	rd, err := reading.Assemble(cat, "3card", opts)
	require.NoError(t, err)
	return rd
}

func TestSaveWritesMarkdown(t *testing.T) {
	t.Parallel()
	rd := testReading(t)
	rd.Entries[0].Interpretation = "a fresh start is at hand"
	rd.Summary = "overall the cards point forward"

	dir := t.TempDir()
	path, err := New(dir).Save(rd, "A Turning Point")
	require.NoError(t, err)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, `title: "A Turning Point"`)
	assert.Contains(t, content, "tags: [tarot]")
	assert.Contains(t, content, `tarot_type: "3card"`)
	assert.Contains(t, content, "# A Turning Point")
	assert.Contains(t, content, "Spread: Three-Card Spread")
	assert.Contains(t, content, "## Cards")
	assert.Contains(t, content, "a fresh start is at hand")
	assert.Contains(t, content, "## Summary")
	assert.Contains(t, content, "overall the cards point forward")

	// Positions appear in order with the keyword fallback where no
	// interpretation was attached.
	assert.Contains(t, content, "- 2. "+rd.Entries[1].Card.Name)
	assert.Contains(t, content, rd.Entries[1].Meaning)
}

func TestSaveDefaultTitle(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	dir := t.TempDir()
	path, err := New(dir).Save(rd, "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "Three-Card Spread Reading " + rd.CreatedAt.Format("2006-01-02")
	assert.Contains(t, string(data), "# "+expected)
}

func TestSaveSanitizesFilename(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	dir := t.TempDir()
	path, err := New(dir).Save(rd, `Cups: "Hope"/Fear?`)
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, `"`)
	assert.True(t, strings.HasSuffix(name, ".md"))
}

func TestSanitizeFilenameTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 130)
	safe := sanitizeFilename(long)

	assert.True(t, utf8.ValidString(safe))
	assert.Equal(t, 120, len([]rune(safe)))
}

func TestSaveUnconfiguredIsNoop(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	path, err := New("").Save(rd, "ignored")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestRenderStableForFixedTime(t *testing.T) {
	t.Parallel()
	rd := testReading(t)

	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	first := Render(rd, "Title", now)
	second := Render(rd, "Title", now)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `created: "2026-03-01 12:30:00"`)
}
