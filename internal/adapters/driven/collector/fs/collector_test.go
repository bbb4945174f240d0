package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirepress/quire/internal/core/domain"
)

// --- Test helpers ---

func writeChapter(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<h1>x</h1>"), 0600))
}

func names(t *testing.T, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// --- Tests ---

func TestNewCollector(t *testing.T) {
	collector := NewCollector()
	require.NotNil(t, collector)
	assert.IsType(t, &Collector{}, collector)
}

func TestCollect_SortsByName(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "c.html")
	writeChapter(t, dir, "a.html")
	writeChapter(t, dir, "b.htm")

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByName)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html", "b.htm", "c.html"}, names(t, paths))
	for _, p := range paths {
		assert.Equal(t, dir, filepath.Dir(p))
	}
}

func TestCollect_OnePathPerFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.html", "two.html", "three.html", "four.html"} {
		writeChapter(t, dir, name)
	}

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByName)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
}

func TestCollect_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "chapter.html")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("notes"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte{0x89}, 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets.html"), 0700))

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"chapter.html"}, names(t, paths))
}

func TestCollect_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "UPPER.HTML")
	writeChapter(t, dir, "Mixed.Htm")

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByName)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestCollect_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "ch1.html")
	writeChapter(t, dir, "ch10.html")
	writeChapter(t, dir, "ch2.html")

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortNatural)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1.html", "ch2.html", "ch10.html"}, names(t, paths))

	// Plain name order keeps byte order instead.
	paths, err = NewCollector().Collect(context.Background(), dir, domain.SortByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1.html", "ch10.html", "ch2.html"}, names(t, paths))
}

func TestCollect_CTimeOrder(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "z.html")
	time.Sleep(20 * time.Millisecond)
	writeChapter(t, dir, "a.html")

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByCTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"z.html", "a.html"}, names(t, paths))
}

func TestCollect_MissingDirectory(t *testing.T) {
	paths, err := NewCollector().Collect(context.Background(), "/nonexistent/quire-test", domain.SortByName)
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, domain.ErrInput)
}

func TestCollect_EmptyDirectory(t *testing.T) {
	paths, err := NewCollector().Collect(context.Background(), t.TempDir(), domain.SortByName)
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, domain.ErrInput)
}

func TestCollect_NoChapterFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# hi"), 0600))

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortByName)
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, domain.ErrInput)
}

func TestCollect_InvalidSortMode(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "ch1.html")

	paths, err := NewCollector().Collect(context.Background(), dir, domain.SortMode("size"))
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, domain.ErrInput)
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := NewCollector().Collect(ctx, t.TempDir(), domain.SortByName)
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortFiles_CTimeTieBreaksOnName(t *testing.T) {
	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	files := []chapterFile{
		{name: "b.html", changed: when},
		{name: "a.html", changed: when},
		{name: "c.html", changed: when.Add(-time.Hour)},
	}

	sortFiles(files, domain.SortByCTime)

	assert.Equal(t, "c.html", files[0].name)
	assert.Equal(t, "a.html", files[1].name)
	assert.Equal(t, "b.html", files[2].name)
}

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "numeric runs by value", a: "ch2.html", b: "ch10.html", want: -1},
		{name: "equal strings", a: "ch2.html", b: "ch2.html", want: 0},
		{name: "leading zero tie falls back to byte order", a: "ch002.html", b: "ch2.html", want: -1},
		{name: "case tie falls back to byte order", a: "Intro.html", b: "intro.html", want: -1},
		{name: "number before letter", a: "1.html", b: "a.html", want: -1},
		{name: "letter run compared whole", a: "ch.html", b: "ch1.html", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareNatural(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}
