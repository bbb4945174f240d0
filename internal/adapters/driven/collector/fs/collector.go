package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quirepress/quire/internal/core/domain"
	"github.com/quirepress/quire/internal/core/ports/driven"
)

// Collector enumerates chapter files from a directory on disk.
// Only files with an .html or .htm extension are considered, matched
// case-insensitively. Subdirectories are not descended into.
type Collector struct{}

// Compile-time check that Collector implements the Collector port.
var _ driven.Collector = (*Collector)(nil)

// NewCollector creates a new filesystem collector.
func NewCollector() *Collector {
	return &Collector{}
}

// chapterFile pairs a filename with its change time so sorting can
// run over plain values.
type chapterFile struct {
	name    string
	changed time.Time
}

// Collect implements the driven.Collector interface.
func (c *Collector) Collect(ctx context.Context, dir string, mode domain.SortMode) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort mode %q", domain.ErrInput, mode)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: input directory %s does not exist", domain.ErrInput, dir)
		}
		return nil, fmt.Errorf("%w: reading input directory %s: %v", domain.ErrInput, dir, err)
	}

	files := make([]chapterFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isChapterFile(entry.Name()) {
			continue
		}

		file := chapterFile{name: entry.Name()}
		if mode == domain.SortByCTime {
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("%w: reading file info for %s: %v", domain.ErrInput, entry.Name(), err)
			}
			file.changed = changeTime(info)
		}
		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no chapter files found in %s", domain.ErrInput, dir)
	}

	sortFiles(files, mode)

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = filepath.Join(dir, file.name)
	}
	return paths, nil
}

// isChapterFile reports whether a filename carries an HTML extension.
func isChapterFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// sortFiles orders chapter files in place. Change-time sorting breaks
// ties on the filename so equal timestamps still produce a stable,
// reproducible order.
func sortFiles(files []chapterFile, mode domain.SortMode) {
	switch mode {
	case domain.SortByCTime:
		sort.SliceStable(files, func(i, j int) bool {
			if files[i].changed.Equal(files[j].changed) {
				return files[i].name < files[j].name
			}
			return files[i].changed.Before(files[j].changed)
		})
	case domain.SortNatural:
		sort.SliceStable(files, func(i, j int) bool {
			return compareNatural(files[i].name, files[j].name) < 0
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].name < files[j].name
		})
	}
}

// compareNatural orders strings so embedded numbers compare by value,
// matching how a person reads "ch2" before "ch10". Letter runs compare
// case-insensitively; a numeric run sorts before a letter run.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		aTok, aNum, ni := nextToken(a, i)
		bTok, bNum, nj := nextToken(b, j)
		i, j = ni, nj

		switch {
		case aNum && bNum:
			if c := compareNumeric(aTok, bTok); c != 0 {
				return c
			}
		case aNum != bNum:
			if aNum {
				return -1
			}
			return 1
		default:
			if c := strings.Compare(strings.ToLower(aTok), strings.ToLower(bTok)); c != 0 {
				return c
			}
		}
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	// Equal under natural rules; fall back to byte order for determinism.
	return strings.Compare(a, b)
}

// nextToken returns the run of digits or non-digits starting at
// position i, whether it is numeric, and the position after it.
func nextToken(s string, i int) (string, bool, int) {
	start := i
	numeric := isDigit(s[i])
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[start:i], numeric, i
}

// compareNumeric compares two digit runs by value without converting
// to integers, so arbitrarily long runs cannot overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
