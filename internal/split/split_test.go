package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxicli/internal/errors"
)

func writeInput(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("tpep_pickup_datetime,total_amount\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "2024-01-15 08:%02d:00,%d\n", i%60, i)
	}
	path := filepath.Join(t.TempDir(), "curated.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestSplitPreservesHeaderAndOrder(t *testing.T) {
	input := writeInput(t, 5)
	outDir := t.TempDir()

	parts, err := New(2, nil).Split(input, outDir)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	// every part repeats the header, sizes are bounded, only the last is short
	assert.Equal(t, []int{2, 2, 1}, []int{parts[0].Rows, parts[1].Rows, parts[2].Rows})

	var seen []string
	for i, p := range parts {
		assert.Equal(t, fmt.Sprintf("part_%02d.csv", i+1), p.Name)
		lines := readLines(t, p.Path)
		assert.Equal(t, "tpep_pickup_datetime,total_amount", lines[0])
		seen = append(seen, lines[1:]...)
	}
	require.Len(t, seen, 5)
	for i, line := range seen {
		assert.True(t, strings.HasSuffix(line, ","+fmt.Sprint(i)), "row %d out of order: %s", i, line)
	}
}

func TestSplitExactMultiple(t *testing.T) {
	input := writeInput(t, 4)

	parts, err := New(2, nil).Split(input, t.TempDir())
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, 2, parts[0].Rows)
	assert.Equal(t, 2, parts[1].Rows)
}

func TestSplitHeaderOnlyInputYieldsNoParts(t *testing.T) {
	input := writeInput(t, 0)

	parts, err := New(2, nil).Split(input, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestSplitMissingInput(t *testing.T) {
	_, err := New(2, nil).Split(filepath.Join(t.TempDir(), "absent.csv"), t.TempDir())

	var missing *errors.MissingInputError
	require.ErrorAs(t, err, &missing)
}

func TestWriteManifest(t *testing.T) {
	input := writeInput(t, 3)
	outDir := t.TempDir()

	s := New(2, nil)
	parts, err := s.Split(input, outDir)
	require.NoError(t, err)
	require.NoError(t, s.WriteManifest(outDir, parts))

	lines := readLines(t, filepath.Join(outDir, ManifestCSV))
	assert.Equal(t, []string{
		"part,rows",
		"part_01.csv,2",
		"part_02.csv,1",
	}, lines)
}
