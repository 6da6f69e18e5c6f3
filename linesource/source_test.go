package linesource_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/presslab/linesource"
)

// collect drains src into its texts and line numbers.
func collect(src *linesource.Source) ([]string, []int) {
	var (
		texts []string
		nums  []int
	)
	for n, line := range src.Lines() {
		texts = append(texts, line)
		nums = append(nums, n)
	}

	return texts, nums
}

// TestSource_SkipsUndecodable drops invalid UTF-8 lines and keeps the rest in order.
func TestSource_SkipsUndecodable(t *testing.T) {
	input := "first\n\xff\xfebad\nsecond\r\nthird"
	src := linesource.New(strings.NewReader(input))

	got, nums := collect(src)
	require.Equal(t, []string{"first", "second", "third"}, got)
	require.Equal(t, []int{1, 3, 4}, nums)
	require.Equal(t, 1, src.Skipped())
	require.NoError(t, src.Err())
}

// TestSource_SinglePass verifies the sequence cannot be restarted.
func TestSource_SinglePass(t *testing.T) {
	src := linesource.New(strings.NewReader("a\nb\n"))
	first, _ := collect(src)
	require.Len(t, first, 2)
	second, _ := collect(src)
	require.Empty(t, second)
	require.ErrorIs(t, src.Err(), linesource.ErrConsumed)
}

// TestSource_EarlyStop stops reading when the consumer breaks.
func TestSource_EarlyStop(t *testing.T) {
	src := linesource.New(strings.NewReader("a\nb\nc\n"))
	var got []string
	for _, line := range src.Lines() {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}

// TestOpen reads from disk and reports missing files.
func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("[#] (0) {1}\n"), 0o600))

	src, err := linesource.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	got, nums := collect(src)
	require.Equal(t, []string{"[#] (0) {1}"}, got)
	require.Equal(t, []int{1}, nums)

	_, err = linesource.Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
