// Package linesource streams the lines of a text input lazily, in a single
// forward pass. Lines that are not valid UTF-8 are skipped rather than
// reported; I/O failures surface through Err once the sequence ends.
package linesource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"unicode/utf8"
)

// ErrConsumed is recorded when Lines is ranged over a second time.
var ErrConsumed = errors.New("linesource: sequence already consumed")

// maxLineBytes bounds a single line; longer lines end the scan with bufio.ErrTooLong.
const maxLineBytes = 1 << 20

// Source is a single-use line sequence over an io.Reader.
type Source struct {
	r        io.Reader
	closer   io.Closer
	consumed bool
	skipped  int
	err      error
}

// New wraps r. The caller keeps ownership of r.
func New(r io.Reader) *Source {
	return &Source{r: r}
}

// Open opens path for reading. Close releases the file.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linesource: open %q: %w", path, err)
	}

	return &Source{r: f, closer: f}, nil
}

// Lines yields each decodable line without its terminator, keyed by its
// 1-based physical line number. Skipped lines still advance the number.
// Ranging a second time yields nothing and sets Err to ErrConsumed.
func (s *Source) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		if s.consumed {
			s.err = ErrConsumed
			return
		}
		s.consumed = true

		sc := bufio.NewScanner(s.r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for lineNo := 1; sc.Scan(); lineNo++ {
			b := sc.Bytes()
			if !utf8.Valid(b) {
				s.skipped++
				continue
			}
			if !yield(lineNo, string(b)) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.err = fmt.Errorf("linesource: read: %w", err)
		}
	}
}

// Skipped returns how many undecodable lines were dropped so far.
func (s *Source) Skipped() int { return s.skipped }

// Err returns the first read error, or nil.
func (s *Source) Err() error { return s.err }

// Close closes the underlying file when the Source came from Open.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}
