// Package fastx streams FASTA/FASTQ records, transparently decompressing
// gzip input. Grounded on grailbio-bio/encoding/fastq/scanner.go's Scanner
// (line-oriented bufio.Scanner state machine, "once Scan returns false, it
// never returns true again" contract), generalized to also accept FASTA
// records (">"-headed, no quality line) alongside FASTQ in a single dual-
// dispatch scanner, with transparent gzip decompression.
package fastx

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Record is one input read: a header, optional comment, bases, and an
// optional quality string (FASTA records leave Quality empty).
type Record struct {
	Header   string
	Comment  string
	Bases    string
	Quality  string
}

// Scanner reads a lazy finite sequence of Records from an underlying FASTA
// or FASTQ stream, choosing each record's format from the first character of
// its header line ('>' or '@'; an empty header line is an error) and
// transparently decompressing gzip. Not safe for concurrent use, matching
// fastq.Scanner's "Scanners are not threadsafe" contract.
type Scanner struct {
	b       *bufio.Scanner
	err     error
	isFastq bool
	started bool
}

// NewScanner wraps r, sniffing for the gzip magic bytes the way
// cmd/bio-fusion/main.go's input plumbing transparently decompresses its
// inputs, but using github.com/klauspost/compress/gzip (already a
// dependency of grailbio-bio's own go.mod) since grailbio/base/compress is
// not part of the retrieved pack.
func NewScanner(r io.Reader) (*Scanner, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			return nil, errors.Wrap(gzErr, "fastx: invalid gzip stream")
		}
		return &Scanner{b: bufio.NewScanner(gz)}, nil
	}
	return &Scanner{b: bufio.NewScanner(br)}, nil
}

// Scan reads the next record into rec, returning false at end of stream or
// on error; once false, Scan never returns true again. Callers must check
// Err after a false return to distinguish a clean EOF from a malformed
// record; errors describe the malformation, and the FASTQ '+'-separator
// error names the record's header. No error names the input file.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	if !s.b.Scan() {
		s.err = s.b.Err()
		return false
	}
	header := s.b.Text()
	if len(header) == 0 {
		s.err = errors.New("fastx: empty header line")
		return false
	}

	switch header[0] {
	case '>':
		s.isFastq = false
		rec.Header, rec.Comment = splitHeader(header[1:])
		if !s.scanLine(&rec.Bases) {
			return false
		}
		rec.Quality = ""
		return true
	case '@':
		s.isFastq = true
		rec.Header, rec.Comment = splitHeader(header[1:])
		if !s.scanLine(&rec.Bases) {
			return false
		}
		var plus string
		if !s.scanLine(&plus) {
			return false
		}
		if len(plus) == 0 || plus[0] != '+' {
			s.err = errors.Errorf("fastx: record %q: expected '+' separator, got %q", rec.Header, plus)
			return false
		}
		if !s.scanLine(&rec.Quality) {
			return false
		}
		return true
	default:
		s.err = errors.Errorf("fastx: unrecognized record start %q", header[:1])
		return false
	}
}

func (s *Scanner) scanLine(dst *string) bool {
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = errors.New("fastx: truncated record")
		}
		return false
	}
	*dst = s.b.Text()
	return true
}

// splitHeader splits a FASTA/FASTQ header line's text (with the leading
// '>'/'@' already stripped) into an identifier and an optional comment, at
// the first whitespace.
func splitHeader(s string) (header, comment string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// Err returns the scanning error, if any, after Scan has returned false.
func (s *Scanner) Err() error {
	return s.err
}
