package source

import (
	"bufio"
	"encoding/json"
	"io"

	"catalog-sampler/models"
)

// maxLineSize bounds a single logical record; review dumps occasionally
// carry multi-megabyte lines.
const maxLineSize = 16 * 1024 * 1024

// JSONLReader lazily decodes one RawRecord per non-blank line of a stream.
// Lines that fail JSON decoding are skipped and tallied rather than
// aborting the pass.
type JSONLReader struct {
	scanner *bufio.Scanner
	lines   int64
	skipped int64
}

// NewJSONLReader creates a reader over r.
func NewJSONLReader(r io.Reader) *JSONLReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &JSONLReader{scanner: scanner}
}

// Next returns the next decodable record and its 1-based line number, or
// io.EOF once the stream is exhausted. Blank lines are ignored; malformed
// lines count toward Skipped.
func (r *JSONLReader) Next() (models.RawRecord, int64, error) {
	for r.scanner.Scan() {
		r.lines++
		line := r.scanner.Bytes()
		if len(line) == 0 || isBlank(line) {
			continue
		}

		var rec models.RawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			r.skipped++
			continue
		}
		return rec, r.lines, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, r.lines, err
	}
	return nil, r.lines, io.EOF
}

// Lines returns the total number of lines seen so far.
func (r *JSONLReader) Lines() int64 { return r.lines }

// Skipped returns the number of malformed lines dropped so far.
func (r *JSONLReader) Skipped() int64 { return r.skipped }

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}
