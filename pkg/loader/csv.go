package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
)

// rowReader walks a delimited table after its header row. encoding/csv
// drops blank lines, so rowReader tracks where each row ends and reports a
// blank line after the header as a row with no fields. Blank lines before
// the header are skipped.
type rowReader struct {
	name   string
	reader *csv.Reader

	nextLine  int   // line the next row starts on when no blank line precedes it
	endOffset int64 // input offset just past the last row read

	pending     []string
	pendingLine int
}

func newRowReader(r io.Reader, name string) (*rowReader, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1 // field counts are checked per row shape
	reader.LazyQuotes = true

	rr := &rowReader{name: name, reader: reader}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewError("decode", name).Line(1).Cause(ErrMissingHeader).Err()
		}
		return nil, rr.readError(err)
	}
	rr.advance(header)
	return rr, nil
}

// next returns the fields of the next row and its line, or io.EOF.
func (rr *rowReader) next() ([]string, int, error) {
	if rr.pending != nil {
		fields, line := rr.pending, rr.pendingLine
		rr.pending = nil
		return fields, line, nil
	}

	blank := rr.nextLine
	fields, err := rr.reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, 0, rr.readError(err)
		}
		if end := rr.reader.InputOffset(); end > rr.endOffset {
			rr.endOffset = end
			return []string{}, blank, nil
		}
		return nil, 0, io.EOF
	}

	line, _ := rr.reader.FieldPos(0)
	rr.advance(fields)
	if line > blank {
		rr.pending, rr.pendingLine = fields, line
		return []string{}, blank, nil
	}
	return fields, line, nil
}

func (rr *rowReader) advance(fields []string) {
	last := len(fields) - 1
	line, _ := rr.reader.FieldPos(last)
	rr.nextLine = line + strings.Count(fields[last], "\n") + 1
	rr.endOffset = rr.reader.InputOffset()
}

// readError separates malformed CSV from failures of the underlying reader.
func (rr *rowReader) readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return NewError("decode", rr.name).
			Line(parseErr.Line).
			Cause(fmt.Errorf("%w: %w", ErrFormat, parseErr.Err)).
			Err()
	}
	if errors.Is(err, snappy.ErrCorrupt) || errors.Is(err, snappy.ErrUnsupported) {
		return NewError("decode", rr.name).Context("snappy").Cause(fmt.Errorf("%w: %w", ErrFormat, err)).Err()
	}
	return ioError("read", rr.name, err)
}
