package loader

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-align/pkg/align"
	"github.com/dd0wney/cluso-align/pkg/logging"
)

// MappingLoad is a decoded mapping file.
type MappingLoad struct {
	Path        string
	Mapping     align.Mapping
	Rows        int
	Overwritten int
	Digest      string
}

// DecodeMapping parses a source_node,target_node table with one header row.
func DecodeMapping(r io.Reader, name string, opts Options) (*MappingLoad, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	digest := newDigestReader(r)
	rows, err := newRowReader(digest, name)
	if err != nil {
		return nil, err
	}

	load := &MappingLoad{Path: name, Mapping: make(align.Mapping)}
	firstSeen := make(map[string]int)

	for {
		fields, line, err := rows.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := decodeMappingRecord(fields)
		if err != nil {
			return nil, NewError("decode", name).Line(line).Cause(err).Err()
		}
		load.Rows++

		if prev, dup := firstSeen[rec.Source]; dup {
			if opts.Duplicates == DuplicateReject {
				return nil, NewError("decode", name).
					Line(line).
					Context("first seen on line " + strconv.Itoa(prev)).
					Cause(ErrDuplicateKey).
					Err()
			}
			load.Overwritten++
			if logger.Enabled(logging.DebugLevel) {
				logger.Debug("duplicate mapping overwritten",
					logging.Path(name),
					logging.Int("line", line),
					logging.String("source", rec.Source),
					logging.String("previous_target", load.Mapping[rec.Source]),
					logging.String("target", rec.Target),
				)
			}
		} else {
			firstSeen[rec.Source] = line
		}
		load.Mapping[rec.Source] = rec.Target
	}

	load.Digest = digest.Sum()
	return load, nil
}

// ReadMapping opens path and decodes it as a mapping table.
func (l *Loader) ReadMapping(ctx context.Context, path string) (*MappingLoad, error) {
	rc, err := l.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return DecodeMapping(rc, path, l.opts)
}
