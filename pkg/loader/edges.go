package loader

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-align/pkg/align"
	"github.com/dd0wney/cluso-align/pkg/logging"
)

// EdgeLoad is a decoded edge file.
type EdgeLoad struct {
	Path        string
	Table       align.EdgeTable
	Rows        int    // data rows read, header excluded
	Overwritten int    // rows that replaced an earlier weight for the same pair
	Digest      string // BLAKE2b-256 of the raw input, hex encoded
}

// DecodeEdges parses a source,target,weight table with one header row.
// name labels errors. No partial table is returned on error.
func DecodeEdges(r io.Reader, name string, opts Options) (*EdgeLoad, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	digest := newDigestReader(r)
	rows, err := newRowReader(digest, name)
	if err != nil {
		return nil, err
	}

	load := &EdgeLoad{Path: name, Table: make(align.EdgeTable)}
	firstSeen := make(map[align.EdgeKey]int)

	for {
		fields, line, err := rows.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, field, err := decodeEdgeRecord(fields)
		if err != nil {
			return nil, NewError("decode", name).Line(line).Field(field).Cause(err).Err()
		}
		load.Rows++

		key := align.EdgeKey{Source: rec.Source, Target: rec.Target}
		if prev, dup := firstSeen[key]; dup {
			if opts.Duplicates == DuplicateReject {
				return nil, NewError("decode", name).
					Line(line).
					Context("first seen on line " + strconv.Itoa(prev)).
					Cause(ErrDuplicateKey).
					Err()
			}
			load.Overwritten++
			if logger.Enabled(logging.DebugLevel) {
				logger.Debug("duplicate edge overwritten",
					logging.Path(name),
					logging.Int("line", line),
					logging.String("source", rec.Source),
					logging.String("target", rec.Target),
					logging.Int64("previous_weight", load.Table.Weight(rec.Source, rec.Target)),
					logging.Int64("weight", rec.Weight),
				)
			}
		} else {
			firstSeen[key] = line
		}
		load.Table[key] = rec.Weight
	}

	load.Digest = digest.Sum()
	return load, nil
}

// ReadEdges opens path and decodes it as an edge table.
func (l *Loader) ReadEdges(ctx context.Context, path string) (*EdgeLoad, error) {
	rc, err := l.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return DecodeEdges(rc, path, l.opts)
}
