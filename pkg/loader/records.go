package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// Field counts of the two row shapes.
const (
	edgeFields    = 3
	mappingFields = 2
)

// EdgeRecord is one decoded row of an edge file: source,target,weight.
type EdgeRecord struct {
	Source string
	Target string
	Weight int64
}

// MappingRecord is one decoded row of a mapping file: source,target.
type MappingRecord struct {
	Source string
	Target string
}

func decodeEdgeRecord(fields []string) (EdgeRecord, string, error) {
	if len(fields) != edgeFields {
		return EdgeRecord{}, "", fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), edgeFields)
	}

	raw := strings.TrimSpace(fields[2])
	weight, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return EdgeRecord{}, "weight", fmt.Errorf("%w: %q", ErrInvalidWeight, fields[2])
	}

	return EdgeRecord{Source: fields[0], Target: fields[1], Weight: weight}, "", nil
}

func decodeMappingRecord(fields []string) (MappingRecord, error) {
	if len(fields) != mappingFields {
		return MappingRecord{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), mappingFields)
	}
	return MappingRecord{Source: fields[0], Target: fields[1]}, nil
}
