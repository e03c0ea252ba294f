package align

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	ErrMappingIncomplete   = errors.New("mapping does not cover every source node")
	ErrMappingNotInjective = errors.New("mapping is not 1:1")
	ErrScoreOverflow       = errors.New("alignment score overflows int64")
)

// MappingIncompleteError lists the source nodes that have no mapping entry.
type MappingIncompleteError struct {
	Missing []string // sorted
}

func (e *MappingIncompleteError) Error() string {
	return fmt.Sprintf("not all source nodes are mapped, missing %d: %s",
		len(e.Missing), formatIDs(e.Missing))
}

func (e *MappingIncompleteError) Is(target error) bool {
	return target == ErrMappingIncomplete
}

// MappingNotInjectiveError reports every target node claimed by more than one
// source node.
type MappingNotInjectiveError struct {
	Collisions map[string][]string // target id -> sorted source ids
}

func (e *MappingNotInjectiveError) Error() string {
	targets := make([]string, 0, len(e.Collisions))
	for tgt := range e.Collisions {
		targets = append(targets, tgt)
	}
	sort.Strings(targets)

	parts := make([]string, 0, len(targets))
	for _, tgt := range targets {
		parts = append(parts, fmt.Sprintf("%q <- %s", tgt, formatIDs(e.Collisions[tgt])))
	}
	return fmt.Sprintf("mapping is not 1:1, %d target nodes used more than once: %s",
		len(targets), strings.Join(parts, "; "))
}

func (e *MappingNotInjectiveError) Is(target error) bool {
	return target == ErrMappingNotInjective
}

// IsMappingError reports whether err rejects the mapping itself rather than
// the inputs it was loaded from.
func IsMappingError(err error) bool {
	return errors.Is(err, ErrMappingIncomplete) || errors.Is(err, ErrMappingNotInjective)
}

const maxListedIDs = 20

func formatIDs(ids []string) string {
	shown := ids
	if len(shown) > maxListedIDs {
		shown = shown[:maxListedIDs]
	}
	quoted := make([]string, len(shown))
	for i, id := range shown {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	out := "{" + strings.Join(quoted, ", ")
	if len(ids) > len(shown) {
		out += fmt.Sprintf(", ... %d more", len(ids)-len(shown))
	}
	return out + "}"
}
