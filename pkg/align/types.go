package align

import (
	"math"
	"math/big"
	"sort"
)

// EdgeKey identifies a directed edge by its ordered endpoints.
type EdgeKey struct {
	Source string
	Target string
}

// EdgeTable is a weighted directed graph held as its edge list.
// Each ordered pair carries at most one weight.
type EdgeTable map[EdgeKey]int64

// NodeSet is a set of node identifiers
type NodeSet map[string]struct{}

// Mapping assigns a target-graph node to each source-graph node.
type Mapping map[string]string

// Result holds the score of a verified mapping plus the counts behind it.
type Result struct {
	Score    int64 // Σ min(w_src, w_tgt) over source edges
	MaxScore int64 // total source weight, the best achievable score

	// MaxScoreCapped is set when the total source weight does not fit in
	// int64 and MaxScore holds the clamped value.
	MaxScoreCapped bool

	SourceEdges int
	SourceNodes int
	TargetEdges int
	TargetNodes int
	MappedNodes int // rows in the mapping, including nodes outside the source edges

	// UnusedMappings counts mapping rows whose node is in no source edge.
	UnusedMappings int

	PreservedEdges int // target weight >= source weight
	PartialEdges   int // present in the target with a smaller weight
	MissingEdges   int // no edge between the mapped endpoints
}

// Ratio returns Score/MaxScore, or 0 for a graph without weight.
func (r *Result) Ratio() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore)
}

// Nodes returns every node that appears as a source or target of an edge.
// Isolated nodes are not representable in an edge table.
func (t EdgeTable) Nodes() NodeSet {
	nodes := make(NodeSet, len(t))
	for key := range t {
		nodes[key.Source] = struct{}{}
		nodes[key.Target] = struct{}{}
	}
	return nodes
}

// TotalWeight sums all edge weights. A sum outside the int64 range is
// clamped to the nearest bound and the second result is false.
func (t EdgeTable) TotalWeight() (int64, bool) {
	total := new(big.Int)
	w := new(big.Int)
	for _, weight := range t {
		total.Add(total, w.SetInt64(weight))
	}

	switch {
	case total.IsInt64():
		return total.Int64(), true
	case total.Sign() > 0:
		return math.MaxInt64, false
	default:
		return math.MinInt64, false
	}
}

// Weight returns the weight of the edge source->target, or 0 if absent.
func (t EdgeTable) Weight(source, target string) int64 {
	return t[EdgeKey{Source: source, Target: target}]
}

// Contains reports whether id is in the set.
func (s NodeSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Missing returns the members of nodes that have no mapping entry, sorted.
func (m Mapping) Missing(nodes NodeSet) []string {
	var missing []string
	for _, id := range nodes.Sorted() {
		if _, ok := m[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Collisions groups source nodes by the target node they map to and keeps
// only targets claimed more than once. Source lists are sorted.
func (m Mapping) Collisions() map[string][]string {
	byTarget := make(map[string][]string, len(m))
	for src, tgt := range m {
		byTarget[tgt] = append(byTarget[tgt], src)
	}

	collisions := make(map[string][]string)
	for tgt, sources := range byTarget {
		if len(sources) < 2 {
			continue
		}
		sort.Strings(sources)
		collisions[tgt] = sources
	}
	return collisions
}
