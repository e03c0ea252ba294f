package align

import "math/big"

// Verify checks that mapping is a valid partial injective function over the
// nodes of source and scores it against target.
//
// Checks run in order and the first failure stops verification:
//   - every node that appears in a source edge must have a mapping entry
//     (*MappingIncompleteError);
//   - no two mapping entries may share a target node
//     (*MappingNotInjectiveError). All entries count, including ones for
//     nodes that never appear in a source edge.
//
// The score is the sum over source edges (x,y) of
// min(w_source(x,y), w_target(f(x),f(y))), where a missing target edge
// weighs 0. It is summed exactly and ErrScoreOverflow is returned only when
// the final score does not fit in int64. MaxScore is informational and is
// clamped instead.
func Verify(source, target EdgeTable, mapping Mapping) (*Result, error) {
	sourceNodes := source.Nodes()

	if missing := mapping.Missing(sourceNodes); len(missing) > 0 {
		return nil, &MappingIncompleteError{Missing: missing}
	}

	if collisions := mapping.Collisions(); len(collisions) > 0 {
		return nil, &MappingNotInjectiveError{Collisions: collisions}
	}

	maxScore, exact := source.TotalWeight()

	result := &Result{
		MaxScore:       maxScore,
		MaxScoreCapped: !exact,
		SourceEdges:    len(source),
		SourceNodes:    len(sourceNodes),
		TargetEdges:    len(target),
		TargetNodes:    len(target.Nodes()),
		MappedNodes:    len(mapping),
	}
	for src := range mapping {
		if !sourceNodes.Contains(src) {
			result.UnusedMappings++
		}
	}

	score := new(big.Int)
	term := new(big.Int)
	for key, w := range source {
		mapped := EdgeKey{Source: mapping[key.Source], Target: mapping[key.Target]}
		wt, present := target[mapped]

		switch {
		case !present:
			result.MissingEdges++
		case wt >= w:
			result.PreservedEdges++
		default:
			result.PartialEdges++
		}

		score.Add(score, term.SetInt64(min(w, wt)))
	}

	if !score.IsInt64() {
		return nil, ErrScoreOverflow
	}
	result.Score = score.Int64()
	return result, nil
}

// VerifyAndScore runs Verify and returns only the alignment score.
func VerifyAndScore(source, target EdgeTable, mapping Mapping) (int64, error) {
	result, err := Verify(source, target, mapping)
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}
