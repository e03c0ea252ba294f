// Package align validates a node correspondence between two directed,
// weighted graphs and scores how well it preserves edge weights.
//
// A graph is represented only by its EdgeTable, so its node set is the set of
// edge endpoints. A Mapping is valid when it covers every node of the source
// graph and is injective; it need not reach every target node.
//
//	score, err := align.VerifyAndScore(male, female, mapping)
//	var incomplete *align.MappingIncompleteError
//	if errors.As(err, &incomplete) {
//		// incomplete.Missing lists the unmapped source nodes
//	}
package align
