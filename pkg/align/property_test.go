package align

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildSource spreads weights over n nodes; repeated pairs overwrite.
func buildSource(n int, weights []int64) EdgeTable {
	table := make(EdgeTable, len(weights))
	for i, w := range weights {
		key := EdgeKey{
			Source: fmt.Sprintf("m%d", i%n),
			Target: fmt.Sprintf("m%d", (i*7+3)%n),
		}
		table[key] = w
	}
	return table
}

// identityMapping maps every source node mK to fK.
func identityMapping(nodes NodeSet) Mapping {
	m := make(Mapping, len(nodes))
	for id := range nodes {
		m[id] = "f" + id[1:]
	}
	return m
}

func mapTable(table EdgeTable, mapping Mapping, adjust func(int64) int64) EdgeTable {
	out := make(EdgeTable, len(table))
	for key, w := range table {
		out[EdgeKey{Source: mapping[key.Source], Target: mapping[key.Target]}] = adjust(w)
	}
	return out
}

func TestVerifyProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	nodeCount := gen.IntRange(1, 12)
	weights := gen.SliceOf(gen.Int64Range(0, 1000))

	// Property 1: dropping any covered node fails coverage and yields no score
	properties.Property("incomplete mapping never scores", prop.ForAll(
		func(n int, ws []int64, pick int) bool {
			source := buildSource(n, ws)
			nodes := source.Nodes()
			if len(nodes) == 0 {
				return true
			}
			mapping := identityMapping(nodes)
			dropped := nodes.Sorted()[pick%len(nodes)]
			delete(mapping, dropped)

			score, err := VerifyAndScore(source, EdgeTable{}, mapping)
			var incomplete *MappingIncompleteError
			if !errors.As(err, &incomplete) || score != 0 {
				return false
			}
			return len(incomplete.Missing) == 1 && incomplete.Missing[0] == dropped
		},
		nodeCount, weights, gen.IntRange(0, 1000),
	))

	// Property 2: two keys sharing a value always fail injectivity
	properties.Property("shared target fails injectivity", prop.ForAll(
		func(n int, ws []int64) bool {
			source := buildSource(n, ws)
			nodes := source.Nodes()
			if len(nodes) == 0 {
				return true
			}
			mapping := identityMapping(nodes)
			mapping["extra"] = mapping[nodes.Sorted()[0]]

			_, err := VerifyAndScore(source, EdgeTable{}, mapping)
			return errors.Is(err, ErrMappingNotInjective)
		},
		nodeCount, weights,
	))

	// Property 3: 0 <= score <= total source weight
	properties.Property("score is bounded by source weight", prop.ForAll(
		func(n int, ws []int64, targetWeights []int64) bool {
			source := buildSource(n, ws)
			mapping := identityMapping(source.Nodes())
			target := make(EdgeTable)
			for key, w := range mapTable(source, mapping, func(w int64) int64 { return w }) {
				if len(targetWeights) == 0 {
					break
				}
				target[key] = targetWeights[int(w)%len(targetWeights)]
			}

			score, err := VerifyAndScore(source, target, mapping)
			total, _ := source.TotalWeight()
			return err == nil && score >= 0 && score <= total
		},
		nodeCount, weights, weights,
	))

	// Property 4: a target that dominates every mapped edge scores the full weight
	properties.Property("dominating target scores full weight", prop.ForAll(
		func(n int, ws []int64, delta int64) bool {
			source := buildSource(n, ws)
			mapping := identityMapping(source.Nodes())
			target := mapTable(source, mapping, func(w int64) int64 { return w + delta })

			score, err := VerifyAndScore(source, target, mapping)
			total, _ := source.TotalWeight()
			return err == nil && score == total
		},
		nodeCount, weights, gen.Int64Range(0, 50),
	))

	// Property 5: mapped edges absent from the target contribute nothing
	properties.Property("absent target edges score zero", prop.ForAll(
		func(n int, ws []int64) bool {
			source := buildSource(n, ws)
			mapping := identityMapping(source.Nodes())

			score, err := VerifyAndScore(source, EdgeTable{}, mapping)
			return err == nil && score == 0
		},
		nodeCount, weights,
	))

	properties.TestingRun(t)
}
