package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeTable_Nodes(t *testing.T) {
	table := EdgeTable{
		{Source: "A", Target: "B"}: 1,
		{Source: "B", Target: "C"}: 2,
		{Source: "D", Target: "D"}: 3,
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, table.Nodes().Sorted())
	assert.True(t, table.Nodes().Contains("D"))
	assert.False(t, table.Nodes().Contains("E"))
	assert.Empty(t, EdgeTable{}.Nodes())
}

func TestEdgeTable_Weight(t *testing.T) {
	table := EdgeTable{{Source: "A", Target: "B"}: 4}

	assert.Equal(t, int64(4), table.Weight("A", "B"))
	assert.Equal(t, int64(0), table.Weight("B", "A"))
}

func TestEdgeTable_TotalWeight(t *testing.T) {
	total, ok := scenarioSource().TotalWeight()
	assert.True(t, ok)
	assert.Equal(t, int64(8), total)

	total, ok = EdgeTable{
		{Source: "A", Target: "B"}: math.MaxInt64,
		{Source: "B", Target: "C"}: math.MaxInt64,
	}.TotalWeight()
	assert.False(t, ok)
	assert.Equal(t, int64(math.MaxInt64), total)

	total, ok = EdgeTable{
		{Source: "A", Target: "B"}: math.MinInt64,
		{Source: "B", Target: "C"}: -1,
	}.TotalWeight()
	assert.False(t, ok)
	assert.Equal(t, int64(math.MinInt64), total)

	total, ok = EdgeTable{
		{Source: "A", Target: "B"}: math.MaxInt64,
		{Source: "B", Target: "C"}: 1,
		{Source: "C", Target: "A"}: -2,
	}.TotalWeight()
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64-1), total)
}

func TestMapping_Missing(t *testing.T) {
	nodes := NodeSet{"A": {}, "B": {}, "C": {}}

	assert.Equal(t, []string{"B", "C"}, Mapping{"A": "1"}.Missing(nodes))
	assert.Empty(t, Mapping{"A": "1", "B": "2", "C": "3"}.Missing(nodes))
}

func TestMapping_Collisions(t *testing.T) {
	assert.Empty(t, Mapping{"A": "1", "B": "2"}.Collisions())
	assert.Equal(t,
		map[string][]string{"1": {"A", "C"}},
		Mapping{"C": "1", "A": "1", "B": "2"}.Collisions(),
	)
}
