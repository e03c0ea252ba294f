package align_test

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-align/pkg/align"
)

func ExampleVerifyAndScore() {
	male := align.EdgeTable{
		{Source: "A", Target: "B"}: 5,
		{Source: "B", Target: "C"}: 3,
	}
	female := align.EdgeTable{
		{Source: "1", Target: "2"}: 5,
		{Source: "2", Target: "3"}: 1,
	}

	score, err := align.VerifyAndScore(male, female, align.Mapping{"A": "1", "B": "2", "C": "3"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Alignment score =", score)

	_, err = align.VerifyAndScore(male, female, align.Mapping{"A": "1", "B": "2"})
	var incomplete *align.MappingIncompleteError
	if errors.As(err, &incomplete) {
		fmt.Println("missing:", incomplete.Missing)
	}

	// Output:
	// Alignment score = 6
	// missing: [C]
}
