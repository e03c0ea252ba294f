// Package report renders the outcome of a verification run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dd0wney/cluso-align/pkg/align"
)

// Output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatPretty}
}

// Input describes one loaded input file.
type Input struct {
	Path        string `json:"path"`
	Rows        int    `json:"rows"`
	Overwritten int    `json:"overwritten_rows"`
	Digest      string `json:"blake2b"`
}

// Summary is everything a renderer may show about a successful run.
type Summary struct {
	RunID       string        `json:"run_id"`
	Name        string        `json:"name,omitempty"`
	Result      *align.Result `json:"-"`
	SourceEdges Input         `json:"source_edges"`
	TargetEdges Input         `json:"target_edges"`
	Mapping     Input         `json:"mapping"`
	Duration    time.Duration `json:"-"`
}

// Renderer writes a Summary to w.
type Renderer interface {
	Render(w io.Writer, s *Summary) error
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case FormatText, "":
		return Text{}, nil
	case FormatJSON:
		return JSON{Indent: true}, nil
	case FormatPretty:
		return NewPretty(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Text prints the two-line confirmation expected by existing tooling.
type Text struct{}

func (Text) Render(w io.Writer, s *Summary) error {
	_, err := fmt.Fprintf(w, "Verification successful!\nAlignment score = %d\n", s.Result.Score)
	return err
}

// JSON prints the summary as a single JSON document.
type JSON struct {
	Indent bool
}

type jsonSummary struct {
	*Summary
	Status         string  `json:"status"`
	Score          int64   `json:"score"`
	MaxScore       int64   `json:"max_score"`
	MaxScoreCapped bool    `json:"max_score_capped,omitempty"`
	Ratio          float64 `json:"ratio"`
	Stats          stats   `json:"stats"`
	DurationSec    float64 `json:"duration_sec"`
}

type stats struct {
	SourceNodes    int `json:"source_nodes"`
	SourceEdges    int `json:"source_edges"`
	TargetNodes    int `json:"target_nodes"`
	TargetEdges    int `json:"target_edges"`
	MappedNodes    int `json:"mapped_nodes"`
	UnusedMappings int `json:"unused_mappings"`
	PreservedEdges int `json:"preserved_edges"`
	PartialEdges   int `json:"partial_edges"`
	MissingEdges   int `json:"missing_edges"`
}

func (j JSON) Render(w io.Writer, s *Summary) error {
	r := s.Result
	doc := jsonSummary{
		Summary:        s,
		Status:         "verified",
		Score:          r.Score,
		MaxScore:       r.MaxScore,
		MaxScoreCapped: r.MaxScoreCapped,
		Ratio:          r.Ratio(),
		Stats: stats{
			SourceNodes:    r.SourceNodes,
			SourceEdges:    r.SourceEdges,
			TargetNodes:    r.TargetNodes,
			TargetEdges:    r.TargetEdges,
			MappedNodes:    r.MappedNodes,
			UnusedMappings: r.UnusedMappings,
			PreservedEdges: r.PreservedEdges,
			PartialEdges:   r.PartialEdges,
			MissingEdges:   r.MissingEdges,
		},
		DurationSec: s.Duration.Seconds(),
	}

	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
