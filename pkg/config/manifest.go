package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-align/pkg/loader"
	"github.com/dd0wney/cluso-align/pkg/validation"
)

// Run names the three inputs of one verification.
type Run struct {
	Name        string `yaml:"name" validate:"required"`
	SourceEdges string `yaml:"source_edges" validate:"required,input_path"`
	TargetEdges string `yaml:"target_edges" validate:"required,input_path"`
	Mapping     string `yaml:"mapping" validate:"required,input_path"`
}

// Manifest lists runs that share one configuration.
//
//	format: json
//	duplicates: reject
//	parallel: 4
//	runs:
//	  - name: team-a
//	    source_edges: male.csv
//	    target_edges: female.csv
//	    mapping: submissions/team-a.csv
type Manifest struct {
	Config `yaml:",inline"`

	// Parallel is how many runs may execute at once; 0 or 1 runs them in order.
	Parallel int   `yaml:"parallel" validate:"min=0,max=64"`
	Runs     []Run `yaml:"runs" validate:"min=1,unique=Name,dive"`
}

// ParseManifest decodes a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{Config: Default()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// LoadManifest reads a manifest file. Relative local input paths are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Runs {
		r := &m.Runs[i]
		r.SourceEdges = resolve(base, r.SourceEdges)
		r.TargetEdges = resolve(base, r.TargetEdges)
		r.Mapping = resolve(base, r.Mapping)
	}
	if m.MetricsFile != "" {
		m.MetricsFile = resolve(base, m.MetricsFile)
	}
	return m, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if _, _, err := loader.ParseS3URI(p); err == nil {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks the shared configuration and every run.
func (m *Manifest) Validate() error {
	cv := validation.NewConfigValidator("Manifest").
		Custom("Config", m.Config.Validate).
		Struct("Runs", m)
	return cv.Validate()
}
