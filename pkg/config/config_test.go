package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-align/pkg/loader"
	"github.com/dd0wney/cluso-align/pkg/logging"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, logging.InfoLevel, cfg.Level())

	opts, err := cfg.LoaderOptions(logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, loader.DuplicateOverwrite, opts.Duplicates)
}

func TestConfig_ValidateCollectsErrors(t *testing.T) {
	cfg := Config{
		Format:     "xml",
		Duplicates: "merge",
		LogLevel:   "loud",
		S3:         S3Config{AccessKeyID: "AKIA"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"Config.Format", "Config.Duplicates", "Config.LogLevel", "Config.S3.SecretAccessKey"} {
		assert.Contains(t, msg, want)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvS3Region, "eu-west-1")
	t.Setenv(EnvS3Endpoint, "http://localhost:9000")
	t.Setenv(EnvS3PathStyle, "true")
	t.Setenv(EnvS3AccessKey, "minio")
	t.Setenv(EnvS3SecretKey, "minio123")
	t.Setenv(logging.LevelEnv, "warn")

	cfg := Default()
	cfg.ApplyEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logging.WarnLevel, cfg.Level())

	opts, err := cfg.LoaderOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, loader.S3Options{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
	}, opts.S3)
}

func TestConfig_ApplyEnvUnknownLevel(t *testing.T) {
	t.Setenv(logging.LevelEnv, "chatty")

	cfg := Default()
	cfg.ApplyEnv()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "chatty"`)
}

func TestConfig_LoaderOptionsReject(t *testing.T) {
	cfg := Default()
	cfg.Duplicates = "reject"

	opts, err := cfg.LoaderOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, loader.DuplicateReject, opts.Duplicates)
	assert.NotNil(t, opts.Logger, "nil logger falls back to the default")
}

const manifestYAML = `
format: json
duplicates: reject
log_level: debug
metrics_file: out/alignverify.prom
s3:
  region: us-east-1
runs:
  - name: team-a
    source_edges: male.csv
    target_edges: female.csv
    mapping: submissions/team-a.csv
  - name: team-b
    source_edges: /data/male.csv
    target_edges: s3://bench/female.csv
    mapping: s3://bench/team-b.csv.sz
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, "json", m.Format)
	assert.Equal(t, "reject", m.Duplicates)
	assert.Equal(t, logging.DebugLevel, m.Level())
	assert.Equal(t, "us-east-1", m.S3.Region)
	require.Len(t, m.Runs, 2)
	assert.Equal(t, "team-b", m.Runs[1].Name)
	assert.Equal(t, "s3://bench/team-b.csv.sz", m.Runs[1].Mapping)
}

func TestParseManifest_DefaultsApply(t *testing.T) {
	m, err := ParseManifest([]byte("runs:\n  - {name: a, source_edges: m.csv, target_edges: f.csv, mapping: b.csv}\n"))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, "text", m.Format)
	assert.Equal(t, "overwrite", m.Duplicates)
}

func TestManifest_Parallel(t *testing.T) {
	const runs = "runs:\n  - {name: a, source_edges: m.csv, target_edges: f.csv, mapping: b.csv}\n"

	m, err := ParseManifest([]byte("parallel: 4\n" + runs))
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, 4, m.Parallel)

	m, err = ParseManifest([]byte("parallel: 500\n" + runs))
	require.NoError(t, err)
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parallel")
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "", "manifest is empty"},
		{"unknown key", "colour: red\nruns: []\n", "colour"},
		{"not yaml", "runs: [", "failed to parse manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no runs", "runs: []\n", "at least 1"},
		{"missing mapping", "runs:\n  - {name: a, source_edges: m.csv, target_edges: f.csv}\n", "Mapping: field is required"},
		{"duplicate names", "runs:\n  - {name: a, source_edges: m.csv, target_edges: f.csv, mapping: b.csv}\n  - {name: a, source_edges: m.csv, target_edges: f.csv, mapping: c.csv}\n", "unique"},
		{"bad scheme", "runs:\n  - {name: a, source_edges: gs://x/m.csv, target_edges: f.csv, mapping: b.csv}\n", "s3://bucket/key"},
		{"bad format", "format: xml\nruns:\n  - {name: a, source_edges: m.csv, target_edges: f.csv, mapping: b.csv}\n", "Config.Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.yaml))
			require.NoError(t, err)
			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadManifest_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "male.csv"), m.Runs[0].SourceEdges)
	assert.Equal(t, filepath.Join(dir, "submissions", "team-a.csv"), m.Runs[0].Mapping)
	assert.Equal(t, "/data/male.csv", m.Runs[1].SourceEdges)
	assert.Equal(t, "s3://bench/female.csv", m.Runs[1].TargetEdges)
	assert.Equal(t, filepath.Join(dir, "out", "alignverify.prom"), m.MetricsFile)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to read manifest"))
}
