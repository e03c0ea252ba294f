// Package config assembles run settings from flags, environment and batch
// manifests.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-align/pkg/loader"
	"github.com/dd0wney/cluso-align/pkg/logging"
	"github.com/dd0wney/cluso-align/pkg/report"
	"github.com/dd0wney/cluso-align/pkg/validation"
)

// Environment variables read by ApplyEnv.
const (
	EnvS3Region    = "ALIGNVERIFY_S3_REGION"
	EnvS3Endpoint  = "ALIGNVERIFY_S3_ENDPOINT"
	EnvS3PathStyle = "ALIGNVERIFY_S3_PATH_STYLE"
	EnvS3AccessKey = "ALIGNVERIFY_S3_ACCESS_KEY_ID"
	EnvS3SecretKey = "ALIGNVERIFY_S3_SECRET_ACCESS_KEY"
)

// S3Config configures access to s3:// inputs.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`

	// Credentials only come from the environment, never from a manifest.
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

// Config holds the settings shared by every run of one invocation.
type Config struct {
	Format      string   `yaml:"format"`
	Duplicates  string   `yaml:"duplicates"`
	LogLevel    string   `yaml:"log_level"`
	MetricsFile string   `yaml:"metrics_file"`
	S3          S3Config `yaml:"s3"`
}

// Default returns the settings of a plain three-path invocation.
func Default() Config {
	return Config{
		Format:     report.FormatText,
		Duplicates: loader.DuplicateOverwrite.String(),
		LogLevel:   logging.InfoLevel.String(),
	}
}

// ApplyEnv overlays the log level and S3 settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(logging.LevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvS3Region); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv(EnvS3Endpoint); v != "" {
		c.S3.Endpoint = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvS3PathStyle)); err == nil {
		c.S3.PathStyle = v
	}
	if v := os.Getenv(EnvS3AccessKey); v != "" {
		c.S3.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretKey); v != "" {
		c.S3.SecretAccessKey = v
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		OneOf("Format", validation.DefaultOr(c.Format, report.FormatText), report.Formats()).
		Custom("Duplicates", func() error {
			_, err := loader.ParseDuplicatePolicy(c.Duplicates)
			return err
		}).
		Custom("LogLevel", func() error {
			if _, ok := logging.ParseLevel(c.LogLevel); !ok {
				return errUnknownLevel(c.LogLevel)
			}
			return nil
		}).
		When(c.S3.AccessKeyID != "" || c.S3.SecretAccessKey != "", func(cv *validation.ConfigValidator) {
			cv.Required("S3.AccessKeyID", c.S3.AccessKeyID).
				Required("S3.SecretAccessKey", c.S3.SecretAccessKey)
		}).
		Validate()
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

func errUnknownLevel(s string) error {
	return fmt.Errorf("unknown log level %q", s)
}

// LoaderOptions converts the configuration for the loader package.
func (c *Config) LoaderOptions(logger logging.Logger) (loader.Options, error) {
	policy, err := loader.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return loader.Options{}, err
	}

	opts := loader.DefaultOptions()
	opts.Duplicates = policy
	opts.S3 = loader.S3Options{
		Region:          c.S3.Region,
		Endpoint:        c.S3.Endpoint,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		UsePathStyle:    c.S3.PathStyle,
	}
	if logger != nil {
		opts.Logger = logger
	}
	return opts, nil
}
