package loader

import (
	"fmt"

	"github.com/dd0wney/cluso-align/pkg/logging"
)

// DuplicatePolicy decides what happens when a key appears on more than one row.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the last row for a key.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject fails the load with ErrDuplicateKey.
	DuplicateReject
)

// String returns the policy name used in configuration.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateOverwrite:
		return "overwrite"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy converts a configuration string to a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateOverwrite, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// S3Options configures access to s3:// inputs.
type S3Options struct {
	Region          string
	Endpoint        string // custom endpoint, e.g. MinIO
	AccessKeyID     string // static credentials; empty uses the default chain
	SecretAccessKey string
	UsePathStyle    bool
}

// Options configures a Loader.
type Options struct {
	Duplicates DuplicatePolicy
	S3         S3Options

	// S3Client overrides the client built from S3.
	S3Client ObjectGetter

	Logger logging.Logger
}

// DefaultOptions returns the plain command line behavior: duplicate rows
// overwrite, nothing is logged.
func DefaultOptions() Options {
	return Options{
		Duplicates: DuplicateOverwrite,
		Logger:     logging.NewNopLogger(),
	}
}
