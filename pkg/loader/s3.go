package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-align/pkg/logging"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 API the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func isS3Path(path string) bool {
	return strings.HasPrefix(path, s3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: %q is not an s3:// URI", ErrBadSource, uri)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs both bucket and key", ErrBadSource, uri)
	}
	return u.Host, key, nil
}

// NewS3Client builds an S3 client from the default AWS configuration chain,
// overridden by opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

func (l *Loader) openS3(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(path)
	if err != nil {
		return nil, NewError("open", path).Cause(err).Err()
	}

	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, ioError("open", path, err)
	}

	l.opts.Logger.Debug("fetching object",
		logging.Path(path),
		logging.String("bucket", bucket),
		logging.String("key", key),
	)

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, ioError("open", path, err)
	}
	return out.Body, nil
}

// s3Client returns the configured client, building one on first use.
func (l *Loader) s3Client(ctx context.Context) (ObjectGetter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.s3 == nil {
		client, err := NewS3Client(ctx, l.opts.S3)
		if err != nil {
			return nil, err
		}
		l.s3 = client
	}
	return l.s3, nil
}
