package loader

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-align/pkg/logging"
)

// SnappySuffix marks an input stored in the snappy framing format.
const SnappySuffix = ".sz"

// Loader reads edge and mapping tables from local files or S3 objects.
// It is safe for concurrent use.
type Loader struct {
	opts Options

	mu sync.Mutex // guards s3
	s3 ObjectGetter
}

// New creates a Loader. Zero-value options behave like DefaultOptions.
func New(opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Loader{opts: opts, s3: opts.S3Client}
}

// Open returns the raw byte stream of path, decompressed when path ends in
// SnappySuffix. The caller closes it.
func (l *Loader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)

	if isS3Path(path) {
		rc, err = l.openS3(ctx, path)
	} else {
		rc, err = os.Open(path)
		if err != nil {
			err = ioError("open", path, err)
		}
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, SnappySuffix) {
		l.opts.Logger.Debug("decompressing input", logging.Path(path), logging.String("codec", "snappy"))
		return &snappyReadCloser{Reader: snappy.NewReader(rc), closer: rc}, nil
	}
	return rc, nil
}

type snappyReadCloser struct {
	*snappy.Reader
	closer io.Closer
}

func (s *snappyReadCloser) Close() error {
	return s.closer.Close()
}
