package loader

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	objects map[string]string // bucket/key -> body
	calls   int
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	body, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"s3://bench/graphs/male.csv", "bench", "graphs/male.csv", false},
		{"s3://bench/m.csv.sz", "bench", "m.csv.sz", false},
		{"s3://bench", "", "", true},
		{"s3:///key.csv", "", "", true},
		{"gs://bench/key.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				if !errors.Is(err, ErrBadSource) {
					t.Errorf("ParseS3URI(%q) error = %v, want ErrBadSource", tt.uri, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseS3URI(%q) unexpected error: %v", tt.uri, err)
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("ParseS3URI(%q) = %q, %q, want %q, %q", tt.uri, bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestLoader_ReadFromS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"bench/male.csv":    "s,t,w\nA,B,5\n",
		"bench/mapping.csv": "m,f\nA,1\nB,2\n",
	}}
	opts := DefaultOptions()
	opts.S3Client = fake
	l := New(opts)

	edges, err := l.ReadEdges(context.Background(), "s3://bench/male.csv")
	if err != nil {
		t.Fatalf("ReadEdges() unexpected error: %v", err)
	}
	if len(edges.Table) != 1 {
		t.Errorf("Expected 1 edge, got %d", len(edges.Table))
	}

	mapping, err := l.ReadMapping(context.Background(), "s3://bench/mapping.csv")
	if err != nil {
		t.Fatalf("ReadMapping() unexpected error: %v", err)
	}
	if len(mapping.Mapping) != 2 {
		t.Errorf("Expected 2 mapping entries, got %d", len(mapping.Mapping))
	}
	if fake.calls != 2 {
		t.Errorf("Expected 2 GetObject calls, got %d", fake.calls)
	}
}

func TestLoader_S3MissingObject(t *testing.T) {
	opts := DefaultOptions()
	opts.S3Client = &fakeS3{objects: map[string]string{}}

	_, err := New(opts).ReadEdges(context.Background(), "s3://bench/absent.csv")
	if !IsIO(err) {
		t.Fatalf("Expected IO error, got %v", err)
	}
}

func TestLoader_S3BadURI(t *testing.T) {
	opts := DefaultOptions()
	opts.S3Client = &fakeS3{}

	_, err := New(opts).ReadEdges(context.Background(), "s3://only-bucket")
	if !errors.Is(err, ErrBadSource) {
		t.Fatalf("Expected ErrBadSource, got %v", err)
	}
}
