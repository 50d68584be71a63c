// Package source opens line-oriented record streams from local files,
// compressed dumps, or S3-compatible object storage, and decodes them one
// JSONL record at a time.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"catalog-sampler/utils"
)

// RemoteConfig carries the connection details for s3:// sources.
type RemoteConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// Timeout bounds the remote open (existence check included); zero
	// means no bound.
	Timeout time.Duration
}

// Stream is one open source stream. Close releases the underlying handle
// and any decompression layers.
type Stream struct {
	io.Reader
	closers []io.Closer
}

// Close closes the decompression layers and the underlying handle, in order.
func (s *Stream) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsRemote reports whether path names an object-storage source.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// Open opens path as a forward-only stream. Local paths ending in .gz or
// .zst are decompressed transparently; s3://bucket/key paths are fetched
// from the configured object store with retry on the initial open.
func Open(ctx context.Context, path string, remote RemoteConfig, logger *utils.Logger) (*Stream, error) {
	var (
		raw io.ReadCloser
		err error
	)
	if IsRemote(path) {
		raw, err = openRemote(ctx, path, remote, logger)
	} else {
		raw, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}

	stream := &Stream{Reader: raw, closers: []io.Closer{raw}}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("source: gzip reader for %q: %w", path, err)
		}
		stream.Reader = gz
		stream.closers = []io.Closer{gz, raw}
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("source: zstd reader for %q: %w", path, err)
		}
		stream.Reader = zr
		stream.closers = []io.Closer{zr.IOReadCloser(), raw}
	}

	return stream, nil
}

// openRemote fetches an s3://bucket/key object. The existence check runs
// under the configured timeout and retries with back-off, since transient
// object-store hiccups should not kill a multi-hour sampling run before it
// starts.
func openRemote(ctx context.Context, path string, remote RemoteConfig, logger *utils.Logger) (io.ReadCloser, error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}
	if remote.Endpoint == "" {
		return nil, fmt.Errorf("s3 source %q requires an object-store endpoint", path)
	}

	client, err := minio.New(remote.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(remote.AccessKey, remote.SecretKey, ""),
		Secure: remote.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}

	statCtx := ctx
	if remote.Timeout > 0 {
		var cancel context.CancelFunc
		statCtx, cancel = context.WithTimeout(ctx, remote.Timeout)
		defer cancel()
	}

	retry := &utils.Retry{Attempts: 3, BaseDelay: time.Second, Logger: logger}
	err = retry.Do("stat "+path, func() error {
		_, statErr := client.StatObject(statCtx, bucket, key, minio.StatObjectOptions{})
		return statErr
	})
	if err != nil {
		return nil, err
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return obj, nil
}

func splitS3Path(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 path %q, want s3://bucket/key", path)
	}
	return bucket, key, nil
}
