package gcs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// Storage uploads local files into one bucket and reports the resulting
// gs:// URI for corpus imports.
type Storage struct {
	client *storage.Client
	bucket string
	logger *slog.Logger
}

func New(ctx context.Context, bucket string, logger *slog.Logger) (*Storage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpload, "create storage client", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{
		client: client,
		bucket: normalizeBucket(bucket),
		logger: logger,
	}, nil
}

func (s *Storage) Upload(ctx context.Context, localPath, destObject string) (string, error) {
	source, err := os.Open(localPath)
	if err != nil {
		return "", domain.WrapError(domain.ErrUpload, "open local file", err)
	}
	defer source.Close()

	writer := s.client.Bucket(s.bucket).Object(destObject).NewWriter(ctx)
	if _, err := io.Copy(writer, source); err != nil {
		_ = writer.Close()
		return "", domain.WrapError(domain.ErrUpload, "write object", err)
	}
	if err := writer.Close(); err != nil {
		return "", domain.WrapError(domain.ErrUpload, "finalize object", err)
	}

	uri := fmt.Sprintf("gs://%s/%s", s.bucket, destObject)
	s.logger.Info("object_uploaded", "local_path", localPath, "uri", uri)
	return uri, nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

// normalizeBucket accepts both bare bucket names and gs:// URIs.
func normalizeBucket(bucket string) string {
	bucket = strings.TrimPrefix(bucket, "gs://")
	return strings.TrimSuffix(bucket, "/")
}
