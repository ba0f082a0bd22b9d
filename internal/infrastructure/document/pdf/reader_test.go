package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

func TestLoadMissingFileIsConfigurationError(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadMalformedFileStillReturnsBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := NewLoader(nil)
	doc, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.MimeType != "application/pdf" {
		t.Fatalf("unexpected mime type %q", doc.MimeType)
	}
	if len(doc.Data) == 0 {
		t.Fatalf("expected document bytes to survive parse failure")
	}
	if doc.PageCount != 0 {
		t.Fatalf("expected zero page count for malformed file, got %d", doc.PageCount)
	}
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(nil)
	if _, err := loader.Load(ctx, "any.pdf"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
