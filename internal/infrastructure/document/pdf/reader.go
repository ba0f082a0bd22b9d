package pdf

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

const mimeTypePDF = "application/pdf"

// Loader reads a local PDF into memory for inline model requests.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

func (l *Loader) Load(ctx context.Context, path string) (domain.InlineDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.InlineDocument{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.InlineDocument{}, domain.WrapError(domain.ErrConfiguration, "read document", err)
	}

	pageCount := countPages(data)
	if pageCount == 0 {
		l.logger.Warn("document_page_count_unavailable", "path", path)
	} else {
		l.logger.Debug("document_loaded", "path", path, "pages", pageCount, "bytes", len(data))
	}

	return domain.InlineDocument{
		Path:      path,
		MimeType:  mimeTypePDF,
		Data:      data,
		PageCount: pageCount,
	}, nil
}

// countPages returns 0 when the file cannot be parsed as a PDF. The
// parser panics on some malformed inputs, so the recover stays.
func countPages(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
