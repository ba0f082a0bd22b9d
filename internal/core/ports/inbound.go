package ports

import (
	"context"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// QuestionService is the inbound contract for the classify-then-retrieve pipeline.
type QuestionService interface {
	Ask(ctx context.Context, question string) (*domain.AskResult, error)
}

// DocumentQuestionService is the inbound contract for the direct-context pipeline.
type DocumentQuestionService interface {
	AskWithDocument(ctx context.Context, question, documentPath string) (string, error)
}

// CorpusIngestor is the inbound contract for corpus administration.
type CorpusIngestor interface {
	CreateCorpus(ctx context.Context, displayName, description string) (string, error)
	UploadAndImport(ctx context.Context, localPath string) (string, domain.ImportResult, error)
	ListFiles(ctx context.Context) ([]domain.CorpusFile, error)
}
