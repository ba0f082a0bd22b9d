package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/ports"
)

// DirectAskUseCase answers a question with a local document attached as
// inline model context. No retrieval, no branching.
type DirectAskUseCase struct {
	loader   ports.DocumentLoader
	answerer ports.DocumentAnswerer
	logger   *slog.Logger
}

func NewDirectAskUseCase(loader ports.DocumentLoader, answerer ports.DocumentAnswerer, logger *slog.Logger) *DirectAskUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectAskUseCase{loader: loader, answerer: answerer, logger: logger}
}

func (uc *DirectAskUseCase) AskWithDocument(ctx context.Context, question, documentPath string) (string, error) {
	doc, err := uc.loader.Load(ctx, documentPath)
	if err != nil {
		return "", fmt.Errorf("load document: %w", err)
	}
	uc.logger.Info("document_loaded", "path", doc.Path, "bytes", len(doc.Data), "pages", doc.PageCount)

	text, err := uc.answerer.AnswerWithDocument(ctx, question, doc)
	if err != nil {
		return "", fmt.Errorf("answer with document: %w", err)
	}
	return text, nil
}
