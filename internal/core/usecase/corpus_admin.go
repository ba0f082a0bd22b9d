package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/ports"
)

// CorpusAdminUseCase runs the on-demand corpus operations: create a corpus,
// upload a local file to object storage, and import it into the corpus
// index. Import acceptance does not mean the corpus is queryable yet.
type CorpusAdminUseCase struct {
	storage ports.ObjectStorage
	admin   ports.CorpusAdmin
	lister  ports.CorpusFileLister

	corpus       string
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger
}

func NewCorpusAdminUseCase(
	storage ports.ObjectStorage,
	admin ports.CorpusAdmin,
	lister ports.CorpusFileLister,
	corpus string,
	chunkSize, chunkOverlap int,
	logger *slog.Logger,
) *CorpusAdminUseCase {
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	if chunkOverlap < 0 {
		chunkOverlap = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusAdminUseCase{
		storage:      storage,
		admin:        admin,
		lister:       lister,
		corpus:       corpus,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
	}
}

func (uc *CorpusAdminUseCase) CreateCorpus(ctx context.Context, displayName, description string) (string, error) {
	if displayName == "" {
		return "", domain.WrapError(domain.ErrConfiguration, "create corpus", errors.New("display name must not be empty"))
	}
	name, err := uc.admin.CreateCorpus(ctx, displayName, description)
	if err != nil {
		return "", fmt.Errorf("create corpus: %w", err)
	}
	uc.logger.Info("corpus_created", "name", name, "display_name", displayName)
	return name, nil
}

// UploadAndImport pushes a local file to object storage and asks the
// managed service to index it under the configured corpus.
func (uc *CorpusAdminUseCase) UploadAndImport(ctx context.Context, localPath string) (string, domain.ImportResult, error) {
	if localPath == "" {
		return "", domain.ImportResult{}, domain.WrapError(domain.ErrConfiguration, "upload and import", errors.New("local path must not be empty"))
	}
	if uc.corpus == "" {
		return "", domain.ImportResult{}, domain.WrapError(domain.ErrConfiguration, "upload and import", errors.New("corpus reference is not configured"))
	}

	uri, err := uc.storage.Upload(ctx, localPath, filepath.Base(localPath))
	if err != nil {
		return "", domain.ImportResult{}, fmt.Errorf("upload to object storage: %w", err)
	}
	uc.logger.Info("file_uploaded", "uri", uri)

	result, err := uc.admin.ImportFiles(ctx, uc.corpus, []string{uri}, uc.chunkSize, uc.chunkOverlap)
	if err != nil {
		return uri, domain.ImportResult{}, fmt.Errorf("import into corpus: %w", err)
	}
	uc.logger.Info("import_accepted",
		"corpus", uc.corpus,
		"imported", result.ImportedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return uri, result, nil
}

func (uc *CorpusAdminUseCase) ListFiles(ctx context.Context) ([]domain.CorpusFile, error) {
	if uc.corpus == "" {
		return nil, domain.WrapError(domain.ErrConfiguration, "list corpus files", errors.New("corpus reference is not configured"))
	}
	files, err := uc.lister.ListFiles(ctx, uc.corpus)
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}
	return files, nil
}
