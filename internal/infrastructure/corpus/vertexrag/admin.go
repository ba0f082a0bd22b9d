package vertexrag

import (
	"context"
	"fmt"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/api/iterator"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/resilience"
)

// Admin manages corpus lifecycle: creation, GCS imports and file
// listing. Long-running operations are awaited before returning.
type Admin struct {
	client    *aiplatform.VertexRagDataClient
	projectID string
	location  string

	executor *resilience.Executor
	logger   *slog.Logger
}

func NewAdmin(
	client *aiplatform.VertexRagDataClient,
	projectID, location string,
	executor *resilience.Executor,
	logger *slog.Logger,
) *Admin {
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultPolicy())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{
		client:    client,
		projectID: projectID,
		location:  location,
		executor:  executor,
		logger:    logger,
	}
}

func (a *Admin) CreateCorpus(ctx context.Context, displayName, description string) (string, error) {
	req := &aiplatformpb.CreateRagCorpusRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s", a.projectID, a.location),
		RagCorpus: &aiplatformpb.RagCorpus{
			DisplayName: displayName,
			Description: description,
		},
	}

	var op *aiplatform.CreateRagCorpusOperation
	err := a.executor.Execute(ctx, "rag.create_corpus", func(callCtx context.Context) error {
		var callErr error
		op, callErr = a.client.CreateRagCorpus(callCtx, req)
		return callErr
	}, classifyRPCError)
	if err != nil {
		return "", wrapRPCError(domain.ErrConfiguration, "create corpus", err)
	}

	corpus, err := op.Wait(ctx)
	if err != nil {
		return "", wrapRPCError(domain.ErrConfiguration, "await corpus creation", err)
	}

	a.logger.Info("corpus_created", "name", corpus.GetName(), "display_name", displayName)
	return corpus.GetName(), nil
}

func (a *Admin) ImportFiles(ctx context.Context, corpus string, gcsURIs []string, chunkSize, chunkOverlap int) (domain.ImportResult, error) {
	req := &aiplatformpb.ImportRagFilesRequest{
		Parent: corpus,
		ImportRagFilesConfig: &aiplatformpb.ImportRagFilesConfig{
			ImportSource: &aiplatformpb.ImportRagFilesConfig_GcsSource{
				GcsSource: &aiplatformpb.GcsSource{Uris: gcsURIs},
			},
			RagFileChunkingConfig: &aiplatformpb.RagFileChunkingConfig{
				ChunkSize:    int32(chunkSize),
				ChunkOverlap: int32(chunkOverlap),
			},
		},
	}

	var op *aiplatform.ImportRagFilesOperation
	err := a.executor.Execute(ctx, "rag.import_files", func(callCtx context.Context) error {
		var callErr error
		op, callErr = a.client.ImportRagFiles(callCtx, req)
		return callErr
	}, classifyRPCError)
	if err != nil {
		return domain.ImportResult{}, wrapRPCError(domain.ErrImport, "import files", err)
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return domain.ImportResult{}, wrapRPCError(domain.ErrImport, "await import", err)
	}

	result := domain.ImportResult{
		ImportedCount: resp.GetImportedRagFilesCount(),
		SkippedCount:  resp.GetSkippedRagFilesCount(),
		FailedCount:   resp.GetFailedRagFilesCount(),
	}
	a.logger.Info("files_imported",
		"corpus", corpus,
		"imported", result.ImportedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (a *Admin) ListFiles(ctx context.Context, corpus string) ([]domain.CorpusFile, error) {
	var files []domain.CorpusFile
	err := a.executor.Execute(ctx, "rag.list_files", func(callCtx context.Context) error {
		files = files[:0]
		it := a.client.ListRagFiles(callCtx, &aiplatformpb.ListRagFilesRequest{Parent: corpus})
		for {
			ragFile, iterErr := it.Next()
			if iterErr == iterator.Done {
				return nil
			}
			if iterErr != nil {
				return iterErr
			}
			files = append(files, toCorpusFile(ragFile))
		}
	}, classifyRPCError)
	if err != nil {
		return nil, wrapRPCError(domain.ErrRetrieval, "list corpus files", err)
	}
	return files, nil
}

func toCorpusFile(ragFile *aiplatformpb.RagFile) domain.CorpusFile {
	file := domain.CorpusFile{
		Name:        ragFile.GetName(),
		DisplayName: ragFile.GetDisplayName(),
		Description: ragFile.GetDescription(),
		State:       fileState(ragFile.GetFileStatus().GetState()),
	}
	if uris := ragFile.GetGcsSource().GetUris(); len(uris) > 0 {
		file.GCSURI = uris[0]
	}
	if created := ragFile.GetCreateTime(); created != nil {
		file.CreatedAt = created.AsTime()
	}
	if updated := ragFile.GetUpdateTime(); updated != nil {
		file.UpdatedAt = updated.AsTime()
	}
	return file
}

func fileState(state aiplatformpb.FileStatus_State) domain.CorpusFileState {
	switch state {
	case aiplatformpb.FileStatus_ACTIVE:
		return domain.CorpusFileActive
	case aiplatformpb.FileStatus_ERROR:
		return domain.CorpusFileError
	default:
		return domain.CorpusFileUnspecified
	}
}
