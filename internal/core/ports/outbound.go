package ports

import (
	"context"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// QuestionClassifier labels an incoming question with one of the closed
// question types. A response outside the label set is a ClassificationError.
type QuestionClassifier interface {
	ClassifyQuestion(ctx context.Context, question string) (domain.QuestionType, error)
}

// PassageRetriever queries the managed corpus for the top-K passages,
// ordered by descending relevance score.
type PassageRetriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]domain.Passage, error)
}

// AnswerGenerator produces the structured final answer, tolerating an
// empty passage set. Overview answers are never citation-grounded.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, passages []domain.Passage) (domain.Answer, error)
	GenerateOverview(ctx context.Context, question string, files []domain.CorpusFile) (domain.Answer, error)
}

// DocumentAnswerer answers a question with a local document attached as
// inline model context.
type DocumentAnswerer interface {
	AnswerWithDocument(ctx context.Context, question string, doc domain.InlineDocument) (string, error)
}

// DocumentLoader reads and validates a local document for inline use.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (domain.InlineDocument, error)
}

// CorpusFileLister reads the metadata of files indexed in the corpus.
type CorpusFileLister interface {
	ListFiles(ctx context.Context, corpus string) ([]domain.CorpusFile, error)
}

// CorpusAdmin manages the corpus lifecycle. ImportFiles returns once the
// import is accepted; indexing completes asynchronously.
type CorpusAdmin interface {
	CreateCorpus(ctx context.Context, displayName, description string) (string, error)
	ImportFiles(ctx context.Context, corpus string, gcsURIs []string, chunkSize, chunkOverlap int) (domain.ImportResult, error)
}

// ObjectStorage uploads local files to object storage and returns the
// stored object URI.
type ObjectStorage interface {
	Upload(ctx context.Context, localPath, destObject string) (string, error)
}
