package domain

import "time"

type CorpusFileState string

const (
	CorpusFileActive      CorpusFileState = "active"
	CorpusFileError       CorpusFileState = "error"
	CorpusFileUnspecified CorpusFileState = "unspecified"
)

// CorpusFile is the metadata view of one indexed file in a managed corpus.
type CorpusFile struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description,omitempty"`
	State       CorpusFileState `json:"state"`
	GCSURI      string          `json:"gcs_uri,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// ImportResult reports an accepted corpus import. Indexing completes
// asynchronously on the managed service after the call returns.
type ImportResult struct {
	ImportedCount int64 `json:"imported_count"`
	SkippedCount  int64 `json:"skipped_count"`
	FailedCount   int64 `json:"failed_count"`
}
