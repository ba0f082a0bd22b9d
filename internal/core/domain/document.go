package domain

// InlineDocument is a local document attached directly to a model request.
type InlineDocument struct {
	Path      string `json:"path"`
	MimeType  string `json:"mime_type"`
	Data      []byte `json:"-"`
	PageCount int    `json:"page_count,omitempty"`
}
