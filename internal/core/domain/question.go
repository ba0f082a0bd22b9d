package domain

import "time"

type QuestionType string

const (
	QuestionOverview QuestionType = "corpus_overview"
	QuestionSpecific QuestionType = "specific_query"
)

// ParseQuestionType maps raw model output onto the closed label set.
func ParseQuestionType(raw string) (QuestionType, bool) {
	switch QuestionType(raw) {
	case QuestionOverview:
		return QuestionOverview, true
	case QuestionSpecific:
		return QuestionSpecific, true
	default:
		return "", false
	}
}

type PipelineState string

const (
	StateReceived   PipelineState = "received"
	StateClassified PipelineState = "classified"
	StateRetrieved  PipelineState = "retrieved"
	StateAnswered   PipelineState = "answered"
	StateFailed     PipelineState = "failed"
)

type Passage struct {
	SourceID  string  `json:"source_id"`
	SourceURI string  `json:"source_uri,omitempty"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

type Answer struct {
	Text      string   `json:"text"`
	Citations []string `json:"citations"`
	Grounded  bool     `json:"grounded"`
}

// AskResult is the terminal pipeline outcome. RetrievalDuration and
// PassageCount stay zero for runs that never reach retrieval.
type AskResult struct {
	RunID             string        `json:"run_id"`
	State             PipelineState `json:"state"`
	QuestionType      QuestionType  `json:"question_type"`
	Answer            Answer        `json:"answer"`
	PassageCount      int           `json:"passage_count"`
	RetrievalDuration time.Duration `json:"retrieval_duration,omitempty"`
}
