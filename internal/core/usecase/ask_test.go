package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

type classifierFake struct {
	label domain.QuestionType
	err   error
	calls int
}

func (f *classifierFake) ClassifyQuestion(context.Context, string) (domain.QuestionType, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.label, nil
}

type retrieverFake struct {
	passages []domain.Passage
	err      error
	calls    int
	topK     int
}

func (f *retrieverFake) Retrieve(_ context.Context, _ string, topK int) ([]domain.Passage, error) {
	f.calls++
	f.topK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}

type listerFake struct {
	files []domain.CorpusFile
	err   error
	calls int
}

func (f *listerFake) ListFiles(context.Context, string) ([]domain.CorpusFile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.files, nil
}

type generatorFake struct {
	answer        domain.Answer
	err           error
	gotPassages   []domain.Passage
	gotFiles      []domain.CorpusFile
	overviewCalls int
	answerCalls   int
}

func (f *generatorFake) GenerateAnswer(_ context.Context, _ string, passages []domain.Passage) (domain.Answer, error) {
	f.answerCalls++
	f.gotPassages = passages
	if f.err != nil {
		return domain.Answer{}, f.err
	}
	return f.answer, nil
}

func (f *generatorFake) GenerateOverview(_ context.Context, _ string, files []domain.CorpusFile) (domain.Answer, error) {
	f.overviewCalls++
	f.gotFiles = files
	if f.err != nil {
		return domain.Answer{}, f.err
	}
	return f.answer, nil
}

func TestAskOverviewSkipsRetrieval(t *testing.T) {
	retriever := &retrieverFake{}
	lister := &listerFake{files: []domain.CorpusFile{{DisplayName: "report.pdf"}}}
	generator := &generatorFake{answer: domain.Answer{Text: "the corpus covers incident reports"}}
	uc := NewAskUseCase(
		&classifierFake{label: domain.QuestionOverview},
		retriever,
		lister,
		generator,
		"projects/p/locations/l/ragCorpora/1",
		5,
		nil,
	)

	result, err := uc.Ask(context.Background(), "What topics does this corpus cover?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if retriever.calls != 0 {
		t.Fatalf("expected retriever never invoked for overview, got %d calls", retriever.calls)
	}
	if generator.overviewCalls != 1 || generator.answerCalls != 0 {
		t.Fatalf("expected one overview generation, got overview=%d answer=%d", generator.overviewCalls, generator.answerCalls)
	}
	if len(generator.gotFiles) != 1 {
		t.Fatalf("expected corpus listing passed to generator, got %d files", len(generator.gotFiles))
	}
	if result.State != domain.StateAnswered {
		t.Fatalf("expected state answered, got %s", result.State)
	}
	if len(result.Answer.Citations) != 0 || result.Answer.Grounded {
		t.Fatalf("expected ungrounded answer with no citations, got %+v", result.Answer)
	}
}

func TestAskSpecificRetrievesOnce(t *testing.T) {
	passages := []domain.Passage{
		{SourceID: "doc-a", Text: "latency budget is 200ms", Score: 0.92},
		{SourceID: "doc-b", Text: "section 3.2", Score: 0.81},
	}
	retriever := &retrieverFake{passages: passages}
	generator := &generatorFake{answer: domain.Answer{Text: "200ms", Citations: []string{"doc-a"}}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionSpecific}, retriever, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "What does section 3.2 say about latency budgets?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if retriever.calls != 1 {
		t.Fatalf("expected exactly one retrieval, got %d", retriever.calls)
	}
	if retriever.topK != 5 {
		t.Fatalf("expected top_k=5, got %d", retriever.topK)
	}
	if len(generator.gotPassages) != 2 {
		t.Fatalf("expected passages forwarded to generator, got %d", len(generator.gotPassages))
	}
	if result.State != domain.StateAnswered {
		t.Fatalf("expected state answered, got %s", result.State)
	}
	if !result.Answer.Grounded || len(result.Answer.Citations) != 1 || result.Answer.Citations[0] != "doc-a" {
		t.Fatalf("expected grounded answer citing doc-a, got %+v", result.Answer)
	}
}

func TestAskRetrievalFailureDegrades(t *testing.T) {
	retriever := &retrieverFake{err: domain.WrapError(domain.ErrRetrieval, "retrieve", errors.New("corpus not found"))}
	generator := &generatorFake{answer: domain.Answer{Text: "best effort", Citations: []string{}}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionSpecific}, retriever, nil, generator, "", 3, nil)

	result, err := uc.Ask(context.Background(), "specific question")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.State != domain.StateAnswered {
		t.Fatalf("expected answered despite retrieval failure, got %s", result.State)
	}
	if generator.gotPassages != nil {
		t.Fatalf("expected empty passage set after retrieval failure, got %d", len(generator.gotPassages))
	}
	if len(result.Answer.Citations) != 0 || result.Answer.Grounded {
		t.Fatalf("expected degraded ungrounded answer, got %+v", result.Answer)
	}
}

func TestAskClassificationFailureDefaultsToSpecific(t *testing.T) {
	classifier := &classifierFake{err: domain.WrapError(domain.ErrClassification, "classify", errors.New("label: banana"))}
	retriever := &retrieverFake{}
	generator := &generatorFake{answer: domain.Answer{Text: "ok"}}
	uc := NewAskUseCase(classifier, retriever, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "ambiguous question")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.QuestionType != domain.QuestionSpecific {
		t.Fatalf("expected fallback to specific, got %s", result.QuestionType)
	}
	if retriever.calls != 1 {
		t.Fatalf("expected retrieval after fallback, got %d calls", retriever.calls)
	}
}

func TestAskStripsFabricatedCitations(t *testing.T) {
	retriever := &retrieverFake{passages: []domain.Passage{{SourceID: "doc-a", Score: 0.9}}}
	generator := &generatorFake{answer: domain.Answer{Text: "x", Citations: []string{"doc-a", "doc-z"}}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionSpecific}, retriever, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(result.Answer.Citations) != 1 || result.Answer.Citations[0] != "doc-a" {
		t.Fatalf("expected fabricated citation stripped, got %v", result.Answer.Citations)
	}
}

func TestAskGenerationFailurePropagates(t *testing.T) {
	generator := &generatorFake{err: domain.WrapError(domain.ErrSchemaValidation, "generate", errors.New("not json"))}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionSpecific}, &retrieverFake{}, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "q")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrSchemaValidation) {
		t.Fatalf("expected schema validation kind, got %v", err)
	}
	if result.State != domain.StateFailed {
		t.Fatalf("expected state failed, got %s", result.State)
	}
}

func TestAskAuthenticationFailureIsFatal(t *testing.T) {
	classifier := &classifierFake{err: domain.WrapError(domain.ErrAuthentication, "classify", errors.New("permission denied"))}
	retriever := &retrieverFake{}
	uc := NewAskUseCase(classifier, retriever, nil, &generatorFake{}, "", 5, nil)

	result, err := uc.Ask(context.Background(), "q")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication kind, got %v", err)
	}
	if result.State != domain.StateFailed {
		t.Fatalf("expected state failed, got %s", result.State)
	}
	if retriever.calls != 0 {
		t.Fatalf("expected no retrieval after fatal classification, got %d", retriever.calls)
	}
}

func TestAskOverviewListingFailureDegrades(t *testing.T) {
	lister := &listerFake{err: errors.New("listing unavailable")}
	generator := &generatorFake{answer: domain.Answer{Text: "overview"}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionOverview}, &retrieverFake{}, lister, generator, "corpus", 5, nil)

	result, err := uc.Ask(context.Background(), "what is in here?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.State != domain.StateAnswered {
		t.Fatalf("expected answered, got %s", result.State)
	}
	if generator.gotFiles != nil {
		t.Fatalf("expected empty listing after failure, got %d files", len(generator.gotFiles))
	}
}

func TestAskReportsRetrievalStats(t *testing.T) {
	passages := []domain.Passage{
		{SourceID: "doc-a", Score: 0.9},
		{SourceID: "doc-b", Score: 0.7},
	}
	generator := &generatorFake{answer: domain.Answer{Text: "ok"}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionSpecific}, &retrieverFake{passages: passages}, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.PassageCount != 2 {
		t.Fatalf("expected passage count 2, got %d", result.PassageCount)
	}
	if result.RetrievalDuration <= 0 {
		t.Fatalf("expected retrieval duration recorded, got %v", result.RetrievalDuration)
	}
}

func TestAskOverviewLeavesRetrievalStatsZero(t *testing.T) {
	generator := &generatorFake{answer: domain.Answer{Text: "overview"}}
	uc := NewAskUseCase(&classifierFake{label: domain.QuestionOverview}, &retrieverFake{}, nil, generator, "", 5, nil)

	result, err := uc.Ask(context.Background(), "what is in here?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if result.PassageCount != 0 || result.RetrievalDuration != 0 {
		t.Fatalf("expected zero retrieval stats for overview, got count=%d duration=%v", result.PassageCount, result.RetrievalDuration)
	}
}

func TestAskEmptyQuestionFailsFast(t *testing.T) {
	classifier := &classifierFake{label: domain.QuestionSpecific}
	uc := NewAskUseCase(classifier, &retrieverFake{}, nil, &generatorFake{}, "", 5, nil)

	_, err := uc.Ask(context.Background(), "")
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("expected no classification for empty question, got %d", classifier.calls)
	}
}
