package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/ports"
)

// AskUseCase drives one question through classify -> (retrieve) -> generate.
// Classification and retrieval failures are absorbed so a run degrades
// instead of aborting; generation and authentication failures propagate.
type AskUseCase struct {
	classifier  ports.QuestionClassifier
	retriever   ports.PassageRetriever
	corpusFiles ports.CorpusFileLister
	generator   ports.AnswerGenerator

	corpus string
	topK   int
	logger *slog.Logger
}

func NewAskUseCase(
	classifier ports.QuestionClassifier,
	retriever ports.PassageRetriever,
	corpusFiles ports.CorpusFileLister,
	generator ports.AnswerGenerator,
	corpus string,
	topK int,
	logger *slog.Logger,
) *AskUseCase {
	if topK <= 0 {
		topK = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AskUseCase{
		classifier:  classifier,
		retriever:   retriever,
		corpusFiles: corpusFiles,
		generator:   generator,
		corpus:      corpus,
		topK:        topK,
		logger:      logger,
	}
}

func (uc *AskUseCase) Ask(ctx context.Context, question string) (*domain.AskResult, error) {
	result := &domain.AskResult{
		RunID: uuid.NewString(),
		State: domain.StateReceived,
	}
	if question == "" {
		result.State = domain.StateFailed
		return result, domain.WrapError(domain.ErrConfiguration, "ask", errors.New("question must not be empty"))
	}
	log := uc.logger.With("run_id", result.RunID)

	questionType, err := uc.classify(ctx, log, question)
	if err != nil {
		result.State = domain.StateFailed
		return result, err
	}
	result.QuestionType = questionType
	result.State = domain.StateClassified

	var passages []domain.Passage
	if questionType == domain.QuestionSpecific {
		retrievalStart := time.Now()
		passages, err = uc.retrieve(ctx, log, question)
		result.RetrievalDuration = time.Since(retrievalStart)
		if err != nil {
			result.State = domain.StateFailed
			return result, err
		}
		result.PassageCount = len(passages)
		result.State = domain.StateRetrieved
	}

	answer, err := uc.generate(ctx, log, question, questionType, passages)
	if err != nil {
		result.State = domain.StateFailed
		return result, err
	}

	result.Answer = validateCitations(log, answer, passages)
	result.State = domain.StateAnswered
	return result, nil
}

// classify defaults to the specific label when the model output is
// unusable: attempting retrieval beats silently skipping it.
func (uc *AskUseCase) classify(ctx context.Context, log *slog.Logger, question string) (domain.QuestionType, error) {
	questionType, err := uc.classifier.ClassifyQuestion(ctx, question)
	if err == nil {
		log.Info("question_classified", "question_type", string(questionType))
		return questionType, nil
	}
	if domain.IsKind(err, domain.ErrAuthentication) {
		return "", fmt.Errorf("classify question: %w", err)
	}
	log.Warn("classification_degraded", "fallback", string(domain.QuestionSpecific), "error", err)
	return domain.QuestionSpecific, nil
}

// retrieve absorbs retrieval failures and continues with no passages.
func (uc *AskUseCase) retrieve(ctx context.Context, log *slog.Logger, question string) ([]domain.Passage, error) {
	passages, err := uc.retriever.Retrieve(ctx, question, uc.topK)
	if err == nil {
		log.Info("passages_retrieved", "count", len(passages), "top_k", uc.topK)
		return passages, nil
	}
	if domain.IsKind(err, domain.ErrAuthentication) {
		return nil, fmt.Errorf("retrieve passages: %w", err)
	}
	log.Warn("retrieval_degraded", "error", err)
	return nil, nil
}

func (uc *AskUseCase) generate(
	ctx context.Context,
	log *slog.Logger,
	question string,
	questionType domain.QuestionType,
	passages []domain.Passage,
) (domain.Answer, error) {
	if questionType == domain.QuestionOverview {
		files := uc.listCorpusFiles(ctx, log)
		answer, err := uc.generator.GenerateOverview(ctx, question, files)
		if err != nil {
			return domain.Answer{}, fmt.Errorf("generate overview answer: %w", err)
		}
		return answer, nil
	}

	answer, err := uc.generator.GenerateAnswer(ctx, question, passages)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// listCorpusFiles feeds the overview prompt; a listing failure degrades to
// an empty listing, never to a failed run.
func (uc *AskUseCase) listCorpusFiles(ctx context.Context, log *slog.Logger) []domain.CorpusFile {
	if uc.corpusFiles == nil || uc.corpus == "" {
		return nil
	}
	files, err := uc.corpusFiles.ListFiles(ctx, uc.corpus)
	if err != nil {
		log.Warn("corpus_listing_degraded", "error", err)
		return nil
	}
	return files
}

// validateCitations strips citations that do not name a supplied passage,
// keeping the no-fabricated-citations property, and recomputes grounding.
func validateCitations(log *slog.Logger, answer domain.Answer, passages []domain.Passage) domain.Answer {
	known := make(map[string]struct{}, len(passages))
	for _, p := range passages {
		known[p.SourceID] = struct{}{}
	}

	valid := make([]string, 0, len(answer.Citations))
	for _, citation := range answer.Citations {
		if _, ok := known[citation]; ok {
			valid = append(valid, citation)
			continue
		}
		log.Warn("citation_stripped", "citation", citation)
	}

	answer.Citations = valid
	answer.Grounded = len(valid) > 0
	return answer
}
