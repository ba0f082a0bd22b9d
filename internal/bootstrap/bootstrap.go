// Package bootstrap wires configuration, clients and usecases into a
// ready-to-run application per binary.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/config"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/ports"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/usecase"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/corpus/vertexrag"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/document/pdf"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/llm/gemini"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/resilience"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/storage/gcs"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/observability/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	AskUC       ports.QuestionService
	DirectAskUC ports.DocumentQuestionService
	AdminUC     ports.CorpusIngestor

	closeFn func()
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// NewAskApp wires the classify-then-retrieve pipeline: model client plus
// the managed corpus clients for retrieval and overview listing.
func NewAskApp(ctx context.Context, service string, cfg config.Config) (*App, error) {
	if err := cfg.Validate(config.Need{Corpus: true}); err != nil {
		return nil, err
	}
	logger := newLogger(service, cfg)
	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	model, err := newModelClient(ctx, cfg, executor, logger)
	if err != nil {
		return nil, err
	}

	ragClients, err := vertexrag.NewClients(ctx, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("init vertex rag clients: %w", err)
	}

	retriever := vertexrag.NewRetriever(ragClients.Rag, cfg.ProjectID, cfg.Location, cfg.RAGCorpus, executor, logger)
	admin := vertexrag.NewAdmin(ragClients.RagData, cfg.ProjectID, cfg.Location, executor, logger)

	askUC := usecase.NewAskUseCase(
		gemini.NewClassifier(model),
		retriever,
		admin,
		gemini.NewGenerator(model),
		cfg.RAGCorpus,
		cfg.RAGTopK,
		logger,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		AskUC:   askUC,
		closeFn: ragClients.Close,
	}, nil
}

// NewDirectAskApp wires the direct-context pipeline: local PDF loading
// plus a single model call. No corpus clients are constructed.
func NewDirectAskApp(ctx context.Context, service string, cfg config.Config) (*App, error) {
	if err := cfg.Validate(config.Need{}); err != nil {
		return nil, err
	}
	logger := newLogger(service, cfg)
	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	model, err := newModelClient(ctx, cfg, executor, logger)
	if err != nil {
		return nil, err
	}

	directUC := usecase.NewDirectAskUseCase(
		pdf.NewLoader(logger),
		gemini.NewGenerator(model),
		logger,
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		DirectAskUC: directUC,
	}, nil
}

// NewCorpusAdminApp wires corpus administration: object storage upload
// plus the corpus data client. The model client is not needed here.
// Which settings are required depends on the requested operation, so the
// caller passes its own Need.
func NewCorpusAdminApp(ctx context.Context, service string, cfg config.Config, need config.Need) (*App, error) {
	if err := cfg.Validate(need); err != nil {
		return nil, err
	}
	logger := newLogger(service, cfg)
	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	ragClients, err := vertexrag.NewClients(ctx, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("init vertex rag clients: %w", err)
	}

	storage, err := gcs.New(ctx, cfg.GCSBucket, logger)
	if err != nil {
		ragClients.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	admin := vertexrag.NewAdmin(ragClients.RagData, cfg.ProjectID, cfg.Location, executor, logger)
	adminUC := usecase.NewCorpusAdminUseCase(
		storage,
		admin,
		admin,
		cfg.RAGCorpus,
		cfg.ChunkSize,
		cfg.ChunkOverlap,
		logger,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		AdminUC: adminUC,
		closeFn: func() {
			_ = storage.Close()
			ragClients.Close()
		},
	}, nil
}

func newLogger(service string, cfg config.Config) *slog.Logger {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

func newModelClient(ctx context.Context, cfg config.Config, executor *resilience.Executor, logger *slog.Logger) (*gemini.Client, error) {
	model, err := gemini.New(ctx, gemini.Options{
		ProjectID:   cfg.ProjectID,
		Location:    cfg.Location,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Executor:    executor,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init model client: %w", err)
	}
	return model, nil
}
