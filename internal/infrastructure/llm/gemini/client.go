package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/resilience"
)

// Client wraps the Vertex-backed genai client with the configured model
// parameters. All invocations go through the resilience executor.
type Client struct {
	genAI       *genai.Client
	model       string
	temperature float32
	maxTokens   int32

	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ProjectID   string
	Location    string
	Model       string
	Temperature float64
	MaxTokens   int

	Executor *resilience.Executor
	Logger   *slog.Logger
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.ProjectID == "" || opts.Location == "" {
		return nil, errors.New("gemini: project id and location are required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.Executor == nil {
		opts.Executor = resilience.NewExecutor(resilience.DefaultPolicy())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	genAIClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  opts.ProjectID,
		Location: opts.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		genAI:       genAIClient,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   int32(opts.MaxTokens),
		executor:    opts.Executor,
		logger:      opts.Logger,
	}, nil
}

func (c *Client) baseConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
}

func (c *Client) generate(
	ctx context.Context,
	operation string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (string, error) {
	var text string
	err := c.executor.Execute(ctx, operation, func(callCtx context.Context) error {
		resp, err := c.genAI.Models.GenerateContent(callCtx, c.model, contents, config)
		if err != nil {
			return fmt.Errorf("gemini %s: %w", operation, err)
		}
		text = resp.Text()
		return nil
	}, classifyGenAIError)
	if err != nil {
		return "", wrapGenAIError(operation, err)
	}
	return responseText(operation, text)
}

// responseText rejects an empty payload: it is a model answer that
// cannot be validated against any response schema.
func responseText(operation, raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", domain.WrapError(domain.ErrSchemaValidation, operation, errors.New("empty model response"))
	}
	return text, nil
}

func userContent(parts ...*genai.Part) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: parts,
	}}
}

func systemInstruction(text string) *genai.Content {
	return &genai.Content{
		Parts: []*genai.Part{genai.NewPartFromText(text)},
	}
}

// extractJSONObject trims markdown fences or prose around a JSON payload.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
