package gemini

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/genai"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// Generator produces the final answers: structured citation-bearing
// answers for retrieval runs, free-text summaries for overview runs, and
// direct answers over an inline document.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

var answerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"answer": {
			Type: genai.TypeString,
		},
		"citations": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"answer", "citations"},
}

func (g *Generator) GenerateAnswer(ctx context.Context, question string, passages []domain.Passage) (domain.Answer, error) {
	config := g.client.baseConfig()
	config.SystemInstruction = systemInstruction(answerInstruction)
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = answerSchema

	prompt := buildAnswerPrompt(question, passages)
	raw, err := g.client.generate(ctx, "model.answer", userContent(genai.NewPartFromText(prompt)), config)
	if err != nil {
		return domain.Answer{}, err
	}
	return parseAnswer(raw)
}

func (g *Generator) GenerateOverview(ctx context.Context, question string, files []domain.CorpusFile) (domain.Answer, error) {
	prompt := buildOverviewPrompt(question, files)
	text, err := g.client.generate(ctx, "model.overview", userContent(genai.NewPartFromText(prompt)), g.client.baseConfig())
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Text: text, Citations: []string{}, Grounded: false}, nil
}

func (g *Generator) AnswerWithDocument(ctx context.Context, question string, doc domain.InlineDocument) (string, error) {
	contents := userContent(
		genai.NewPartFromText(question),
		genai.NewPartFromBytes(doc.Data, doc.MimeType),
	)
	return g.client.generate(ctx, "model.document_answer", contents, g.client.baseConfig())
}

func parseAnswer(raw string) (domain.Answer, error) {
	var payload struct {
		Answer    string   `json:"answer"`
		Citations []string `json:"citations"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return domain.Answer{}, domain.WrapError(domain.ErrSchemaValidation, "parse answer", err)
	}
	if payload.Answer == "" {
		return domain.Answer{}, domain.WrapError(domain.ErrSchemaValidation, "parse answer", errors.New("missing answer field"))
	}
	if payload.Citations == nil {
		payload.Citations = []string{}
	}
	return domain.Answer{
		Text:      payload.Answer,
		Citations: payload.Citations,
		Grounded:  len(payload.Citations) > 0,
	}, nil
}
