package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

// Classifier labels a question with one of the closed question types via
// a single schema-constrained model call.
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

var questionTypeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"question_type": {
			Type: genai.TypeString,
			Enum: []string{string(domain.QuestionOverview), string(domain.QuestionSpecific)},
		},
	},
	Required: []string{"question_type"},
}

func (c *Classifier) ClassifyQuestion(ctx context.Context, question string) (domain.QuestionType, error) {
	config := c.client.baseConfig()
	config.SystemInstruction = systemInstruction(classificationInstruction)
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = questionTypeSchema

	raw, err := c.client.generate(ctx, "model.classify", userContent(genai.NewPartFromText(question)), config)
	if err != nil {
		return "", err
	}
	return parseQuestionType(raw)
}

func parseQuestionType(raw string) (domain.QuestionType, error) {
	var payload struct {
		QuestionType string `json:"question_type"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return "", domain.WrapError(domain.ErrClassification, "parse question type", err)
	}

	questionType, ok := domain.ParseQuestionType(payload.QuestionType)
	if !ok {
		return "", domain.WrapError(domain.ErrClassification, "parse question type",
			fmt.Errorf("label %q is not in the label set", payload.QuestionType))
	}
	return questionType, nil
}
