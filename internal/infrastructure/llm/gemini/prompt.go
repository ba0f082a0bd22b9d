package gemini

import (
	"fmt"
	"strings"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

const classificationInstruction = `Analyze the user's question and determine its type:
1. 'corpus_overview' - if asking about all files, listing files, or a general overview of the knowledge base
2. 'specific_query' - if asking a specific question that needs to be answered from particular file(s)

Respond with ONLY 'corpus_overview' or 'specific_query'.`

const answerInstruction = `You are a helpful assistant. Answer the user's question using the provided context.
Return a JSON object with keys: answer (string), citations (array of source ids you actually used).
Cite only source ids that appear in the context. If the context is insufficient, say so in the answer and return an empty citations array.`

func buildAnswerPrompt(question string, passages []domain.Passage) string {
	if len(passages) == 0 {
		return fmt.Sprintf(`Question:
%s

Context:
No relevant context was found in the knowledge base.
`, question)
	}

	var contextBuilder strings.Builder
	for _, passage := range passages {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%s] score=%.3f\n%s\n\n",
			passage.SourceID,
			passage.Score,
			passage.Text,
		))
	}

	return fmt.Sprintf(`Question:
%s

Context:
%s`, question, contextBuilder.String())
}

func buildOverviewPrompt(question string, files []domain.CorpusFile) string {
	if len(files) == 0 {
		return fmt.Sprintf(`Question:
%s

Knowledge base listing:
No file listing is available.
`, question)
	}

	var listing strings.Builder
	for _, file := range files {
		listing.WriteString(fmt.Sprintf("- %s (%s)", file.DisplayName, file.State))
		if file.Description != "" {
			listing.WriteString(": " + file.Description)
		}
		if file.GCSURI != "" {
			listing.WriteString(" => " + file.GCSURI)
		}
		listing.WriteString("\n")
	}

	return fmt.Sprintf(`Answer the user's question about the knowledge base using only the file listing below.
Mention only files that appear in the listing.

Question:
%s

Knowledge base listing:
%s`, question, listing.String())
}
