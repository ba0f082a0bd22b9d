package vertexrag

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/resilience"
)

// Retriever queries one managed corpus for the passages most relevant to
// a question. Results are ordered by descending score and capped at K.
type Retriever struct {
	client    *aiplatform.VertexRagClient
	projectID string
	location  string
	corpus    string

	executor *resilience.Executor
	logger   *slog.Logger
}

func NewRetriever(
	client *aiplatform.VertexRagClient,
	projectID, location, corpus string,
	executor *resilience.Executor,
	logger *slog.Logger,
) *Retriever {
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultPolicy())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		client:    client,
		projectID: projectID,
		location:  location,
		corpus:    corpus,
		executor:  executor,
		logger:    logger,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]domain.Passage, error) {
	if topK <= 0 {
		topK = 5
	}

	req := &aiplatformpb.RetrieveContextsRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s", r.projectID, r.location),
		Query: &aiplatformpb.RagQuery{
			Query:          &aiplatformpb.RagQuery_Text{Text: question},
			SimilarityTopK: int32(topK),
		},
		DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
			VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
				RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
					{RagCorpus: r.corpus},
				},
			},
		},
	}

	var resp *aiplatformpb.RetrieveContextsResponse
	err := r.executor.Execute(ctx, "rag.retrieve", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = r.client.RetrieveContexts(callCtx, req)
		return callErr
	}, classifyRPCError)
	if err != nil {
		return nil, wrapRPCError(domain.ErrRetrieval, "retrieve contexts", err)
	}

	passages := sortAndTruncate(passagesFromResponse(resp), topK)
	r.logger.Debug("contexts_retrieved", "corpus", r.corpus, "count", len(passages))
	return passages, nil
}

func passagesFromResponse(resp *aiplatformpb.RetrieveContextsResponse) []domain.Passage {
	contexts := resp.GetContexts().GetContexts()
	passages := make([]domain.Passage, 0, len(contexts))
	for _, c := range contexts {
		sourceID := c.GetSourceDisplayName()
		if sourceID == "" {
			sourceID = c.GetSourceUri()
		}
		passages = append(passages, domain.Passage{
			SourceID:  sourceID,
			SourceURI: c.GetSourceUri(),
			Text:      c.GetText(),
			Score:     c.GetScore(),
		})
	}
	return passages
}

// sortAndTruncate enforces the retrieval contract independently of
// service-side ordering.
func sortAndTruncate(passages []domain.Passage, topK int) []domain.Passage {
	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})
	if len(passages) > topK {
		passages = passages[:topK]
	}
	return passages
}
