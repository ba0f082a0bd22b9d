package vertexrag

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
)

// Clients bundles the two Vertex RAG API surfaces: retrieval and corpus
// data management.
type Clients struct {
	Rag     *aiplatform.VertexRagClient
	RagData *aiplatform.VertexRagDataClient
}

func NewClients(ctx context.Context, location string) (*Clients, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
	})
	if err != nil {
		return nil, fmt.Errorf("detect default credentials: %w", err)
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)
	opts := []option.ClientOption{
		option.WithAuthCredentials(creds),
		option.WithEndpoint(endpoint),
	}

	ragClient, err := aiplatform.NewVertexRagClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vertex rag client: %w", err)
	}

	ragDataClient, err := aiplatform.NewVertexRagDataClient(ctx, opts...)
	if err != nil {
		_ = ragClient.Close()
		return nil, fmt.Errorf("create vertex rag data client: %w", err)
	}

	return &Clients{Rag: ragClient, RagData: ragDataClient}, nil
}

func (c *Clients) Close() {
	if c.Rag != nil {
		_ = c.Rag.Close()
	}
	if c.RagData != nil {
		_ = c.RagData.Close()
	}
}
