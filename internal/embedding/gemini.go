package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const geminiEmbeddingModel = "text-embedding-004"

type geminiEmbedder struct {
	model *genai.EmbeddingModel
}

// NewGeminiEmbedder wraps a shared Gemini client as an Embedder.
func NewGeminiEmbedder(client *genai.Client) Embedder {
	return &geminiEmbedder{model: client.EmbeddingModel(geminiEmbeddingModel)}
}

func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return res.Embedding.Values, nil
}
