package analysis

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const geminiAnalysisModel = "gemini-2.0-flash"

type geminiProvider struct {
	model *genai.GenerativeModel
}

// NewGeminiProvider wraps a shared Gemini client as an analysis Provider.
func NewGeminiProvider(client *genai.Client) Provider {
	return &geminiProvider{model: client.GenerativeModel(geminiAnalysisModel)}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no content")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}
