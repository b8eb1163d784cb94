// Package llm provides the text-generation and embedding client used by the
// matcher and the semantic scorer.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Default model names. Generation handles resume matching, transcript
// scoring and question generation; the embedding model backs the semantic
// blend in the similarity scorer.
const (
	DefaultGenerationModel = "gemini-1.5-flash"
	DefaultEmbeddingModel  = "text-embedding-004"
)

// Client is an abstraction over the generative model provider. The core
// never assumes the output is well formed; defensive parsing lives in the
// callers.
type Client interface {
	// GenerateContent generates text for the given prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// EmbedText returns the embedding vector for the given text.
	EmbedText(ctx context.Context, text string) ([]float32, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client          *genai.Client
	generationModel string
	embeddingModel  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		generationModel: DefaultGenerationModel,
		embeddingModel:  DefaultEmbeddingModel,
	}, nil
}

// GenerateContent generates text for the given prompt.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.generationModel)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// EmbedText returns the embedding vector for the given text.
func (c *GeminiClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	model := c.client.EmbeddingModel(c.embeddingModel)

	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	return resp.Embedding.Values, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
