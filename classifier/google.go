package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GoogleGemini25Flash is the default Gemini model.
const GoogleGemini25Flash = "gemini-2.5-flash"

// Google identifies languages with a Gemini model.
type Google struct {
	client *genai.Client
	model  string
	config genai.ClientConfig
}

// GoogleOption is a functional option for configuring Google.
type GoogleOption func(*Google)

// WithGoogleModel sets the model to use.
func WithGoogleModel(model string) GoogleOption {
	return func(g *Google) { g.model = model }
}

// WithGoogleBackend sets the backend to use (Gemini API or Vertex AI).
func WithGoogleBackend(backend genai.Backend) GoogleOption {
	return func(g *Google) { g.config.Backend = backend }
}

// WithGoogleProject sets the GCP project ID for Vertex AI.
func WithGoogleProject(project string) GoogleOption {
	return func(g *Google) { g.config.Project = project }
}

// WithGoogleLocation sets the GCP location/region for Vertex AI.
func WithGoogleLocation(location string) GoogleOption {
	return func(g *Google) { g.config.Location = location }
}

// WithGoogleBaseURL points the client at another endpoint.
func WithGoogleBaseURL(url string) GoogleOption {
	return func(g *Google) { g.config.HTTPOptions.BaseURL = url }
}

// WithGoogleHTTPClient sets a custom HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) { g.config.HTTPClient = client }
}

// NewGoogle creates a Gemini classifier authenticated with an API key.
func NewGoogle(ctx context.Context, apiKey string, opts ...GoogleOption) (*Google, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}
	g := &Google{
		model:  GoogleGemini25Flash,
		config: genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI},
	}
	for _, opt := range opts {
		opt(g)
	}
	client, err := genai.NewClient(ctx, &g.config)
	if err != nil {
		return nil, errors.Join(ErrClientCreationFailed, err)
	}
	g.client = client
	return g, nil
}

// Identify implements [fieldschema.Classifier].
func (g *Google) Identify(ctx context.Context, text string) (string, error) {
	temp := float32(0)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(truncate(text)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   8,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return parseAnswer(resp.Text())
}
