package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiAnalyzer struct {
	client *genai.Client
	model  contentGenerator
	log    *zap.Logger
}

func NewGeminiAnalyzer(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiAnalyzer{client: client, model: model, log: log.Named("gemini")}, nil
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (*Result, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(Prompt), genai.Blob{MIMEType: mimeType, Data: data})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.log.Error("gemini request failed", zap.String("mime_type", mimeType), zap.Error(err))
		return Failed(err), nil
	}

	raw := firstText(resp)
	g.log.Debug("gemini raw response", zap.String("preview", preview(raw, 200)))

	return ParseResponse(raw), nil
}

func (g *GeminiAnalyzer) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
