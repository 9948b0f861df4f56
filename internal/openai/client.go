package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"healthrecord/internal/analyzer"
	"healthrecord/internal/config"
)

// Client calls the chat-completions API and implements analyzer.Analyzer.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

type ContentItem struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
	File     *FilePart `json:"file,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type FilePart struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type ChatMessage struct {
	Role    string        `json:"role"`
	Content []ContentItem `json:"content"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage TokenUsage `json:"usage"`
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const systemPrompt = `You are a medical document explainer for patients.
Use simple, everyday language that anyone can understand.
Avoid medical jargon; if a term is unavoidable, explain it in plain words.
Answer with a single JSON object and nothing else.`

func NewClient(cfg config.AnalyzerConfig, log *zap.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Client{
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		baseURL:    strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		log:        log.Named("openai"),
	}, nil
}

// documentBaseName names every file part sent to the API. Upload file names
// never leave the service; the extension follows the content type.
const documentBaseName = "report"

func documentFileName(mimeType string) string {
	ext := ".pdf"
	if mt := mimetype.Lookup(mimeType); mt != nil && mt.Extension() != "" {
		ext = mt.Extension()
	}
	return documentBaseName + ext
}

// documentPart embeds the file as a data URL: images go through image_url,
// everything else (PDF) through a file part.
func documentPart(data []byte, mimeType string) ContentItem {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	if strings.HasPrefix(mimeType, "image/") {
		return ContentItem{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}}
	}
	return ContentItem{Type: "file", File: &FilePart{Filename: documentFileName(mimeType), FileData: dataURL}}
}

func (c *Client) Analyze(ctx context.Context, data []byte, mimeType string) (*analyzer.Result, error) {
	content, usage, err := c.complete(ctx, []ChatMessage{
		{
			Role:    "system",
			Content: []ContentItem{{Type: "text", Text: systemPrompt}},
		},
		{
			Role: "user",
			Content: []ContentItem{
				{Type: "text", Text: analyzer.Prompt},
				documentPart(data, mimeType),
			},
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Error("openai request failed", zap.String("mime_type", mimeType), zap.Error(err))
		return analyzer.Failed(err), nil
	}

	c.log.Debug("openai raw response",
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Int("length", len(content)),
	)

	return analyzer.ParseResponse(content), nil
}

func (c *Client) complete(ctx context.Context, messages []ChatMessage) (string, TokenUsage, error) {
	req := ChatCompletionRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.2,
		MaxTokens:      3000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", TokenUsage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", TokenUsage{}, fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", TokenUsage{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errorResponse struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(response.Body).Decode(&errorResponse); err != nil || errorResponse.Error.Message == "" {
			return "", TokenUsage{}, fmt.Errorf("OpenAI API returned non-200 status code: %d", response.StatusCode)
		}
		return "", TokenUsage{}, fmt.Errorf("OpenAI API error: %s", errorResponse.Error.Message)
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", TokenUsage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", result.Usage, fmt.Errorf("no completion choices returned")
	}

	return result.Choices[0].Message.Content, result.Usage, nil
}
