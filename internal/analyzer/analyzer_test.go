package analyzer

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOK      bool
		wantTitle   string
		wantMessage string
	}{
		{
			name:      "plain json",
			raw:       `{"title":"CBC","date":"2024-01-02","summary":"Blood count","suggested_questions":["Is it normal?"]}`,
			wantOK:    true,
			wantTitle: "CBC",
		},
		{
			name:      "fenced json with prose",
			raw:       "Here you go:\n```json\n{\"title\":\"Lipid Panel\",\"summary\":\"Cholesterol\"}\n```",
			wantOK:    true,
			wantTitle: "Lipid Panel",
		},
		{
			name:        "prose only",
			raw:         "I cannot read this document.",
			wantMessage: "I cannot read this document.",
		},
		{
			name:        "empty",
			raw:         "",
			wantMessage: MessageNoStructuredData,
		},
		{
			name:        "broken json",
			raw:         `{"title": "CBC",`,
			wantMessage: `{"title": "CBC",`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseResponse(tt.raw)

			assert.Equal(t, tt.wantOK, res.OK)
			assert.Equal(t, tt.raw, res.RawText)
			if tt.wantOK {
				require.NotNil(t, res.Fields)
				assert.Equal(t, tt.wantTitle, res.Fields.Title)
			} else {
				assert.Nil(t, res.Fields)
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestParseResponseKeepsQuestionOrder(t *testing.T) {
	res := ParseResponse(`{"suggested_questions":["first","second","third"]}`)

	require.True(t, res.OK)
	assert.Equal(t, []string{"first", "second", "third"}, res.Fields.SuggestedQuestions)
	assert.Empty(t, res.Fields.Title)
}

type fakeGenerator struct {
	parts []genai.Part
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, genai.Text(t))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeminiAnalyze(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(`{"title":"Thyroid Panel",`, `"summary":"TSH within range"}`)}
	g := &GeminiAnalyzer{model: gen, log: zap.NewNop()}

	res, err := g.Analyze(context.Background(), []byte("%PDF"), "application/pdf")

	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "Thyroid Panel", res.Fields.Title)
	require.Len(t, gen.parts, 2)
	assert.Equal(t, genai.Blob{MIMEType: "application/pdf", Data: []byte("%PDF")}, gen.parts[1])
}

func TestGeminiAnalyzeProviderError(t *testing.T) {
	g := &GeminiAnalyzer{model: &fakeGenerator{err: errors.New("quota exceeded")}, log: zap.NewNop()}

	res, err := g.Analyze(context.Background(), []byte("x"), "image/png")

	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, MessageAnalysisError, res.Message)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "quota exceeded")
}

func TestGeminiAnalyzeNoCandidates(t *testing.T) {
	g := &GeminiAnalyzer{model: &fakeGenerator{resp: &genai.GenerateContentResponse{}}, log: zap.NewNop()}

	res, err := g.Analyze(context.Background(), []byte("x"), "image/png")

	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, MessageNoStructuredData, res.Message)
}

func TestGeminiAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &GeminiAnalyzer{model: &fakeGenerator{err: context.Canceled}, log: zap.NewNop()}

	res, err := g.Analyze(ctx, []byte("x"), "image/png")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreviewCutsOnRuneBoundary(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "Khoon ki", preview("Khoon ki jaanch", 8))

	got := preview("ää€€", 3)
	assert.Equal(t, "ää€", got)
	assert.True(t, utf8.ValidString(got))
}
