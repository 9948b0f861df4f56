// Package analyzer turns a medical document into structured, plain-language
// fields using a generative model.
package analyzer

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	MessageNoStructuredData = "No structured data found."
	MessageAnalysisError    = "Error analyzing report."
)

// Prompt asks the model for a single JSON object with the Fields keys.
const Prompt = `You will receive a file (PDF or image).
Read it carefully and return ONLY a JSON object (no extra commentary) with this structure:
{
  "title": "short title or subject of the document",
  "date": "any visible or implied date",
  "summary": "concise explanation of what this file is about",
  "explanation_en": "a simple paragraph in English explaining it for a general reader",
  "explanation_ro": "translate explanation_en to Roman Urdu using Latin letters",
  "suggested_questions": ["user questions they might ask about this file"]
}
If the file is not medical, still summarize it accurately.
If some fields are not available, leave them blank or empty array.`

type Analyzer interface {
	// Analyze never returns a provider failure as an error; those come back
	// as a Result with OK unset. The error is reserved for a done context.
	Analyze(ctx context.Context, data []byte, mimeType string) (*Result, error)
}

// Result is the outcome of one analysis. Message is safe to show to users;
// Err carries the provider failure, if any, and is never shown in production.
type Result struct {
	OK      bool
	Fields  *Fields
	RawText string
	Message string
	Err     error
}

type Fields struct {
	Title              string   `json:"title"`
	Date               string   `json:"date"`
	Summary            string   `json:"summary"`
	ExplanationEN      string   `json:"explanation_en"`
	ExplanationRO      string   `json:"explanation_ro"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// ParseResponse decodes the outermost {...} of raw. Models often wrap the
// object in prose or markdown fences, so anything outside it is ignored.
func ParseResponse(raw string) *Result {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		var fields Fields
		if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err == nil {
			return &Result{OK: true, Fields: &fields, RawText: raw}
		}
	}

	message := strings.TrimSpace(raw)
	if message == "" {
		message = MessageNoStructuredData
	}
	return &Result{OK: false, RawText: raw, Message: message}
}

// Failed builds the result reported when the provider call itself fails.
func Failed(err error) *Result {
	return &Result{OK: false, Message: MessageAnalysisError, Err: err}
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := 0
	for i := range s {
		if runes == n {
			return s[:i]
		}
		runes++
	}
	return s
}
