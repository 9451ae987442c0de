// Package content drafts marketing copy for catalog entries with Gemini.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tourbook/models"
)

// ErrEmptyDraft is returned when the model produced no text.
var ErrEmptyDraft = errors.New("model returned no text")

// Drafter writes a description for a catalog entry.
type Drafter interface {
	Draft(ctx context.Context, req models.DescribeRequest) (string, error)
}

// Gemini implements Drafter with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Draft(ctx context.Context, req models.DescribeRequest) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(Prompt(req)))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

// Prompt builds the instruction sent to the model.
func Prompt(req models.DescribeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an inviting description of about 80 words for a travel website.\n")
	fmt.Fprintf(&b, "It describes a %s called %q", kindLabel(req.Kind), req.Name)
	if req.LocationName != "" && req.Kind != "location" {
		fmt.Fprintf(&b, " in %s", req.LocationName)
	}
	b.WriteString(".\n")
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Mention: %s.\n", strings.Join(req.Keywords, ", "))
	}
	b.WriteString("Return plain text only, no headings or markdown.")
	return b.String()
}

func kindLabel(kind string) string {
	switch kind {
	case "location":
		return "travel destination"
	case "property":
		return "holiday rental"
	case "hotel":
		return "hotel"
	case "tour":
		return "guided tour"
	default:
		return kind
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var parts []string
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					parts = append(parts, string(text))
				}
			}
			// First candidate with content is enough.
			if len(parts) > 0 {
				break
			}
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", ErrEmptyDraft
	}
	return text, nil
}
