package interpret

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/arcanaland/diviner/internal/reading"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Gemini implements Interpreter using Google's Gemini API.
type Gemini struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini interpreter. It returns ErrUnavailable when no
// API key is configured, so callers can fall through to the keyword-only
// path without special cases.
func NewGemini(ctx context.Context, logger *slog.Logger, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	if model == "" {
		model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrUnavailable, err)
	}

	return &Gemini{logger: logger, client: client, model: model}, nil
}

const cardSystemPrompt = "You are a concise, insightful tarot interpreter." +
	" Use the spread position semantics, the card's upright/reversed keywords," +
	" and the prior cards' interpretations to synthesize a relevant, practical interpretation." +
	" Keep it to 3-6 sentences. Avoid generic platitudes; be specific to the position."

const summarySystemPrompt = "You are a concise, insightful tarot interpreter." +
	" Provide a cohesive summary that synthesizes the entire spread." +
	" Identify central themes, connecting threads, practical guidance, and likely trajectory." +
	" Resolve any tensions between positions or reversals." +
	" Output 5-8 sentences, no bullet points."

const titleSystemPrompt = "You are a title generator for tarot readings." +
	" Create a very concise, evocative title (max 7 words) capturing the central theme." +
	" Do not include quotes, punctuation at the end, or extra text." +
	" Return ONLY the title text."

type positionPayload struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	Represents string `json:"represents"`
}

type cardPayload struct {
	Title       string   `json:"title"`
	Orientation string   `json:"orientation"`
	Keywords    []string `json:"keywords"`
}

type priorPayload struct {
	PositionLabel  string `json:"position_label"`
	Card           string `json:"card"`
	Orientation    string `json:"orientation"`
	Interpretation string `json:"interpretation"`
}

func priorEntries(r *reading.Reading, upto int) []priorPayload {
	prior := make([]priorPayload, 0, upto)
	for _, e := range r.Entries[:upto] {
		prior = append(prior, priorPayload{
			PositionLabel:  e.Position.Label,
			Card:           e.Card.Name,
			Orientation:    string(e.Orientation),
			Interpretation: e.Interpretation,
		})
	}
	return prior
}

// InterpretCard implements Interpreter.
func (g *Gemini) InterpretCard(ctx context.Context, r *reading.Reading, index int) (string, error) {
	e := r.Entries[index]
	payload := map[string]any{
		"spread_position": positionPayload{
			Index:      e.Position.Index,
			Label:      e.Position.Label,
			Represents: e.Position.Represents,
		},
		"card": cardPayload{
			Title:       e.Card.Name,
			Orientation: string(e.Orientation),
			Keywords:    e.Card.Keywords(e.Orientation),
		},
		"prior_cards":  priorEntries(r, index),
		"instructions": "Interpret this draw for the specified position. If prior cards suggest themes, weave them in briefly.",
	}
	return g.generate(ctx, cardSystemPrompt, payload)
}

// Summarize implements Interpreter.
func (g *Gemini) Summarize(ctx context.Context, r *reading.Reading) (string, error) {
	positions := make([]positionPayload, 0, len(r.Spread.Positions))
	for _, p := range r.Spread.Positions {
		positions = append(positions, positionPayload{Index: p.Index, Label: p.Label, Represents: p.Represents})
	}
	payload := map[string]any{
		"spread": map[string]any{
			"key":       r.Spread.Key,
			"positions": positions,
		},
		"cards":        priorEntries(r, len(r.Entries)),
		"instructions": "Write a final summary for the reading.",
	}
	return g.generate(ctx, summarySystemPrompt, payload)
}

// Title implements Interpreter.
func (g *Gemini) Title(ctx context.Context, r *reading.Reading) (string, error) {
	payload := map[string]any{
		"spread_key": r.Spread.Key,
		"cards":      priorEntries(r, len(r.Entries)),
	}
	title, err := g.generate(ctx, titleSystemPrompt, payload)
	if err != nil {
		return "", err
	}

	title = strings.Trim(title, `"'`)
	words := strings.Fields(title)
	if len(words) > 7 {
		title = strings.Join(words[:7], " ")
	}
	return title, nil
}

// generate makes a single best-effort call to the Gemini API. No retries:
// the caller's context bounds the attempt and any failure degrades to
// ErrUnavailable.
func (g *Gemini) generate(ctx context.Context, systemPrompt string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encoding payload: %v", ErrUnavailable, err)
	}
	prompt := systemPrompt + "\n\n" + string(body)

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.WarnContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	out := strings.TrimSpace(responseText(resp))
	if out == "" {
		return "", fmt.Errorf("%w: no text in response", ErrUnavailable)
	}
	return out, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}
