package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	app_errors "github.com/ankush43545-hub/LumoBackendTest/internal/errors"
)

// fallbackReply is returned when the provider answers successfully but with
// no usable text (e.g. all candidates were filtered).
const fallbackReply = "sorry babe, i glitched omg 😭💀"

// GeminiGateway wraps the Google Gemini API behind the Gateway interface.
// Generation parameters are fixed at construction; every Generate call is
// independent of the previous one.
type GeminiGateway struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
}

func NewGeminiGateway(ctx context.Context, apiKey, modelName string, temperature float32, maxOutputTokens int32) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGateway{
		client:          client,
		modelName:       modelName,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

// Generate sends the ordered turn sequence to Gemini and returns the single
// generated turn. Any transport, authentication, or provider-side failure
// surfaces as an error wrapping app_errors.ErrGateway; the caller decides
// what, if anything, to expose to the client.
func (g *GeminiGateway) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if len(req.Turns) == 0 {
		return nil, fmt.Errorf("%w: no turns to send", app_errors.ErrGateway)
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(g.maxOutputTokens)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	history, last := splitTurns(req.Turns)
	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrGateway, err)
	}

	content := extractText(resp)
	if content == "" {
		content = fallbackReply
	}
	return &GenerateResponse{Content: content}, nil
}

// splitTurns converts all but the final turn into Gemini chat history and
// returns the final turn separately, since the API takes the newest message
// as the SendMessage argument.
func splitTurns(turns []Turn) ([]*genai.Content, Turn) {
	last := turns[len(turns)-1]
	history := make([]*genai.Content, 0, len(turns)-1)
	for _, turn := range turns[:len(turns)-1] {
		history = append(history, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return history, last
}

// geminiRole maps our role tags onto the two roles the Gemini chat API
// accepts. Assistant turns become "model"; anything else, including system
// turns a client chose to store mid-conversation, is sent as "user".
func geminiRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

// extractText concatenates the text parts of every candidate in the
// response.
func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
