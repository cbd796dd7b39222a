package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Gemini client itself is exercised against the live API; these tests
// cover the pure translation layer between our turn sequence and the
// provider's chat format.

func TestSplitTurns(t *testing.T) {
	turns := []Turn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "heyy"},
		{Role: "system", Content: "note"},
		{Role: "user", Content: "how are you"},
	}

	history, last := splitTurns(turns)

	assert.Equal(t, Turn{Role: "user", Content: "how are you"}, last)
	require.Len(t, history, 3)

	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, genai.Text("hi"), history[0].Parts[0])

	// Assistant turns travel as the provider's "model" role.
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("heyy"), history[1].Parts[0])

	// A system turn stored mid-history is folded into the user role,
	// since the chat API only accepts user and model.
	assert.Equal(t, "user", history[2].Role)
}

func TestSplitTurns_SingleTurn(t *testing.T) {
	history, last := splitTurns([]Turn{{Role: "user", Content: "hi"}})
	assert.Empty(t, history)
	assert.Equal(t, "hi", last.Content)
}

func TestExtractText(t *testing.T) {
	t.Run("concatenates text parts across candidates", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("hello "), genai.Text("there")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("!")}}},
			},
		}
		assert.Equal(t, "hello there!", extractText(resp))
	})

	t.Run("empty response yields empty string", func(t *testing.T) {
		assert.Equal(t, "", extractText(&genai.GenerateContentResponse{}))
	})

	t.Run("nil candidate content is skipped", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: nil}},
		}
		assert.Equal(t, "", extractText(resp))
	})
}

func TestGeminiRole(t *testing.T) {
	assert.Equal(t, "model", geminiRole("assistant"))
	assert.Equal(t, "user", geminiRole("user"))
	assert.Equal(t, "user", geminiRole("system"))
	assert.Equal(t, "user", geminiRole("anything-else"))
}
