package llm

import "context"

// Turn is a single role-tagged unit of text exchanged with the model
// provider.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest carries the ordered turn sequence for one completion
// call. System holds the persona instruction applied to the whole exchange.
type GenerateRequest struct {
	System string
	Turns  []Turn
}

// GenerateResponse holds the single generated text turn.
type GenerateResponse struct {
	Content string
}

// Gateway defines the interface for the external text-generation call.
// Implementations retain no state between calls; each call is independent.
type Gateway interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
