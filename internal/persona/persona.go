package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMode is the persona used when a conversation's mode is absent or
// not present in the registry. Unknown modes are not an error: they resolve
// to the default instruction.
const DefaultMode = "chat"

// builtin holds the shipped persona instructions, keyed by mode. The texts
// are configuration, not logic: a deployment overrides them with a YAML
// file without touching code.
var builtin = map[string]string{
	"chat": "You are Lumo, a playful and upbeat AI companion. Keep replies " +
		"short, warm and casual, react with feeling first, and stay in " +
		"character at all times.",
	"study": "You are Lumo in study mode. Explain things clearly and " +
		"patiently in a friendly voice, keep answers focused, and check " +
		"understanding with a short follow-up question.",
	"vent": "You are Lumo in listening mode. Be gentle and supportive, " +
		"validate how the user feels before anything else, and never " +
		"lecture or judge.",
}

// Registry resolves a conversation mode to its persona instruction.
type Registry struct {
	instructions map[string]string
}

// NewRegistry returns a registry seeded with the built-in personas.
func NewRegistry() *Registry {
	instructions := make(map[string]string, len(builtin))
	for mode, text := range builtin {
		instructions[mode] = text
	}
	return &Registry{instructions: instructions}
}

// LoadFile merges a YAML file of mode→instruction pairs into the registry.
// Existing modes are overridden, new modes are added. An empty path is a
// no-op so the override stays optional.
func (r *Registry) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read persona file: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("could not parse persona file: %w", err)
	}
	for mode, text := range overrides {
		if text != "" {
			r.instructions[mode] = text
		}
	}
	return nil
}

// Resolve returns the persona instruction for mode. Unrecognized or empty
// modes resolve to the default persona rather than failing.
func (r *Registry) Resolve(mode string) string {
	if text, ok := r.instructions[mode]; ok {
		return text
	}
	return r.instructions[DefaultMode]
}

// Modes returns the set of modes the registry currently knows about.
func (r *Registry) Modes() []string {
	modes := make([]string, 0, len(r.instructions))
	for mode := range r.instructions {
		modes = append(modes, mode)
	}
	return modes
}
