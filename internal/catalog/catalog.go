// Package catalog defines the closed set of model choices supported by the
// resume optimizer and their provider-specific configuration.
package catalog

import "fmt"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// ModelOption describes one selectable model: a stable identifier for the UI
// and API, the provider wire identifier sent to the backend, and the
// environment variable that must hold a credential for it.
type ModelOption struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	WireID      string   `json:"wire_id"`
	Provider    Provider `json:"provider"`
	KeyEnv      string   `json:"key_env"`
}

// options is the closed, ordered set of supported models.
// The first entry is the default.
var options = []ModelOption{
	{
		ID:          "gemini-flash-lite",
		DisplayName: "Gemini 2.5 Flash Lite",
		WireID:      "gemini-2.5-flash-lite",
		Provider:    ProviderGemini,
		KeyEnv:      "GEMINI_API_KEY",
	},
	{
		ID:          "gemini-flash",
		DisplayName: "Gemini 2.5 Flash",
		WireID:      "gemini-2.5-flash",
		Provider:    ProviderGemini,
		KeyEnv:      "GEMINI_API_KEY",
	},
	{
		ID:          "gemini-pro",
		DisplayName: "Gemini 2.5 Pro",
		WireID:      "gemini-2.5-pro",
		Provider:    ProviderGemini,
		KeyEnv:      "GEMINI_API_KEY",
	},
}

// Default returns the model option used when the caller does not choose one.
func Default() ModelOption {
	return options[0]
}

// Options returns the full catalog in display order.
func Options() []ModelOption {
	out := make([]ModelOption, len(options))
	copy(out, options)
	return out
}

// Lookup resolves a model identifier to its option. It accepts either the
// stable ID or the wire identifier, so values round-tripped through the UI
// and values stored in config files both resolve.
func Lookup(id string) (ModelOption, error) {
	for _, opt := range options {
		if opt.ID == id || opt.WireID == id {
			return opt, nil
		}
	}
	return ModelOption{}, fmt.Errorf("unknown model %q", id)
}
