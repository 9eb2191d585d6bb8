package cta

import "encoding/json"

// Built-in placeholder fallbacks, shown in empty fields.
const (
	DefaultTitlePlaceholder  = "Enter a title"
	DefaultTextPlaceholder   = "Enter a text"
	DefaultButtonPlaceholder = "Enter a button text"
)

// Config holds per-instance display configuration. Empty values fall
// back to the built-in placeholders. Config is bound once at
// construction and never mutated afterwards.
type Config struct {
	TitlePlaceholder  string `json:"titlePlaceholder,omitempty"`
	TextPlaceholder   string `json:"textPlaceholder,omitempty"`
	ButtonPlaceholder string `json:"buttonPlaceholder,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.TitlePlaceholder == "" {
		c.TitlePlaceholder = DefaultTitlePlaceholder
	}
	if c.TextPlaceholder == "" {
		c.TextPlaceholder = DefaultTextPlaceholder
	}
	if c.ButtonPlaceholder == "" {
		c.ButtonPlaceholder = DefaultButtonPlaceholder
	}
	return c
}

// decodeConfig mirrors decodeBlockData's tolerance: construction never
// rejects configuration, it only falls back.
func decodeConfig(raw json.RawMessage) Config {
	fields, ok := decodeFields(raw)
	if !ok {
		return Config{}
	}
	return Config{
		TitlePlaceholder:  coerceString(fields["titlePlaceholder"]),
		TextPlaceholder:   coerceString(fields["textPlaceholder"]),
		ButtonPlaceholder: coerceString(fields["buttonPlaceholder"]),
	}
}
