package editor

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// UnknownToolPolicy controls how a session treats block records whose
// type has no registered tool.
type UnknownToolPolicy string

const (
	UnknownError       UnknownToolPolicy = "error"
	UnknownSkip        UnknownToolPolicy = "skip"
	UnknownPlaceholder UnknownToolPolicy = "placeholder"
)

// Config holds kernel configuration. Styles must be supplied complete
// or not at all; a zero Styles value gets the stock class set.
type Config struct {
	Styles       Styles            `json:"styles,omitempty"`
	UnknownTools UnknownToolPolicy `json:"unknownTools,omitempty"`

	// SkipSanitize turns off allow-list enforcement on save. Saved
	// payloads then carry whatever markup the fields held.
	SkipSanitize bool `json:"skipSanitize,omitempty"`

	// Tools carries per-tool configuration payloads, keyed by tool
	// name, passed raw to each tool's factory.
	Tools map[string]json.RawMessage `json:"tools,omitempty"`
}

// structValidate is package-shared; constructing a validator per call
// is expensive.
var structValidate = validator.New()

func (c Config) applyDefaults() Config {
	if c.Styles == (Styles{}) {
		c.Styles = DefaultStyles()
	}
	if c.UnknownTools == "" {
		c.UnknownTools = UnknownSkip
	}
	return c
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.Tools = cloneRawMap(c.Tools)
	return cloned
}

// Validate checks config values, including the style class set.
func (c Config) Validate() error {
	if err := structValidate.Struct(c.Styles); err != nil {
		return fmt.Errorf("editor: styles: %w", err)
	}
	if c.UnknownTools != UnknownError && c.UnknownTools != UnknownSkip && c.UnknownTools != UnknownPlaceholder {
		return fmt.Errorf("editor: invalid unknownTools policy %q", c.UnknownTools)
	}
	return nil
}

func cloneRawMap(src map[string]json.RawMessage) map[string]json.RawMessage {
	if src == nil {
		return nil
	}

	dst := make(map[string]json.RawMessage, len(src))
	for key, value := range src {
		dst[key] = append(json.RawMessage(nil), value...)
	}

	return dst
}
