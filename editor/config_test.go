package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()

	assert.Equal(t, DefaultStyles(), cfg.Styles)
	assert.Equal(t, UnknownSkip, cfg.UnknownTools)
	assert.False(t, cfg.SkipSanitize)
	require.NoError(t, cfg.Validate())
}

func TestConfigKeepsSuppliedStyles(t *testing.T) {
	custom := Styles{
		Block:                "b",
		Input:                "i",
		SettingsButton:       "s",
		SettingsButtonActive: "sa",
	}
	cfg := (Config{Styles: custom}).applyDefaults()

	assert.Equal(t, custom, cfg.Styles)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsPartialStyles(t *testing.T) {
	cfg := (Config{Styles: Styles{Block: "only-block"}}).applyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles")
}

func TestConfigValidateRejectsBadPolicy(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.UnknownTools = UnknownToolPolicy("explode")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknownTools")
}

func TestConfigCloneDetachesToolPayloads(t *testing.T) {
	cfg := Config{Tools: map[string]json.RawMessage{
		"cta": json.RawMessage(`{"titlePlaceholder":"x"}`),
	}}

	cloned := cfg.clone()
	cloned.Tools["cta"] = json.RawMessage(`{}`)
	cloned.Tools["quote"] = json.RawMessage(`{}`)

	assert.JSONEq(t, `{"titlePlaceholder":"x"}`, string(cfg.Tools["cta"]))
	_, leaked := cfg.Tools["quote"]
	assert.False(t, leaked)
}
