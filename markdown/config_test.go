package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()

	assert.Equal(t, ButtonDetectAll, cfg.ButtonDetection)
	assert.Equal(t, InlineText, cfg.InlineStyle)
	assert.Equal(t, HardBreakBackslash, cfg.HardBreakStyle)
	assert.Equal(t, UnknownPlaceholder, cfg.UnknownBlocks)
	assert.Equal(t, 2, cfg.HeadingLevel)

	require.NoError(t, cfg.Validate())
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "button detection",
			mutate:  func(c *Config) { c.ButtonDetection = "emphatic" },
			wantErr: "buttonDetection",
		},
		{
			name:    "inline style",
			mutate:  func(c *Config) { c.InlineStyle = "rich" },
			wantErr: "inlineStyle",
		},
		{
			name:    "hard break style",
			mutate:  func(c *Config) { c.HardBreakStyle = "crlf" },
			wantErr: "hardBreakStyle",
		},
		{
			name:    "unknown blocks",
			mutate:  func(c *Config) { c.UnknownBlocks = "explode" },
			wantErr: "unknownBlocks",
		},
		{
			name:    "heading level",
			mutate:  func(c *Config) { c.HeadingLevel = 7 },
			wantErr: "headingLevel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (Config{}).applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewImporterRejectsInvalidConfig(t *testing.T) {
	_, err := NewImporter(Config{ButtonDetection: "emphatic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buttonDetection")
}

func TestNewExporterRejectsInvalidConfig(t *testing.T) {
	_, err := NewExporter(Config{HeadingLevel: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "headingLevel")
}
