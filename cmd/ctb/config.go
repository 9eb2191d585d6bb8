package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/editorkit/ctablock/editor"
	"github.com/editorkit/ctablock/markdown"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetLossy    = "lossy"
)

// appConfig bundles the kernel and markdown configs one invocation uses.
type appConfig struct {
	Editor   editor.Config
	Markdown markdown.Config
}

func presetConfig(preset string) (appConfig, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return appConfig{}, nil
	case presetStrict:
		return appConfig{
			Editor: editor.Config{
				UnknownTools: editor.UnknownError,
			},
			Markdown: markdown.Config{
				UnknownBlocks: markdown.UnknownError,
			},
		}, nil
	case presetLossy:
		return appConfig{
			Editor: editor.Config{
				UnknownTools: editor.UnknownSkip,
			},
			Markdown: markdown.Config{
				UnknownBlocks: markdown.UnknownSkip,
				InlineStyle:   markdown.InlineText,
			},
		}, nil
	default:
		return appConfig{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, lossy)", preset)
	}
}

// fileConfig is the on-disk YAML shape. Only the fields a file sets
// override the preset; value checks stay with the owning packages.
type fileConfig struct {
	Styles struct {
		Block                string `yaml:"block"`
		Input                string `yaml:"input"`
		SettingsButton       string `yaml:"settingsButton"`
		SettingsButtonActive string `yaml:"settingsButtonActive"`
	} `yaml:"styles"`
	UnknownTools string                    `yaml:"unknownTools"`
	SkipSanitize *bool                     `yaml:"skipSanitize"`
	Tools        map[string]map[string]any `yaml:"tools"`

	Markdown struct {
		ButtonDetection string `yaml:"buttonDetection"`
		InlineStyle     string `yaml:"inlineStyle"`
		HardBreakStyle  string `yaml:"hardBreakStyle"`
		UnknownBlocks   string `yaml:"unknownBlocks"`
		HeadingLevel    int    `yaml:"headingLevel"`
	} `yaml:"markdown"`
}

func loadConfigFile(path string, base appConfig) (appConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return appConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return appConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return file.apply(base)
}

func (f fileConfig) apply(base appConfig) (appConfig, error) {
	cfg := base

	styles := editor.Styles{
		Block:                f.Styles.Block,
		Input:                f.Styles.Input,
		SettingsButton:       f.Styles.SettingsButton,
		SettingsButtonActive: f.Styles.SettingsButtonActive,
	}
	if styles != (editor.Styles{}) {
		cfg.Editor.Styles = styles
	}
	if f.UnknownTools != "" {
		cfg.Editor.UnknownTools = editor.UnknownToolPolicy(f.UnknownTools)
	}
	if f.SkipSanitize != nil {
		cfg.Editor.SkipSanitize = *f.SkipSanitize
	}
	if len(f.Tools) > 0 {
		cfg.Editor.Tools = make(map[string]json.RawMessage, len(f.Tools))
		for name, toolConfig := range f.Tools {
			raw, err := json.Marshal(toolConfig)
			if err != nil {
				return appConfig{}, fmt.Errorf("config: tool %q: %w", name, err)
			}
			cfg.Editor.Tools[name] = raw
		}
	}

	if f.Markdown.ButtonDetection != "" {
		cfg.Markdown.ButtonDetection = markdown.ButtonDetection(f.Markdown.ButtonDetection)
	}
	if f.Markdown.InlineStyle != "" {
		cfg.Markdown.InlineStyle = markdown.InlineStyle(f.Markdown.InlineStyle)
	}
	if f.Markdown.HardBreakStyle != "" {
		cfg.Markdown.HardBreakStyle = markdown.HardBreakStyle(f.Markdown.HardBreakStyle)
	}
	if f.Markdown.UnknownBlocks != "" {
		cfg.Markdown.UnknownBlocks = markdown.UnknownBlockStyle(f.Markdown.UnknownBlocks)
	}
	if f.Markdown.HeadingLevel != 0 {
		cfg.Markdown.HeadingLevel = f.Markdown.HeadingLevel
	}

	return cfg, nil
}
