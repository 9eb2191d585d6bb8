package markdown

import "fmt"

// ButtonDetection controls how button labels are recognized on import.
type ButtonDetection string

const (
	ButtonDetectNone   ButtonDetection = "none"
	ButtonDetectLink   ButtonDetection = "link"
	ButtonDetectStrong ButtonDetection = "strong"
	ButtonDetectAll    ButtonDetection = "all"
)

// InlineStyle controls how inline markdown formatting lands in field
// markup on import.
type InlineStyle string

const (
	InlineText InlineStyle = "text"
	InlineHTML InlineStyle = "html"
)

// HardBreakStyle controls how line breaks render in exported markdown.
type HardBreakStyle string

const (
	HardBreakBackslash HardBreakStyle = "backslash"
	HardBreakSpaces    HardBreakStyle = "spaces"
	HardBreakHTML      HardBreakStyle = "html"
)

// UnknownBlockStyle controls how blocks without an exporter are handled.
type UnknownBlockStyle string

const (
	UnknownPlaceholder UnknownBlockStyle = "placeholder"
	UnknownSkip        UnknownBlockStyle = "skip"
	UnknownError       UnknownBlockStyle = "error"
)

// Config configures markdown import and export behavior.
type Config struct {
	ButtonDetection ButtonDetection   `json:"buttonDetection,omitempty"`
	InlineStyle     InlineStyle       `json:"inlineStyle,omitempty"`
	HardBreakStyle  HardBreakStyle    `json:"hardBreakStyle,omitempty"`
	UnknownBlocks   UnknownBlockStyle `json:"unknownBlocks,omitempty"`
	HeadingLevel    int               `json:"headingLevel,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.ButtonDetection == "" {
		c.ButtonDetection = ButtonDetectAll
	}
	if c.InlineStyle == "" {
		c.InlineStyle = InlineText
	}
	if c.HardBreakStyle == "" {
		c.HardBreakStyle = HardBreakBackslash
	}
	if c.UnknownBlocks == "" {
		c.UnknownBlocks = UnknownPlaceholder
	}
	if c.HeadingLevel == 0 {
		c.HeadingLevel = 2
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.ButtonDetection != ButtonDetectNone &&
		c.ButtonDetection != ButtonDetectLink &&
		c.ButtonDetection != ButtonDetectStrong &&
		c.ButtonDetection != ButtonDetectAll {
		return fmt.Errorf("invalid buttonDetection %q", c.ButtonDetection)
	}

	if c.InlineStyle != InlineText && c.InlineStyle != InlineHTML {
		return fmt.Errorf("invalid inlineStyle %q", c.InlineStyle)
	}

	if c.HardBreakStyle != HardBreakBackslash &&
		c.HardBreakStyle != HardBreakSpaces &&
		c.HardBreakStyle != HardBreakHTML {
		return fmt.Errorf("invalid hardBreakStyle %q", c.HardBreakStyle)
	}

	if c.UnknownBlocks != UnknownPlaceholder &&
		c.UnknownBlocks != UnknownSkip &&
		c.UnknownBlocks != UnknownError {
		return fmt.Errorf("invalid unknownBlocks %q", c.UnknownBlocks)
	}

	if c.HeadingLevel < 1 || c.HeadingLevel > 6 {
		return fmt.Errorf("headingLevel must be between 1 and 6, got %d", c.HeadingLevel)
	}

	return nil
}
