package markdown

import "github.com/editorkit/ctablock/editor"

// ImportResult holds the output of a markdown import.
type ImportResult struct {
	Document editor.Document `json:"document"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// ExportResult holds the output of a document export.
type ExportResult struct {
	Markdown string    `json:"markdown"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningDroppedBlock  WarningType = "dropped_block"
	WarningDroppedMarkup WarningType = "dropped_markup"
	WarningUnknownBlock  WarningType = "unknown_block"
	WarningFrontmatter   WarningType = "frontmatter"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Detail  string      `json:"detail,omitempty"`
	Message string      `json:"message"`
}
