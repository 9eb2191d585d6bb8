package editor

// WarningType categorizes non-fatal session issues.
type WarningType string

const (
	// WarningUnknownTool marks a block whose tool is unregistered and
	// was skipped or replaced by a placeholder.
	WarningUnknownTool WarningType = "unknown_tool"

	// WarningSkippedField marks a sanitize policy that could not be
	// applied because the payload field was absent or not a string.
	WarningSkippedField WarningType = "skipped_field"
)

// Warning records a non-fatal issue encountered while opening or
// saving a session.
type Warning struct {
	Type    WarningType `json:"type"`
	BlockID string      `json:"blockId,omitempty"`
	Tool    string      `json:"tool,omitempty"`
	Message string      `json:"message"`
}
