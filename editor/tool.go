package editor

import (
	"encoding/json"

	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/sanitize"
)

// Toolbox describes a tool's insert affordance in the host UI.
type Toolbox struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// Block is one constructed tool instance bound to one data record.
type Block interface {
	// Render builds a fresh element subtree for the instance's current
	// data. Rendering never fails and never mutates the stored record.
	Render() *html.Node

	// Save reads current field content back out of root and returns the
	// payload to persist. Root must contain whatever structure the
	// tool's Render produced.
	Save(root *html.Node) (any, error)
}

// CreateArgs carries the host-supplied inputs for one block instance.
// Data and Config are raw so each tool applies its own tolerance for
// malformed input.
type CreateArgs struct {
	Data   json.RawMessage
	Config json.RawMessage
	API    *API
}

// Tool is a registrable block tool: static metadata plus a factory.
type Tool struct {
	// Name keys the tool in the registry and in block records.
	Name string

	Toolbox Toolbox

	// Contentless marks blocks that never count as document content,
	// so hosts can treat a document of empty instances as empty.
	Contentless bool

	// EnableLineBreaks keeps Enter inside a field as a literal line
	// break instead of a block split.
	EnableLineBreaks bool

	// Sanitize is enforced by the kernel on save, per payload field.
	Sanitize sanitize.Rules

	// Data is a zero-value prototype of the tool's payload, reflected
	// into the published JSON Schema.
	Data any

	Create func(CreateArgs) (Block, error)
}
