package editor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Version tags documents saved by this kernel.
const Version = "1.0.0"

// Document is the persisted editor output: an ordered block list with
// a save timestamp (unix milliseconds) and the kernel version that
// produced it.
type Document struct {
	Time    int64         `json:"time"`
	Blocks  []BlockRecord `json:"blocks"`
	Version string        `json:"version"`
}

// BlockRecord is one saved block: a stable id, the tool name, and the
// tool's raw payload.
type BlockRecord struct {
	ID   string          `json:"id,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseDocument decodes and shape-checks a document. Every block must
// name its tool; payloads stay raw for the owning tool to interpret.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("editor: parse document: %w", err)
	}
	for i, block := range doc.Blocks {
		if strings.TrimSpace(block.Type) == "" {
			return Document{}, fmt.Errorf("editor: block %d has no type", i)
		}
	}
	return doc, nil
}

// Encode marshals the document as indented JSON.
func (d Document) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("editor: encode document: %w", err)
	}
	return out, nil
}

// EnsureIDs assigns an id to every block missing one, preserving
// existing ids. A nil gen means ULIDs.
func (d *Document) EnsureIDs(gen func() string) {
	if gen == nil {
		gen = NewID
	}
	for i := range d.Blocks {
		if d.Blocks[i].ID == "" {
			d.Blocks[i].ID = gen()
		}
	}
}

// NewID returns a fresh block id.
func NewID() string {
	return ulid.Make().String()
}
