// Package cta implements the call-to-action block tool: an editable
// title, body text, and button label rendered as one blockquote
// subtree and saved back as three rich-text HTML fragments.
package cta

import "encoding/json"

// BlockData is the persisted payload: three independent rich-text HTML
// fragments. Fields default to the empty string and are never absent.
type BlockData struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Button string `json:"button"`
}

// decodeBlockData reads a raw payload without ever rejecting it.
// Absent and null fields become ""; non-string values keep their raw
// JSON text so bad input surfaces visibly in the rendered fields
// instead of failing construction.
func decodeBlockData(raw json.RawMessage) BlockData {
	fields, ok := decodeFields(raw)
	if !ok {
		return BlockData{}
	}
	return BlockData{
		Title:  coerceString(fields["title"]),
		Text:   coerceString(fields["text"]),
		Button: coerceString(fields["button"]),
	}
}

func decodeFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
