package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/dom"
	"github.com/editorkit/ctablock/sanitize"
)

// Rendered tree structure: one redactor root, one wrapper per block.
const (
	RedactorClass     = "codex-editor__redactor"
	BlockWrapperClass = "ce-block"

	// AttrBlockID and AttrBlockTool identify block wrappers in
	// rendered markup; Save relies on them.
	AttrBlockID   = "data-id"
	AttrBlockTool = "data-tool"
)

// Editor wires a tool registry to a style set and session policies.
type Editor struct {
	config   Config
	registry *Registry
	now      func() time.Time
	newID    func() string
}

// Option adjusts an Editor beyond its Config.
type Option func(*Editor)

// WithClock overrides the timestamp source used on save.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithIDGenerator overrides the block id source.
func WithIDGenerator(gen func() string) Option {
	return func(e *Editor) { e.newID = gen }
}

// New builds an Editor over a registry. The config is defaulted and
// validated once here; sessions inherit it unchanged.
func New(registry *Registry, config Config, opts ...Option) (*Editor, error) {
	if registry == nil {
		return nil, errors.New("editor: registry is required")
	}
	config = config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		config:   config.clone(),
		registry: registry,
		now:      time.Now,
		newID:    NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Styles returns the class set sessions hand to tools.
func (e *Editor) Styles() Styles {
	return e.config.Styles
}

// Session is one opened document: constructed block instances awaiting
// render and save. A session is single-threaded by host contract.
type Session struct {
	editor   *Editor
	blocks   []sessionBlock
	warnings []Warning
}

type sessionBlock struct {
	id       string
	toolName string
	tool     Tool
	instance Block
}

// Open constructs a block instance for every record in doc, assigning
// ids to records that lack one. Records whose tool is not registered
// follow the UnknownTools policy.
func (e *Editor) Open(doc Document) (*Session, error) {
	session := &Session{editor: e}
	api := &API{Styles: e.config.Styles}

	for i, record := range doc.Blocks {
		id := record.ID
		if id == "" {
			id = e.newID()
		}

		tool, ok := e.registry.Lookup(record.Type)
		if !ok {
			switch e.config.UnknownTools {
			case UnknownError:
				return nil, fmt.Errorf("editor: block %d: %w: %s", i, ErrUnknownTool, record.Type)
			case UnknownPlaceholder:
				session.warnings = append(session.warnings, Warning{
					Type:    WarningUnknownTool,
					BlockID: id,
					Tool:    record.Type,
					Message: fmt.Sprintf("no tool registered for %q, rendering placeholder", record.Type),
				})
				session.blocks = append(session.blocks, sessionBlock{
					id:       id,
					toolName: record.Type,
					instance: &placeholderBlock{
						toolName: record.Type,
						styles:   e.config.Styles,
						raw:      record.Data,
					},
				})
			default: // UnknownSkip
				session.warnings = append(session.warnings, Warning{
					Type:    WarningUnknownTool,
					BlockID: id,
					Tool:    record.Type,
					Message: fmt.Sprintf("no tool registered for %q, block dropped", record.Type),
				})
			}
			continue
		}

		instance, err := tool.Create(CreateArgs{
			Data:   record.Data,
			Config: e.config.Tools[record.Type],
			API:    api,
		})
		if err != nil {
			return nil, fmt.Errorf("editor: construct block %d (%s): %w", i, record.Type, err)
		}
		session.blocks = append(session.blocks, sessionBlock{
			id:       id,
			toolName: record.Type,
			tool:     tool,
			instance: instance,
		})
	}

	return session, nil
}

// Warnings returns non-fatal issues collected so far.
func (s *Session) Warnings() []Warning {
	return s.warnings
}

// Len reports how many block instances the session holds.
func (s *Session) Len() int {
	return len(s.blocks)
}

// Render builds the session's element tree: one wrapper per block, in
// document order. Each call produces an independent tree and leaves
// block data untouched.
func (s *Session) Render() *html.Node {
	root := dom.Make("div", []string{RedactorClass}, nil)
	for i := range s.blocks {
		block := &s.blocks[i]
		wrapper := dom.Make("div", []string{BlockWrapperClass}, map[string]string{
			AttrBlockID:   block.id,
			AttrBlockTool: block.toolName,
		})
		wrapper.AppendChild(block.instance.Render())
		root.AppendChild(wrapper)
	}
	return root
}

// Save reads every block back out of root and assembles a fresh
// document. Root must contain the wrapper Render produced for each
// opened block; a missing wrapper is a precondition violation.
func (s *Session) Save(root *html.Node) (Document, error) {
	if root == nil {
		return Document{}, errors.New("editor: save: nil root")
	}

	doc := Document{
		Time:    s.editor.now().UnixMilli(),
		Version: Version,
		Blocks:  make([]BlockRecord, 0, len(s.blocks)),
	}

	for i := range s.blocks {
		block := &s.blocks[i]
		wrapper := dom.FindByAttr(root, AttrBlockID, block.id)
		if wrapper == nil {
			return Document{}, fmt.Errorf("editor: save: no wrapper for block %s (%s)", block.id, block.toolName)
		}

		payload, err := block.instance.Save(wrapper)
		if err != nil {
			return Document{}, fmt.Errorf("editor: save block %s: %w", block.id, err)
		}

		raw, err := s.encodePayload(block, payload)
		if err != nil {
			return Document{}, err
		}

		doc.Blocks = append(doc.Blocks, BlockRecord{
			ID:   block.id,
			Type: block.toolName,
			Data: raw,
		})
	}

	return doc, nil
}

// encodePayload marshals a block's saved payload and applies its
// sanitize rules unless the kernel is configured not to.
func (s *Session) encodePayload(block *sessionBlock, payload any) (json.RawMessage, error) {
	var raw json.RawMessage
	switch value := payload.(type) {
	case json.RawMessage:
		raw = value
	case nil:
		raw = json.RawMessage("{}")
	default:
		out, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("editor: encode %s payload: %w", block.toolName, err)
		}
		raw = out
	}

	if s.editor.config.SkipSanitize || len(block.tool.Sanitize) == 0 {
		return raw, nil
	}
	return s.applyRules(block, raw)
}

func (s *Session) applyRules(block *sessionBlock, raw json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		s.warnings = append(s.warnings, Warning{
			Type:    WarningSkippedField,
			BlockID: block.id,
			Tool:    block.toolName,
			Message: "payload is not an object, sanitize rules not applied",
		})
		return raw, nil
	}

	for field, policy := range block.tool.Sanitize {
		rawField, ok := fields[field]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(rawField, &value); err != nil {
			s.warnings = append(s.warnings, Warning{
				Type:    WarningSkippedField,
				BlockID: block.id,
				Tool:    block.toolName,
				Message: fmt.Sprintf("field %q is not a string, policy not applied", field),
			})
			continue
		}

		cleaned, err := json.Marshal(sanitize.Clean(value, policy))
		if err != nil {
			return nil, fmt.Errorf("editor: encode sanitized %s.%s: %w", block.toolName, field, err)
		}
		fields[field] = cleaned
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("editor: encode %s payload: %w", block.toolName, err)
	}
	return out, nil
}

// placeholderBlock stands in for an unregistered tool: it renders an
// inert marker and saves its original payload through unchanged.
type placeholderBlock struct {
	toolName string
	styles   Styles
	raw      json.RawMessage
}

func (p *placeholderBlock) Render() *html.Node {
	node := dom.Make("div", []string{p.styles.Block, "cdx-unknown-block"}, map[string]string{
		"data-missing-tool": p.toolName,
	})
	node.AppendChild(dom.Text(fmt.Sprintf("Missing tool: %s", p.toolName)))
	return node
}

func (p *placeholderBlock) Save(root *html.Node) (any, error) {
	if len(p.raw) == 0 {
		return json.RawMessage("{}"), nil
	}
	return p.raw, nil
}
