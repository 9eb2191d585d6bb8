package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// ErrUnknownTool reports a block type with no registered tool.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds the tools a host can instantiate, keyed by name.
// Registration happens during startup; lookups follow. The registry is
// not safe for concurrent mutation.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool descriptor. Names must be unique, non-empty,
// and carry a factory.
func (r *Registry) Register(tool Tool) error {
	name := strings.TrimSpace(tool.Name)
	if name == "" {
		return errors.New("editor: tool name is required")
	}
	if tool.Create == nil {
		return fmt.Errorf("editor: tool %q has no factory", name)
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("editor: tool %q already registered", name)
	}
	tool.Name = name
	r.tools[name] = tool
	return nil
}

// Lookup returns the named tool descriptor.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names lists registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema reflects the JSON Schema of the named tool's data payload.
func (r *Registry) Schema(name string) ([]byte, error) {
	tool, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("editor: %w: %s", ErrUnknownTool, name)
	}
	if tool.Data == nil {
		return nil, fmt.Errorf("editor: tool %q publishes no data prototype", name)
	}

	schema := jsonschema.Reflect(tool.Data)
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("editor: marshal schema for %q: %w", name, err)
	}
	return out, nil
}
