// Package sanitize enforces per-field HTML allow-lists on block
// payloads. Tools declare what markup may survive in each field; the
// host kernel runs the declared policies when a document is saved.
package sanitize

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Rules maps a payload field name to the markup policy for that field.
// It is the shape a block tool publishes for host-side enforcement.
type Rules map[string]Policy

// Policy is a tag allow-list for one field. Tags not present are
// unwrapped; an allowed tag keeps only the attributes its rule lists.
type Policy map[string]Tag

// Tag holds the attributes allowed to survive on one tag.
type Tag struct {
	Attrs []string
}

// Tags builds a policy allowing the named tags bare (no attributes).
func Tags(names ...string) Policy {
	policy := make(Policy, len(names))
	for _, name := range names {
		policy[name] = Tag{}
	}
	return policy
}

// Allows reports whether the policy keeps the tag at all.
func (p Policy) Allows(tag string) bool {
	_, ok := p[tag]
	return ok
}

// AllowsAttr reports whether the policy keeps the attribute on the tag.
func (p Policy) AllowsAttr(tag, attr string) bool {
	rule, ok := p[tag]
	if !ok {
		return false
	}
	for _, allowed := range rule.Attrs {
		if allowed == attr {
			return true
		}
	}
	return false
}

// MarshalJSON writes the host contract shape: `true` for a bare tag
// allowance, an attribute map for tags that keep attributes.
// Example: {"br":true,"a":{"href":true}}.
func (p Policy) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p))
	for tag, rule := range p {
		if len(rule.Attrs) == 0 {
			out[tag] = true
			continue
		}
		attrs := make(map[string]bool, len(rule.Attrs))
		for _, attr := range rule.Attrs {
			attrs[attr] = true
		}
		out[tag] = attrs
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both contract shapes per tag: a boolean or an
// attribute map. A `false` tag entry is dropped entirely.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sanitize: policy: %w", err)
	}

	out := make(Policy, len(raw))
	for tag, value := range raw {
		var allowed bool
		if err := json.Unmarshal(value, &allowed); err == nil {
			if allowed {
				out[tag] = Tag{}
			}
			continue
		}

		var attrs map[string]bool
		if err := json.Unmarshal(value, &attrs); err != nil {
			return fmt.Errorf("sanitize: policy tag %q: expected bool or attribute map", tag)
		}
		names := make([]string, 0, len(attrs))
		for name, keep := range attrs {
			if keep {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		out[tag] = Tag{Attrs: names}
	}

	*p = out
	return nil
}
