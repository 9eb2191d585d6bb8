package cta

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/dom"
	"github.com/editorkit/ctablock/editor"
)

// Classes on the rendered subtree. Save locates the fields by the
// field-specific classes, so they must stay unique within a block.
const (
	WrapperClass = "cta-block"
	TitleClass   = "cta-block__title"
	TextClass    = "cta-block__text"
	ButtonClass  = "cta-block__button"
)

// ErrMissingField reports a save root that lacks one of the three
// field descendants.
var ErrMissingField = errors.New("missing field element")

// Tool is one CTA block instance: a stored data record and resolved
// placeholders, bound to the host style set at construction.
type Tool struct {
	data   BlockData
	config Config
	api    *editor.API
}

// New builds a block instance. It never fails: empty config values
// fall back to the built-in placeholders, data is stored as given, and
// a nil api falls back to the stock style classes.
func New(data BlockData, config Config, api *editor.API) *Tool {
	if api == nil {
		api = &editor.API{Styles: editor.DefaultStyles()}
	}
	return &Tool{
		data:   data,
		config: config.applyDefaults(),
		api:    api,
	}
}

// Data returns the current stored record.
func (t *Tool) Data() BlockData {
	return t.data
}

// Placeholders returns the resolved placeholder strings in field order.
func (t *Tool) Placeholders() (title, text, button string) {
	return t.config.TitlePlaceholder, t.config.TextPlaceholder, t.config.ButtonPlaceholder
}

// Render builds a fresh subtree: a blockquote wrapper holding the
// three editable fields in fixed order (title, text, button). Repeated
// calls return structurally identical, independent trees; the stored
// record is never touched.
func (t *Tool) Render() *html.Node {
	styles := t.api.Styles
	root := dom.Make("blockquote", []string{styles.Block, WrapperClass}, nil)
	root.AppendChild(t.renderField(TitleClass, t.data.Title, t.config.TitlePlaceholder))
	root.AppendChild(t.renderField(TextClass, t.data.Text, t.config.TextPlaceholder))
	root.AppendChild(t.renderField(ButtonClass, t.data.Button, t.config.ButtonPlaceholder))
	return root
}

func (t *Tool) renderField(class, content, placeholder string) *html.Node {
	field := dom.Make("div", []string{t.api.Styles.Input, class}, map[string]string{
		"contenteditable":  "true",
		"data-placeholder": placeholder,
	})
	dom.SetInnerHTML(field, content)
	return field
}

// Save reads the three fields back out of root, which must contain the
// subtree a prior Render produced (any ancestor works, as long as the
// three field classes are present among its descendants). The stored
// record is updated and a fresh value snapshot returned. A missing
// field fails the whole save.
func (t *Tool) Save(root *html.Node) (BlockData, error) {
	title := dom.FindByClass(root, TitleClass)
	if title == nil {
		return BlockData{}, fmt.Errorf("cta: %w: %s", ErrMissingField, TitleClass)
	}
	text := dom.FindByClass(root, TextClass)
	if text == nil {
		return BlockData{}, fmt.Errorf("cta: %w: %s", ErrMissingField, TextClass)
	}
	button := dom.FindByClass(root, ButtonClass)
	if button == nil {
		return BlockData{}, fmt.Errorf("cta: %w: %s", ErrMissingField, ButtonClass)
	}

	t.data = BlockData{
		Title:  dom.InnerHTML(title),
		Text:   dom.InnerHTML(text),
		Button: dom.InnerHTML(button),
	}
	return t.data, nil
}
