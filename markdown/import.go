// Package markdown converts between GFM markdown and call-to-action
// block documents. Import slices a markdown file into sections and
// builds one block per section; Export writes blocks back out as
// markdown. Both directions report lossy spots as warnings instead of
// failing.
package markdown

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/editorkit/ctablock/cta"
	"github.com/editorkit/ctablock/dom"
	"github.com/editorkit/ctablock/editor"
)

// Importer converts GFM markdown into a block document.
type Importer struct {
	config Config
	parser goldmark.Markdown
}

// NewImporter creates an Importer with the given config.
func NewImporter(config Config) (*Importer, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Importer{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

type importState struct {
	config   Config
	source   []byte
	warnings []Warning
}

// Import parses source and returns a document with one block per
// section. Headings and thematic breaks delimit sections; a trailing
// lone link or bracketed bold paragraph becomes the section's button.
func (im *Importer) Import(source string) (ImportResult, error) {
	s := &importState{config: im.config}

	doc := editor.Document{Version: editor.Version}
	if meta, body, found := splitFrontmatter(source); found {
		if version, ok := s.readFrontmatter(meta); ok {
			source = body
			if version != "" {
				doc.Version = version
			}
		}
	}

	s.source = []byte(source)
	root := im.parser.Parser().Parse(text.NewReader(s.source))

	blocks, err := s.collectSections(root)
	if err != nil {
		return ImportResult{}, err
	}
	doc.Blocks = blocks

	return ImportResult{Document: doc, Warnings: s.warnings}, nil
}

func (s *importState) addWarning(warnType WarningType, detail, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Detail:  detail,
		Message: message,
	})
}

// splitFrontmatter peels a leading "---" delimited block off source.
// The opener must be the first line.
func splitFrontmatter(source string) (meta, body string, found bool) {
	lines := strings.SplitAfter(source, "\n")
	if strings.TrimRight(lines[0], "\r\n") != "---" {
		return "", source, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == "---" {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}
	return "", source, false
}

// readFrontmatter extracts the version key. A block that is not a YAML
// mapping is left in the document body so it can parse as markdown.
func (s *importState) readFrontmatter(meta string) (string, bool) {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(meta), &fields); err != nil {
		s.addWarning(WarningFrontmatter, "", fmt.Sprintf("frontmatter is not valid YAML: %v", err))
		return "", false
	}
	if len(fields) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	version := ""
	for _, key := range keys {
		if key == "version" {
			version = fmt.Sprint(fields[key])
			continue
		}
		s.addWarning(WarningFrontmatter, key, fmt.Sprintf("frontmatter key %q has no meaning here, ignored", key))
	}

	return version, true
}

// section accumulates one block's worth of markdown content.
type section struct {
	title   string
	paras   []paragraph
	started bool
}

// paragraph is either a pre-rendered fragment or an AST node. Nodes
// render at flush time, after button detection has had its say.
type paragraph struct {
	html string
	node ast.Node
}

func (s *importState) collectSections(root ast.Node) ([]editor.BlockRecord, error) {
	var blocks []editor.BlockRecord
	current := &section{}

	flush := func() error {
		record, ok, err := s.buildRecord(current)
		if err != nil {
			return err
		}
		if ok {
			blocks = append(blocks, record)
		}
		current = &section{}
		return nil
	}

	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Heading:
			if err := flush(); err != nil {
				return nil, err
			}
			current.title = s.renderInline(typed)
			current.started = true
		case *ast.ThematicBreak:
			if err := flush(); err != nil {
				return nil, err
			}
		case *ast.Paragraph:
			s.appendParagraph(current, typed)
		case *ast.TextBlock:
			s.appendParagraph(current, typed)
		case *ast.List:
			s.appendFlattenedList(current, typed)
		case *ast.FencedCodeBlock:
			s.appendCodeBlock(current, typed.Language(s.source), typed)
		case *ast.CodeBlock:
			s.appendCodeBlock(current, nil, typed)
		case *ast.Blockquote:
			s.appendBlockquote(current, typed)
		case *ast.HTMLBlock:
			s.addWarning(WarningDroppedBlock, "HTMLBlock", "raw HTML block dropped")
		default:
			s.appendUnknownBlock(current, child)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return blocks, nil
}

func (s *importState) appendParagraph(sec *section, node ast.Node) {
	sec.paras = append(sec.paras, paragraph{node: node})
	sec.started = true
}

func (s *importState) appendFlattenedList(sec *section, list *ast.List) {
	s.addWarning(WarningDroppedBlock, "List", "list structure flattened to plain lines")

	var lines []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for blockNode := item.FirstChild(); blockNode != nil; blockNode = blockNode.NextSibling() {
			if line := s.renderInline(blockNode); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return
	}

	sec.paras = append(sec.paras, paragraph{html: strings.Join(lines, "<br>")})
	sec.started = true
}

func (s *importState) appendCodeBlock(sec *section, language []byte, node ast.Node) {
	detail := "CodeBlock"
	if len(language) > 0 {
		detail = fmt.Sprintf("CodeBlock(%s)", language)
	}
	s.addWarning(WarningDroppedBlock, detail, "code block kept as plain text")

	content := strings.TrimRight(string(node.Text(s.source)), "\n")
	if content == "" {
		return
	}

	sec.paras = append(sec.paras, paragraph{
		html: strings.ReplaceAll(dom.EscapeText(content), "\n", "<br>"),
	})
	sec.started = true
}

func (s *importState) appendBlockquote(sec *section, quote *ast.Blockquote) {
	s.addWarning(WarningDroppedBlock, "Blockquote", "quote level dropped, content kept")

	for child := quote.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Paragraph:
			s.appendParagraph(sec, typed)
		case *ast.TextBlock:
			s.appendParagraph(sec, typed)
		case *ast.List:
			s.appendFlattenedList(sec, typed)
		default:
			s.appendUnknownBlock(sec, child)
		}
	}
}

func (s *importState) appendUnknownBlock(sec *section, node ast.Node) {
	textValue := strings.TrimSpace(string(node.Text(s.source)))
	if textValue == "" {
		return
	}

	kind := node.Kind().String()
	s.addWarning(WarningDroppedBlock, kind, fmt.Sprintf("unsupported markdown block node: %s", kind))

	sec.paras = append(sec.paras, paragraph{html: dom.EscapeText(textValue)})
	sec.started = true
}

func (s *importState) buildRecord(sec *section) (editor.BlockRecord, bool, error) {
	if !sec.started {
		return editor.BlockRecord{}, false, nil
	}

	data := cta.BlockData{Title: sec.title}

	if label, ok := s.detectButton(sec); ok {
		data.Button = label
		sec.paras = sec.paras[:len(sec.paras)-1]
	}

	parts := make([]string, 0, len(sec.paras))
	for _, para := range sec.paras {
		content := para.html
		if para.node != nil {
			content = s.renderInline(para.node)
		}
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}
	data.Text = strings.Join(parts, "<br><br>")

	raw, err := json.Marshal(data)
	if err != nil {
		return editor.BlockRecord{}, false, fmt.Errorf("markdown: encode block data: %w", err)
	}

	return editor.BlockRecord{Type: cta.ToolName, Data: raw}, true, nil
}

// detectButton inspects the section's trailing paragraph. A paragraph
// that is nothing but a link, or nothing but bold text in square
// brackets, reads as a button label.
func (s *importState) detectButton(sec *section) (string, bool) {
	if s.config.ButtonDetection == ButtonDetectNone || len(sec.paras) == 0 {
		return "", false
	}
	last := sec.paras[len(sec.paras)-1]
	if last.node == nil {
		return "", false
	}

	inline := s.soleInlineChild(last.node)
	if inline == nil {
		return "", false
	}

	allowLink := s.config.ButtonDetection == ButtonDetectLink || s.config.ButtonDetection == ButtonDetectAll
	allowStrong := s.config.ButtonDetection == ButtonDetectStrong || s.config.ButtonDetection == ButtonDetectAll

	switch typed := inline.(type) {
	case *ast.Link:
		if !allowLink {
			return "", false
		}
		label := strings.TrimSpace(s.inlineText(typed))
		if label == "" {
			return "", false
		}
		if href := strings.TrimSpace(string(typed.Destination)); href != "" {
			s.addWarning(WarningDroppedMarkup, "Link", fmt.Sprintf("button target %q has no field, label kept", href))
		}
		return label, true
	case *ast.Emphasis:
		if !allowStrong || typed.Level < 2 {
			return "", false
		}
		label := strings.TrimSpace(s.inlineText(typed))
		if strings.HasPrefix(label, "[") && strings.HasSuffix(label, "]") {
			label = strings.TrimSpace(label[1 : len(label)-1])
			if label != "" {
				return label, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// soleInlineChild returns parent's only meaningful inline child,
// ignoring whitespace fragments, or nil when there is more than one.
func (s *importState) soleInlineChild(parent ast.Node) ast.Node {
	var sole ast.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			if strings.TrimSpace(string(textNode.Value(s.source))) == "" {
				continue
			}
			return nil
		}
		if sole != nil {
			return nil
		}
		sole = child
	}
	return sole
}

// inlineText flattens an inline subtree to plain text.
func (s *importState) inlineText(parent ast.Node) string {
	var sb strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			sb.Write(typed.Value(s.source))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(typed.Value)
		default:
			sb.WriteString(s.inlineText(child))
		}
	}
	return sb.String()
}

// renderInline converts a block node's inline children to field markup.
func (s *importState) renderInline(parent ast.Node) string {
	var sb strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		s.writeInline(&sb, child)
	}
	return strings.TrimSpace(sb.String())
}

func (s *importState) writeInline(sb *strings.Builder, node ast.Node) {
	switch typed := node.(type) {
	case *ast.Text:
		sb.WriteString(dom.EscapeText(string(typed.Value(s.source))))
		if typed.HardLineBreak() {
			sb.WriteString("<br>")
		} else if typed.SoftLineBreak() {
			sb.WriteString(" ")
		}

	case *ast.String:
		sb.WriteString(dom.EscapeText(string(typed.Value)))

	case *ast.CodeSpan:
		content := dom.EscapeText(string(typed.Text(s.source)))
		if s.config.InlineStyle == InlineHTML {
			sb.WriteString("<code>")
			sb.WriteString(content)
			sb.WriteString("</code>")
			return
		}
		s.addWarning(WarningDroppedMarkup, "CodeSpan", "inline code formatting dropped, text kept")
		sb.WriteString(content)

	case *ast.Emphasis:
		tag := "i"
		if typed.Level >= 2 {
			tag = "b"
		}
		s.writeWrapped(sb, typed, tag)

	case *extast.Strikethrough:
		s.writeWrapped(sb, typed, "s")

	case *ast.Link:
		s.writeLink(sb, typed)

	case *ast.AutoLink:
		s.writeAutoLink(sb, typed)

	case *ast.Image:
		alt := strings.TrimSpace(string(typed.Text(s.source)))
		if alt == "" {
			alt = "Image"
		}
		s.addWarning(WarningDroppedMarkup, "Image", "image has no field representation, alt text kept")
		sb.WriteString(dom.EscapeText(alt))

	case *ast.RawHTML:
		s.writeRawHTML(sb, typed)

	default:
		if node.HasChildren() {
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				s.writeInline(sb, child)
			}
			return
		}
		s.warnUnknownInline(sb, node)
	}
}

func (s *importState) writeWrapped(sb *strings.Builder, node ast.Node, tag string) {
	if s.config.InlineStyle != InlineHTML {
		kind := node.Kind().String()
		s.addWarning(WarningDroppedMarkup, kind, fmt.Sprintf("%s formatting dropped, text kept", strings.ToLower(kind)))
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			s.writeInline(sb, child)
		}
		return
	}

	sb.WriteString("<" + tag + ">")
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		s.writeInline(sb, child)
	}
	sb.WriteString("</" + tag + ">")
}

func (s *importState) writeLink(sb *strings.Builder, link *ast.Link) {
	href := strings.TrimSpace(string(link.Destination))
	if s.config.InlineStyle != InlineHTML || href == "" {
		if href != "" {
			s.addWarning(WarningDroppedMarkup, "Link", fmt.Sprintf("link target %q dropped, text kept", href))
		}
		for child := link.FirstChild(); child != nil; child = child.NextSibling() {
			s.writeInline(sb, child)
		}
		return
	}

	sb.WriteString(`<a href="`)
	sb.WriteString(dom.EscapeAttr(href))
	sb.WriteString(`">`)
	for child := link.FirstChild(); child != nil; child = child.NextSibling() {
		s.writeInline(sb, child)
	}
	sb.WriteString("</a>")
}

func (s *importState) writeAutoLink(sb *strings.Builder, link *ast.AutoLink) {
	label := string(link.Label(s.source))
	if s.config.InlineStyle == InlineHTML {
		sb.WriteString(`<a href="`)
		sb.WriteString(dom.EscapeAttr(string(link.URL(s.source))))
		sb.WriteString(`">`)
		sb.WriteString(dom.EscapeText(label))
		sb.WriteString("</a>")
		return
	}
	sb.WriteString(dom.EscapeText(label))
}

var inlineBreakPattern = regexp.MustCompile(`(?i)^<br\s*/?>$`)

func (s *importState) writeRawHTML(sb *strings.Builder, node *ast.RawHTML) {
	var raw strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		raw.Write(segment.Value(s.source))
	}

	value := strings.TrimSpace(raw.String())
	if inlineBreakPattern.MatchString(value) {
		sb.WriteString("<br>")
		return
	}
	s.addWarning(WarningDroppedMarkup, "RawHTML", fmt.Sprintf("inline HTML %q dropped", value))
}

func (s *importState) warnUnknownInline(sb *strings.Builder, node ast.Node) {
	textValue := strings.TrimSpace(string(node.Text(s.source)))
	if textValue == "" {
		return
	}

	kind := node.Kind().String()
	s.addWarning(WarningDroppedMarkup, kind, fmt.Sprintf("unsupported markdown inline node: %s", kind))
	sb.WriteString(dom.EscapeText(textValue))
}
