package markdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/cta"
	"github.com/editorkit/ctablock/dom"
	"github.com/editorkit/ctablock/editor"
)

// Exporter converts a block document into GFM markdown.
type Exporter struct {
	config Config
}

// NewExporter creates an Exporter with the given config.
func NewExporter(config Config) (*Exporter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Exporter{config: cfg}, nil
}

type exportState struct {
	config   Config
	warnings []Warning
}

func (s *exportState) addWarning(warnType WarningType, detail, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Detail:  detail,
		Message: message,
	})
}

// Export writes doc as markdown: a frontmatter version header, then one
// section per block. Titles become headings, text becomes paragraphs
// and buttons become trailing bracketed bold lines. An untitled section
// after the first gets a thematic break so the boundary survives a
// reimport.
func (ex *Exporter) Export(doc editor.Document) (ExportResult, error) {
	s := &exportState{config: ex.config}

	var sb strings.Builder
	if doc.Version != "" {
		sb.WriteString("---\nversion: ")
		sb.WriteString(doc.Version)
		sb.WriteString("\n---\n\n")
	}

	wroteSection := false
	for i, block := range doc.Blocks {
		if block.Type != cta.ToolName {
			if err := s.writeUnknownBlock(&sb, i, block); err != nil {
				return ExportResult{}, err
			}
			continue
		}
		wrote, err := s.writeBlock(&sb, i, block, wroteSection)
		if err != nil {
			return ExportResult{}, err
		}
		wroteSection = wroteSection || wrote
	}

	// Trim trailing newlines, then ensure exactly one.
	markdown := strings.TrimRight(sb.String(), "\n") + "\n"
	return ExportResult{Markdown: markdown, Warnings: s.warnings}, nil
}

func (s *exportState) writeUnknownBlock(sb *strings.Builder, index int, block editor.BlockRecord) error {
	switch s.config.UnknownBlocks {
	case UnknownError:
		return fmt.Errorf("markdown: block %d: no exporter for type %q", index, block.Type)
	case UnknownPlaceholder:
		s.addWarning(WarningUnknownBlock, block.Type, fmt.Sprintf("no exporter for %q, placeholder comment written", block.Type))
		fmt.Fprintf(sb, "<!-- unsupported block: %s -->\n\n", block.Type)
	default: // UnknownSkip
		s.addWarning(WarningUnknownBlock, block.Type, fmt.Sprintf("no exporter for %q, block skipped", block.Type))
	}
	return nil
}

func (s *exportState) writeBlock(sb *strings.Builder, index int, block editor.BlockRecord, separate bool) (bool, error) {
	var data cta.BlockData
	if err := json.Unmarshal(block.Data, &data); err != nil {
		return false, fmt.Errorf("markdown: block %d: decode data: %w", index, err)
	}

	title := s.headingText(data.Title)
	paras := s.fieldParagraphs(data.Text)
	button := s.plainText(data.Button)
	if title == "" && len(paras) == 0 && button == "" {
		return false, nil
	}

	if separate && title == "" {
		sb.WriteString("---\n\n")
	}

	if title != "" {
		sb.WriteString(strings.Repeat("#", s.config.HeadingLevel))
		sb.WriteString(" ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	for _, para := range paras {
		sb.WriteString(para)
		sb.WriteString("\n\n")
	}

	if button != "" {
		sb.WriteString("**[")
		sb.WriteString(button)
		sb.WriteString("]**\n\n")
	}

	return true, nil
}

// fieldParagraphs converts field markup into markdown paragraphs. Two
// or more consecutive <br> split paragraphs; a single <br> becomes a
// hard break in the configured style.
func (s *exportState) fieldParagraphs(field string) []string {
	nodes := dom.ParseFragment(field)
	if len(nodes) == 0 {
		return nil
	}

	var paras []string
	var lines []string
	var cur strings.Builder

	flushLine := func() {
		line := strings.TrimSpace(cur.String())
		cur.Reset()
		if line != "" {
			lines = append(lines, line)
		}
	}
	flushPara := func() {
		flushLine()
		if len(lines) == 0 {
			return
		}
		paras = append(paras, strings.Join(lines, s.hardBreak()))
		lines = nil
	}

	breaks := 0
	for _, node := range nodes {
		if isBreak(node) {
			breaks++
			continue
		}
		if breaks > 0 && whitespaceText(node) {
			continue
		}
		if breaks >= 2 {
			flushPara()
		} else if breaks == 1 {
			flushLine()
		}
		breaks = 0
		s.writeInlineMarkdown(&cur, node)
	}
	flushPara()

	return paras
}

func (s *exportState) hardBreak() string {
	switch s.config.HardBreakStyle {
	case HardBreakSpaces:
		return "  \n"
	case HardBreakHTML:
		return "<br>\n"
	default:
		return "\\\n"
	}
}

// headingText flattens field markup to a single markdown line for use
// in a heading. Line breaks collapse to spaces.
func (s *exportState) headingText(field string) string {
	nodes := dom.ParseFragment(field)
	if len(nodes) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, node := range nodes {
		if isBreak(node) {
			sb.WriteString(" ")
			continue
		}
		s.writeInlineMarkdown(&sb, node)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// plainText flattens field markup to an escaped single-line string,
// dropping any tags. Button labels carry no markup in markdown.
func (s *exportState) plainText(field string) string {
	nodes := dom.ParseFragment(field)
	if len(nodes) == 0 {
		return ""
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			return
		case isBreak(n):
			sb.WriteString(" ")
			return
		case n.Type == html.ElementNode:
			s.addWarning(WarningDroppedMarkup, n.Data, fmt.Sprintf("tag <%s> dropped from button label", n.Data))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range nodes {
		walk(node)
	}

	return escapeMarkdown(strings.Join(strings.Fields(sb.String()), " "))
}

func (s *exportState) writeInlineMarkdown(sb *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		sb.WriteString(escapeMarkdown(node.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	// Breaks inside markup spans and headings flatten to a space.
	if node.Data == "br" {
		sb.WriteString(" ")
		return
	}

	// Code spans keep their text verbatim.
	if node.Data == "code" {
		sb.WriteString("`")
		sb.WriteString(nodeText(node))
		sb.WriteString("`")
		return
	}

	opening, closing, known := s.markdownDelimiters(node)
	if !known {
		s.addWarning(WarningDroppedMarkup, node.Data, fmt.Sprintf("tag <%s> has no markdown form, text kept", node.Data))
	}

	sb.WriteString(opening)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		s.writeInlineMarkdown(sb, child)
	}
	sb.WriteString(closing)
}

// markdownDelimiters returns opening and closing markdown for an inline
// element, and whether the element has a markdown form at all.
func (s *exportState) markdownDelimiters(node *html.Node) (string, string, bool) {
	switch node.Data {
	case "b", "strong":
		return "**", "**", true
	case "i", "em":
		return "*", "*", true
	case "s", "del", "strike":
		return "~~", "~~", true
	case "a":
		if href, ok := dom.Attr(node, "href"); ok && strings.TrimSpace(href) != "" {
			return "[", "](" + strings.TrimSpace(href) + ")", true
		}
		return "", "", true
	default:
		return "", "", false
	}
}

func isBreak(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "br"
}

func whitespaceText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// nodeText collects the plain text under n, with breaks as spaces.
func nodeText(node *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if isBreak(n) {
			sb.WriteString(" ")
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}

// escapeMarkdown backslash-escapes characters that would otherwise read
// as markdown or HTML syntax.
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
	"<", "\\<",
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
