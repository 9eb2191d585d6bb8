package markdown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editorkit/ctablock/cta"
	"github.com/editorkit/ctablock/editor"
)

func newTestExporter(t testing.TB, cfg Config) *Exporter {
	t.Helper()
	ex, err := NewExporter(cfg)
	require.NoError(t, err)
	return ex
}

func ctaRecord(t testing.TB, data cta.BlockData) editor.BlockRecord {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return editor.BlockRecord{Type: cta.ToolName, Data: raw}
}

func TestExportBasicDocument(t *testing.T) {
	doc := editor.Document{
		Version: "1.0.0",
		Blocks: []editor.BlockRecord{
			ctaRecord(t, cta.BlockData{
				Title:  "Summer Sale",
				Text:   "Fresh arrivals.<br>Up to 40% off.<br><br>Limited stock.",
				Button: "Shop now",
			}),
		},
	}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)

	want := "---\n" +
		"version: 1.0.0\n" +
		"---\n\n" +
		"## Summer Sale\n\n" +
		"Fresh arrivals.\\\n" +
		"Up to 40% off.\n\n" +
		"Limited stock.\n\n" +
		"**[Shop now]**\n"
	assert.Equal(t, want, result.Markdown)
	assert.Empty(t, result.Warnings)
}

func TestExportUntitledSectionsSeparated(t *testing.T) {
	doc := editor.Document{
		Blocks: []editor.BlockRecord{
			ctaRecord(t, cta.BlockData{Text: "First thoughts."}),
			ctaRecord(t, cta.BlockData{Text: "Second thoughts."}),
			ctaRecord(t, cta.BlockData{Title: "Titled", Text: "Third thoughts."}),
		},
	}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)

	// Only the untitled follow-up needs a thematic break; the heading
	// already marks a boundary.
	want := "First thoughts.\n\n" +
		"---\n\n" +
		"Second thoughts.\n\n" +
		"## Titled\n\n" +
		"Third thoughts.\n"
	assert.Equal(t, want, result.Markdown)
}

func TestExportHardBreakStyles(t *testing.T) {
	tests := []struct {
		style HardBreakStyle
		want  string
	}{
		{HardBreakBackslash, "alpha\\\nbeta\n"},
		{HardBreakSpaces, "alpha  \nbeta\n"},
		{HardBreakHTML, "alpha<br>\nbeta\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			doc := editor.Document{Blocks: []editor.BlockRecord{
				ctaRecord(t, cta.BlockData{Text: "alpha<br>beta"}),
			}}

			ex := newTestExporter(t, Config{HardBreakStyle: tt.style})
			result, err := ex.Export(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Markdown)
		})
	}
}

func TestExportHeadingLevel(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{Title: "Deep Dive"}),
	}}

	ex := newTestExporter(t, Config{HeadingLevel: 4})
	result, err := ex.Export(doc)
	require.NoError(t, err)
	assert.Equal(t, "#### Deep Dive\n", result.Markdown)
}

func TestExportInlineMarkup(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{
			Text: `This <i>is</i> <b>bold</b> with <code>a*b</code>, <s>gone</s> and <a href="https://e.com/p">link</a>.`,
		}),
	}}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)

	assert.Equal(t, "This *is* **bold** with `a*b`, ~~gone~~ and [link](https://e.com/p).\n", result.Markdown)
	assert.Empty(t, result.Warnings)
}

func TestExportUnknownInlineTag(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{Text: `keep <u>this</u> text and <a>plain</a> anchors`}),
	}}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)

	// <u> has no markdown form; an href-less anchor unwraps silently.
	assert.Equal(t, "keep this text and plain anchors\n", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDroppedMarkup, result.Warnings[0].Type)
	assert.Equal(t, "u", result.Warnings[0].Detail)
}

func TestExportButtonLabelFlattened(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{Button: `Buy <b>now</b><br>today`}),
	}}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)

	assert.Equal(t, "**[Buy now today]**\n", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDroppedMarkup, result.Warnings[0].Type)
	assert.Equal(t, "b", result.Warnings[0].Detail)
	assert.Contains(t, result.Warnings[0].Message, "button label")
}

func TestExportUnknownBlockModes(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{Text: "Known."}),
		{Type: "carousel", Data: json.RawMessage(`{}`)},
	}}

	t.Run("placeholder", func(t *testing.T) {
		ex := newTestExporter(t, Config{UnknownBlocks: UnknownPlaceholder})
		result, err := ex.Export(doc)
		require.NoError(t, err)

		assert.Equal(t, "Known.\n\n<!-- unsupported block: carousel -->\n", result.Markdown)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningUnknownBlock, result.Warnings[0].Type)
		assert.Equal(t, "carousel", result.Warnings[0].Detail)
	})

	t.Run("skip", func(t *testing.T) {
		ex := newTestExporter(t, Config{UnknownBlocks: UnknownSkip})
		result, err := ex.Export(doc)
		require.NoError(t, err)

		assert.Equal(t, "Known.\n", result.Markdown)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0].Message, "skipped")
	})

	t.Run("error", func(t *testing.T) {
		ex := newTestExporter(t, Config{UnknownBlocks: UnknownError})
		_, err := ex.Export(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no exporter for type "carousel"`)
	})
}

func TestExportEscapesMarkdown(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{Text: "2 * 3 = 6 [really] in snake_case"}),
	}}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)
	assert.Equal(t, "2 \\* 3 = 6 \\[really\\] in snake\\_case\n", result.Markdown)
}

func TestExportEmptyBlocks(t *testing.T) {
	doc := editor.Document{Blocks: []editor.BlockRecord{
		ctaRecord(t, cta.BlockData{}),
		ctaRecord(t, cta.BlockData{Text: "<br><br>"}),
	}}

	ex := newTestExporter(t, Config{})
	result, err := ex.Export(doc)
	require.NoError(t, err)
	assert.Equal(t, "\n", result.Markdown)
}

func TestImportExportRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		importCfg Config
	}{
		{
			name: "titled section with button",
			source: "---\nversion: 1.0.0\n---\n\n" +
				"## Summer Sale\n\n" +
				"Fresh arrivals for the warm season.\n\n" +
				"**[Shop now]**\n",
		},
		{
			name: "inline markup and hard break",
			source: "---\nversion: 2.0.0\n---\n\n" +
				"## Hello\n\n" +
				"Stay *sharp* and **focused**.\\\nAlways.\n\n" +
				"**[Go]**\n",
			importCfg: Config{InlineStyle: InlineHTML},
		},
		{
			name: "untitled sections",
			source: "---\nversion: 1.0.0\n---\n\n" +
				"First thoughts.\n\n" +
				"---\n\n" +
				"Second thoughts.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := newTestImporter(t, tt.importCfg)
			imported, err := imp.Import(tt.source)
			require.NoError(t, err)

			ex := newTestExporter(t, Config{})
			exported, err := ex.Export(imported.Document)
			require.NoError(t, err)

			assert.Equal(t, tt.source, exported.Markdown)
		})
	}
}
