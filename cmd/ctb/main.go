package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/editorkit/ctablock/cta"
	"github.com/editorkit/ctablock/dom"
	"github.com/editorkit/ctablock/editor"
	"github.com/editorkit/ctablock/markdown"
)

const (
	modeRender = "render"
	modeSave   = "save"
	modeImport = "import"
	modeExport = "export"
	modeSchema = "schema"
)

func main() {
	mode := flag.String("mode", modeRender, "Mode: render|save|import|export|schema")
	preset := flag.String("preset", presetBalanced, "Preset: balanced|strict|lossy")
	configPath := flag.String("config", "", "Path to a YAML config file")
	toolName := flag.String("tool", cta.ToolName, "Tool name for schema mode")
	showWarnings := flag.Bool("warnings", false, "Print warnings to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ctb [options] <input-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := presetConfig(*preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid preset: %v\n", err)
		os.Exit(1)
	}
	if *configPath != "" {
		cfg, err = loadConfigFile(*configPath, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}
	}

	registry := editor.NewRegistry()
	if err := registry.Register(cta.Descriptor()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering tools: %v\n", err)
		os.Exit(1)
	}

	// Schema mode reflects a registered tool and needs no input file.
	if *mode == modeSchema {
		schema, err := registry.Schema(*toolName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reflecting schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputFile := args[0]

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case modeRender:
		err = runRender(cfg, registry, data, *showWarnings)
	case modeSave:
		err = runSave(cfg, registry, data, *showWarnings)
	case modeImport:
		err = runImport(cfg, data, *showWarnings)
	case modeExport:
		err = runExport(cfg, data, *showWarnings)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (allowed: render, save, import, export, schema)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runRender opens a document and prints its rendered markup.
func runRender(cfg appConfig, registry *editor.Registry, data []byte, showWarnings bool) error {
	doc, err := editor.ParseDocument(data)
	if err != nil {
		return err
	}

	host, err := editor.New(registry, cfg.Editor)
	if err != nil {
		return err
	}
	session, err := host.Open(doc)
	if err != nil {
		return err
	}
	if showWarnings {
		printEditorWarnings(session.Warnings())
	}

	fmt.Println(dom.Render(session.Render()))
	return nil
}

// runSave reads rendered markup back into a document. Every element
// carrying the block wrapper attributes counts as one block; wrappers
// without an id get one so Save can find them again.
func runSave(cfg appConfig, registry *editor.Registry, data []byte, showWarnings bool) error {
	container := dom.Make("div", nil, nil)
	dom.SetInnerHTML(container, string(data))

	wrappers := dom.FindAllWithAttr(container, editor.AttrBlockTool)
	if len(wrappers) == 0 {
		return errors.New("save: no block wrappers in input")
	}

	doc := editor.Document{Blocks: make([]editor.BlockRecord, 0, len(wrappers))}
	for _, wrapper := range wrappers {
		tool, _ := dom.Attr(wrapper, editor.AttrBlockTool)
		id, _ := dom.Attr(wrapper, editor.AttrBlockID)
		doc.Blocks = append(doc.Blocks, editor.BlockRecord{
			ID:   id,
			Type: tool,
			Data: json.RawMessage("{}"),
		})
	}
	doc.EnsureIDs(nil)
	for i, wrapper := range wrappers {
		dom.SetAttr(wrapper, editor.AttrBlockID, doc.Blocks[i].ID)
	}

	host, err := editor.New(registry, cfg.Editor)
	if err != nil {
		return err
	}
	session, err := host.Open(doc)
	if err != nil {
		return err
	}

	saved, err := session.Save(container)
	if err != nil {
		return err
	}
	if showWarnings {
		printEditorWarnings(session.Warnings())
	}

	out, err := saved.Encode()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runImport converts markdown to a document with fresh block ids.
func runImport(cfg appConfig, data []byte, showWarnings bool) error {
	importer, err := markdown.NewImporter(cfg.Markdown)
	if err != nil {
		return err
	}
	result, err := importer.Import(string(data))
	if err != nil {
		return err
	}
	if showWarnings {
		printMarkdownWarnings(result.Warnings)
	}

	result.Document.EnsureIDs(nil)
	out, err := result.Document.Encode()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runExport converts a document to markdown.
func runExport(cfg appConfig, data []byte, showWarnings bool) error {
	doc, err := editor.ParseDocument(data)
	if err != nil {
		return err
	}

	exporter, err := markdown.NewExporter(cfg.Markdown)
	if err != nil {
		return err
	}
	result, err := exporter.Export(doc)
	if err != nil {
		return err
	}
	if showWarnings {
		printMarkdownWarnings(result.Warnings)
	}

	fmt.Print(result.Markdown)
	return nil
}

func printEditorWarnings(warnings []editor.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.Type, warning.Message)
	}
}

func printMarkdownWarnings(warnings []markdown.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.Type, warning.Message)
	}
}
