package cta

import (
	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/editor"
	"github.com/editorkit/ctablock/sanitize"
)

// ToolName is the registry key for this tool.
const ToolName = "cta"

const toolboxIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="17" height="15" viewBox="0 0 17 15"><path d="M15.1 4.5H1.9C1 4.5.3 5.2.3 6.1v2.8c0 .9.7 1.6 1.6 1.6h13.2c.9 0 1.6-.7 1.6-1.6V6.1c0-.9-.7-1.6-1.6-1.6zm-8.6 4H3.4c-.4 0-.7-.3-.7-.7s.3-.7.7-.7h3.1c.4 0 .7.3.7.7s-.3.7-.7.7zm4.8 0H9.8c-.4 0-.7-.3-.7-.7s.3-.7.7-.7h1.5c.4 0 .7.3.7.7s-.3.7-.7.7z"/></svg>`

// Toolbox describes the insert affordance for this tool.
func Toolbox() editor.Toolbox {
	return editor.Toolbox{Icon: toolboxIcon, Title: "CTA"}
}

// Contentless reports that an empty CTA block does not count as
// document content.
func Contentless() bool {
	return true
}

// EnableLineBreaks keeps Enter inside a field as a literal line break
// instead of a block split.
func EnableLineBreaks() bool {
	return true
}

// Sanitize declares the per-field allow-list the host enforces on
// save: only <br> survives in any of the three fields.
func Sanitize() sanitize.Rules {
	return sanitize.Rules{
		"title":  sanitize.Tags("br"),
		"text":   sanitize.Tags("br"),
		"button": sanitize.Tags("br"),
	}
}

// Descriptor returns the registration record for the host kernel.
func Descriptor() editor.Tool {
	return editor.Tool{
		Name:             ToolName,
		Toolbox:          Toolbox(),
		Contentless:      Contentless(),
		EnableLineBreaks: EnableLineBreaks(),
		Sanitize:         Sanitize(),
		Data:             BlockData{},
		Create: func(args editor.CreateArgs) (editor.Block, error) {
			return blockAdapter{New(decodeBlockData(args.Data), decodeConfig(args.Config), args.API)}, nil
		},
	}
}

// blockAdapter lifts Tool's typed Save into the kernel's Block
// interface.
type blockAdapter struct {
	*Tool
}

func (a blockAdapter) Save(root *html.Node) (any, error) {
	return a.Tool.Save(root)
}

var _ editor.Block = blockAdapter{}
