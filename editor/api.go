// Package editor is a minimal in-process host kernel for block tools:
// a registry of tool descriptors, a JSON document codec, and sessions
// that render documents to element trees and save them back. It is
// single-threaded by contract; one session is never used concurrently.
package editor

// Styles carries the CSS class names the host hands every tool so
// rendered blocks stay visually consistent. Tools read these and never
// write them.
type Styles struct {
	Block                string `json:"block" validate:"required"`
	Input                string `json:"input" validate:"required"`
	SettingsButton       string `json:"settingsButton" validate:"required"`
	SettingsButtonActive string `json:"settingsButtonActive" validate:"required"`
}

// DefaultStyles returns the stock class set.
func DefaultStyles() Styles {
	return Styles{
		Block:                "cdx-block",
		Input:                "cdx-input",
		SettingsButton:       "cdx-settings-button",
		SettingsButtonActive: "cdx-settings-button--active",
	}
}

// API is the host handle passed to every tool at construction.
type API struct {
	Styles Styles
}
