//go:build !js && !wasm

package gclipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard not available")

// WriteAll replaces the clipboard text, e.g. with a position string.
func WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
