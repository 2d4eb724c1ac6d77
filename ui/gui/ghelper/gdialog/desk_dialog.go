//go:build !js && !wasm

package gdialog

import (
	"errors"
	"os"

	"github.com/sqweek/dialog"
)

// Notice shows a blocking message box; call it off the ebiten goroutine.
func Notice(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}

// SaveText asks for a file name and writes data to it. A canceled dialog
// is not an error.
func SaveText(title, data string) (string, error) {
	path, err := dialog.File().Title(title).Filter("Game record", "txt").Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(data), 0644)
}
