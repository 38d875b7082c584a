package local

import (
	"errors"

	"github.com/ZaguanLabs/zhlive"
	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when the host has no clipboard utility.
var ErrNoClipboard = errors.New("no clipboard utility found")

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// NewSystemClipboard returns the system clipboard, or ErrNoClipboard.
func NewSystemClipboard() (*SystemClipboard, error) {
	if clipboard.Unsupported {
		return nil, ErrNoClipboard
	}
	return &SystemClipboard{}, nil
}

// WriteText implements zhlive.Clipboard.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Verify SystemClipboard implements Clipboard
var _ zhlive.Clipboard = (*SystemClipboard)(nil)
