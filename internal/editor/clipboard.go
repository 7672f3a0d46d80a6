package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"flowdraw/internal/shape"
)

// ErrClipboardEmpty is returned when there is nothing to paste.
var ErrClipboardEmpty = errors.New("clipboard is empty")

// Clipboard is the text clipboard shapes are copied through.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the desktop clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

// MemoryClipboard keeps the text in memory. It is used when no system
// clipboard is available.
type MemoryClipboard struct {
	text string
}

func (m *MemoryClipboard) ReadAll() (string, error) { return m.text, nil }
func (m *MemoryClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

// pasteOffset is how far a pasted shape lands from the copied one.
const pasteOffset = 10.0

func encodeShape(sh shape.Shape) (string, error) {
	b, err := json.MarshalIndent(sh.ToRecord(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode shape: %w", err)
	}
	return string(b), nil
}

func decodeShape(text string) (shape.Shape, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return shape.Shape{}, ErrClipboardEmpty
	}
	var r shape.Record
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return shape.Shape{}, fmt.Errorf("clipboard does not hold a shape: %w", err)
	}
	sh, err := shape.FromRecord(r)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("clipboard does not hold a shape: %w", err)
	}
	return sh, nil
}
