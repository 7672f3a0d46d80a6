package main

import (
	"fmt"
	"html"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func statusCount(verb string, undo, redo int) string {
	return fmt.Sprintf("%s (%d to undo, %d to redo)", verb, undo, redo)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div"))
}

func extractTextFromHTML(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return html.UnescapeString(result.String())
}

// stripRTF drops control words and groups, keeping escaped braces and
// backslashes as text.
func stripRTF(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
			if i+1 >= len(runes) {
				continue
			}
			next := runes[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				result.WriteRune(next)
				i++
			case (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z'):
				// Skip the control word and its optional parameter; a
				// single space delimiter belongs to the word.
				i++
				for i < len(runes) && runes[i] != ' ' && runes[i] != '\\' && runes[i] != '{' && runes[i] != '}' {
					i++
				}
				if i < len(runes) && runes[i] != ' ' {
					i--
				}
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// cleanClipboardText turns pasted text into a plain label: markup is
// stripped, control characters dropped and line endings normalised.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimRight(result.String(), "\n")
}
