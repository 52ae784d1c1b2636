package transcript

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Document holds the two views of a transcript the resolver needs: the full
// text for label extraction and substitution, and its lines for linking.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument composes text to NFC, the form candidate names are normalized
// to, and splits it into lines. Windows line endings are accepted.
func NewDocument(text string) Document {
	text = norm.NFC.String(text)
	return Document{Text: text, Lines: SplitLines(text)}
}

func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	// A trailing newline ends the last line, it does not start a new one.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
