package ner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// GazetteerRecognizer reports every whole-word, case-insensitive occurrence of
// a known name as a PERSON entity, keeping the casing found in the text.
type GazetteerRecognizer struct {
	patterns []*regexp.Regexp
}

func NewGazetteerRecognizer(names []string) *GazetteerRecognizer {
	g := &GazetteerRecognizer{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(n)
		last, _ := utf8.DecodeLastRuneInString(n)
		g.patterns = append(g.patterns, regexp.MustCompile(`(?i)`+boundary(first)+regexp.QuoteMeta(n)+boundary(last)))
	}
	return g
}

// LoadGazetteer reads one name per line; blank lines and lines starting with
// '#' are skipped.
func LoadGazetteer(path string) (*GazetteerRecognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadGazetteer(f)
}

func ReadGazetteer(r io.Reader) (*GazetteerRecognizer, error) {
	var names []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}
	return NewGazetteerRecognizer(names), nil
}

func (g *GazetteerRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entities []Entity
	for _, p := range g.patterns {
		for _, m := range p.FindAllString(text, -1) {
			entities = append(entities, Entity{Text: m, Label: LabelPerson})
		}
	}
	return entities, nil
}

// boundary returns \b for ASCII word runes only; RE2's \b does not treat
// accented letters as word characters.
func boundary(r rune) string {
	if r < utf8.RuneSelf && (r == '_' || '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') {
		return `\b`
	}
	return ""
}
