// Package linker pairs speaker labels with person names by scanning transcript
// lines for introduction cues such as "my name is" and "that's me".
//
// Matching is greedy: candidates are tried in pool order and the first one
// contained in the cue window wins. Every name and label is used at most once.
package linker

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

type Linker struct {
	pre  []Cue
	post []Cue
}

// New returns a Linker for the given cues. Phrases are lowercased and missing
// windows filled with the position default.
func New(cues CueSet) *Linker {
	cues = cues.normalized()
	return &Linker{pre: cues.Pre(), post: cues.Post()}
}

// Link runs the default cues over lines. The input slices are not modified.
func Link(lines, names, labels []string) *Mapping {
	return New(DefaultCues()).Link(lines, names, labels)
}

// Link pairs labels with names using fresh pools built from names and labels.
func (l *Linker) Link(lines, names, labels []string) *Mapping {
	return l.LinkPools(lines, NewPool(names), NewPool(labels))
}

// LinkPools consumes the given pools while walking lines in order. Names are
// expected lowercased; labels keep their text casing.
func (l *Linker) LinkPools(lines []string, names, labels *Pool) *Mapping {
	zap.S().Infof("Linking %d lines against %d names and %d labels", len(lines), names.Len(), labels.Len())

	m := NewMapping()
	for i, ln := range lines {
		if ln == "" {
			continue
		}
		tokens := strings.ToLower(ln)
		var scan lineScan

		for _, c := range l.pre {
			if l.scan(tokens, c, names, labels, &scan) {
				break
			}
		}
		if scan.commit(m) {
			zap.S().Debugf("Line %d: committed via pre cue", i+1)
		}

		for _, c := range l.post {
			if l.scan(tokens, c, names, labels, &scan) {
				break
			}
		}
		if scan.commit(m) {
			zap.S().Debugf("Line %d: committed via post cue", i+1)
		}
	}

	zap.S().Infof("Linked %d speakers, %d names and %d labels left unclaimed", m.Len(), names.Len(), labels.Len())
	return m
}

// scan applies one cue to a lowercased line. It reports whether the phrase was
// present, which ends the cue loop for that position whatever was claimed.
func (l *Linker) scan(tokens string, c Cue, names, labels *Pool, scan *lineScan) bool {
	window, ok := c.Extract(tokens)
	if !ok {
		return false
	}

	if name, ok := names.Claim(func(n string) bool {
		return n != "" && strings.Contains(window, n)
	}); ok {
		scan.holdName(TitleCase(name))
	}

	if label, ok := labels.Claim(func(lb string) bool {
		return strings.Contains(tokens, strings.ToLower(lb))
	}); ok {
		scan.holdLabel(CanonicalLabel(label))
	}
	return true
}

// TitleCase upper-cases the first letter of every space-separated part and
// leaves the rest untouched.
func TitleCase(name string) string {
	parts := strings.Split(name, " ")
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size == 0 {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// CanonicalLabel restores the "Speaker" capitalisation of a label.
func CanonicalLabel(label string) string {
	return strings.ReplaceAll(label, "speaker", "Speaker")
}
