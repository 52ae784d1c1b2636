// Package ner defines the named-entity recognizer contract used to find
// candidate person names, and its implementations.
//
// Recognizers are best-effort: output may vary between backends and model
// versions. Callers only rely on entities labelled PERSON.
package ner

import "context"

// LabelPerson is the entity label for people.
const LabelPerson = "PERSON"

// Entity is a recognized span of text and its label.
type Entity struct {
	Text  string
	Label string
}

// Recognizer extracts named entities from a document's text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// PersonNames returns the text of every PERSON entity, in order and with
// duplicates kept.
func PersonNames(entities []Entity) []string {
	var out []string
	for _, e := range entities {
		if e.Label == LabelPerson {
			out = append(out, e.Text)
		}
	}
	return out
}
