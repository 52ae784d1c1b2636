// Package resolver wires label extraction, entity recognition, name
// normalization, linking and substitution into one pass over a document.
package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/names"
	"speaker-linker/pkg/ner"
	"speaker-linker/pkg/transcript"
)

type Result struct {
	Labels  []string        `json:"labels"`
	Names   []string        `json:"names"`
	Mapping *linker.Mapping `json:"mapping"`
	Text    string          `json:"text"`
}

type Resolver struct {
	recognizer ner.Recognizer
	linker     *linker.Linker
}

func New(recognizer ner.Recognizer, l *linker.Linker) *Resolver {
	return &Resolver{recognizer: recognizer, linker: l}
}

// Resolve links the document's speaker labels to names and returns the text
// with the linked labels replaced.
func (r *Resolver) Resolve(ctx context.Context, doc transcript.Document) (*Result, error) {
	startTime := time.Now()

	labels := transcript.ExtractSpeakerLabels(doc.Text)

	entities, err := r.recognizer.Recognize(ctx, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("recognize entities: %w", err)
	}
	candidates := names.Normalize(ner.PersonNames(entities))
	zap.S().Infof("Found %d entities, %d candidate names", len(entities), len(candidates))

	mapping := r.linker.Link(doc.Lines, candidates, labels)

	res := &Result{
		Labels:  labels,
		Names:   candidates,
		Mapping: mapping,
		Text:    transcript.ReplaceSpeakers(doc.Text, mapping),
	}
	zap.S().Infof("Resolved %d of %d speakers in %v", mapping.Len(), len(labels), time.Since(startTime))
	return res, nil
}
