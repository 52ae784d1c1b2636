package ner

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs the prose model in process. It needs no network or
// configuration.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

func (p *ProseRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}
