package ner

import (
	"context"
	"strings"

	"speaker-linker/pkg/api"
)

type entityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]api.Entity, error)
}

// GeminiRecognizer asks a hosted language model for entities.
type GeminiRecognizer struct {
	client entityExtractor
}

func NewGeminiRecognizer(client *api.EntityClient) *GeminiRecognizer {
	return &GeminiRecognizer{client: client}
}

func (g *GeminiRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	raw, err := g.client.ExtractEntities(ctx, text)
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(raw))
	for _, e := range raw {
		if e.Text == "" {
			continue
		}
		entities = append(entities, Entity{Text: e.Text, Label: strings.ToUpper(strings.TrimSpace(e.Label))})
	}
	return entities, nil
}
