package ner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"speaker-linker/pkg/chunker"
	"speaker-linker/pkg/workers"
)

// Chunk modes. Transcripts rarely have sentence punctuation, so they are cut
// into overlapping word windows; documents are cut on sentence boundaries.
const (
	ChunkTranscript = "transcript"
	ChunkDocument   = "document"
)

type ChunkOptions struct {
	Mode        string
	Size        int
	Overlap     int
	Concurrency int
}

// ChunkedRecognizer splits long texts and runs the inner recognizer on the
// pieces concurrently. Entities from overlapping regions may repeat; the name
// normalizer removes duplicates.
type ChunkedRecognizer struct {
	inner Recognizer
	opts  ChunkOptions
}

func NewChunkedRecognizer(inner Recognizer, opts ChunkOptions) *ChunkedRecognizer {
	return &ChunkedRecognizer{inner: inner, opts: opts}
}

func (c *ChunkedRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	chunks, err := c.chunk(text)
	if err != nil {
		return nil, err
	}
	if len(chunks) <= 1 {
		return c.inner.Recognize(ctx, text)
	}

	zap.S().Infof("Recognizing entities in %d chunks (%s mode)", len(chunks), c.opts.Mode)
	perChunk, err := workers.Run(ctx, chunks, c.opts.Concurrency, func(ctx context.Context, _ int, chunk string) ([]Entity, error) {
		return c.inner.Recognize(ctx, chunk)
	})
	if err != nil {
		return nil, err
	}

	var entities []Entity
	for _, ents := range perChunk {
		entities = append(entities, ents...)
	}
	return entities, nil
}

func (c *ChunkedRecognizer) chunk(text string) ([]string, error) {
	switch c.opts.Mode {
	case ChunkDocument:
		return chunker.ChunkText(text, c.opts.Size)
	case ChunkTranscript, "":
		return chunker.ChunkTextBySpace(text, c.opts.Size, c.opts.Overlap)
	default:
		return nil, fmt.Errorf("unknown chunk mode %q", c.opts.Mode)
	}
}
