package resolver_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/ner"
	"speaker-linker/pkg/resolver"
	"speaker-linker/pkg/transcript"
)

const episode = `Speaker1: Welcome back to the show. My name is Grace Hopper and I host this thing.
Speaker2: Thanks Grace. I'm Alan Turing, glad to be here.
Speaker3: And Linus, that's me, I run the kernel bits.
Speaker1: Great. Alan, tell us about your machine.
Speaker2: Sure. Grace knows it well.
Speaker4: I have no introduction.`

func TestResolve(t *testing.T) {
	t.Parallel()

	rec := ner.NewGazetteerRecognizer([]string{"Grace Hopper", "Grace", "Alan Turing", "Alan", "Linus"})
	r := resolver.New(rec, linker.New(linker.DefaultCues()))

	got, err := r.Resolve(context.Background(), transcript.NewDocument(episode))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if want := []string{"Speaker1", "Speaker2", "Speaker3", "Speaker4"}; !slices.Equal(got.Labels, want) {
		t.Errorf("Labels = %q, want %q", got.Labels, want)
	}
	if want := []string{"grace hopper", "alan turing", "linus"}; !slices.Equal(got.Names, want) {
		t.Errorf("Names = %q, want %q", got.Names, want)
	}

	want := linker.MappingFrom("Speaker1", "Grace Hopper", "Speaker2", "Alan Turing", "Speaker3", "Linus")
	if got.Mapping.String() != want.String() {
		t.Errorf("Mapping = %s, want %s", got.Mapping, want)
	}

	for label, name := range got.Mapping.All() {
		if !slices.Contains(got.Labels, label) {
			t.Errorf("mapped label %q was not extracted", label)
		}
		if !slices.Contains(got.Names, strings.ToLower(name)) {
			t.Errorf("mapped name %q is not a candidate", name)
		}
	}

	if !strings.HasPrefix(got.Text, "Grace Hopper: Welcome back") {
		t.Errorf("Text does not start with the substituted label: %q", got.Text[:40])
	}
	if !strings.Contains(got.Text, "Speaker4: I have no introduction.") {
		t.Errorf("unlinked label was rewritten: %q", got.Text)
	}
}

type failingRecognizer struct{ err error }

func (f failingRecognizer) Recognize(context.Context, string) ([]ner.Entity, error) {
	return nil, f.err
}

func TestResolve_RecognizerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("model unavailable")
	r := resolver.New(failingRecognizer{err: boom}, linker.New(linker.DefaultCues()))
	if _, err := r.Resolve(context.Background(), transcript.NewDocument(episode)); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}
}

type fixedRecognizer []ner.Entity

func (f fixedRecognizer) Recognize(context.Context, string) ([]ner.Entity, error) {
	return f, nil
}

func TestResolve_DecomposedTranscript(t *testing.T) {
	t.Parallel()

	// Both the transcript and the recognizer output use combining accents.
	rec := fixedRecognizer{{Text: "Jose\u0301 Di\u0301az", Label: ner.LabelPerson}}
	r := resolver.New(rec, linker.New(linker.DefaultCues()))

	got, err := r.Resolve(context.Background(), transcript.NewDocument("Speaker1: Hello, my name is Jose\u0301 Di\u0301az.\nSpeaker2: Hi."))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := linker.MappingFrom("Speaker1", "Jos\u00e9 D\u00edaz")
	if got.Mapping.String() != want.String() {
		t.Errorf("Mapping = %s, want %s", got.Mapping, want)
	}
	if !strings.HasPrefix(got.Text, "Jos\u00e9 D\u00edaz: Hello") {
		t.Errorf("Text = %q, want the composed name substituted", got.Text)
	}
}
