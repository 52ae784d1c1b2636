package report

import (
	"bytes"
	"strings"
	"testing"

	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/score"
)

func sampleRun() Run {
	truth := linker.MappingFrom("Speaker1", "John Doe", "Speaker2", "Ann Lee")
	pred := linker.MappingFrom("Speaker1", "John Doe", "Speaker2", "Ann Li")
	r, err := score.Compare(truth, pred)
	return Run{
		Name:      "ep1",
		Truth:     truth,
		Predicted: pred,
		Text:      "John Doe: hi\nAnn Li: hello",
		Score:     r,
		ScoreErr:  err,
	}
}

func TestConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Console(&buf, sampleRun()); err != nil {
		t.Fatalf("Console() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Ground truth:\n{\"Speaker1\": \"John Doe\", \"Speaker2\": \"Ann Lee\"}",
		"Predicted:\n",
		"Final result:\nJohn Doe: hi\nAnn Li: hello",
		"Achieved accuracy: 0.5",
		"correct=1 incorrect=1 missing=0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Console() output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Markdown(sampleRun())
	for _, want := range []string{
		"# Speaker Resolution Report: ep1",
		"## Ground truth\n\n- Speaker1: John Doe\n- Speaker2: Ann Lee\n",
		"- Speaker2: expected Ann Lee, got Ann Li",
		"## Final result\n\n```\nJohn Doe: hi\nAnn Li: hello\n```\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, md)
		}
	}
}

func TestAccuracy_NoGroundTruth(t *testing.T) {
	t.Parallel()

	_, err := score.Compare(linker.NewMapping(), linker.NewMapping())
	r := Run{Truth: linker.NewMapping(), Predicted: linker.NewMapping(), ScoreErr: err}
	if got := r.Accuracy(); !strings.Contains(got, "no ground truth") {
		t.Errorf("Accuracy() = %q, want a no ground truth message", got)
	}
	if md := Markdown(r); !strings.Contains(md, "None.") {
		t.Errorf("Markdown() with empty mappings should say None.:\n%s", md)
	}
}
