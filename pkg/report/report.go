// Package report renders a resolution run for people: a console dump and a
// markdown report that pkg/pdf turns into a PDF.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"speaker-linker/pkg/linker"
	"speaker-linker/pkg/score"
)

type Run struct {
	Name      string
	Truth     *linker.Mapping
	Predicted *linker.Mapping
	Text      string
	Score     score.Report
	ScoreErr  error
}

// Accuracy formats the score line, or explains why there is none.
func (r Run) Accuracy() string {
	switch {
	case errors.Is(r.ScoreErr, score.ErrNoGroundTruth):
		return "no ground truth, accuracy not available"
	case r.ScoreErr != nil:
		return fmt.Sprintf("scoring failed: %v", r.ScoreErr)
	default:
		return fmt.Sprintf("Achieved accuracy: %v", r.Score.Accuracy)
	}
}

func Console(w io.Writer, r Run) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("###", 10) + "\n")
	b.WriteString("Ground truth:\n")
	b.WriteString(r.Truth.String() + "\n")
	b.WriteString(strings.Repeat("---", 6) + "\n")
	b.WriteString("Predicted:\n")
	b.WriteString(r.Predicted.String() + "\n")
	b.WriteString(strings.Repeat("---", 6) + "\n")
	b.WriteString("Final result:\n")
	b.WriteString(r.Text + "\n")
	b.WriteString(strings.Repeat("===", 4) + "\n")
	b.WriteString(r.Accuracy() + "\n")
	if r.ScoreErr == nil {
		b.WriteString(r.Score.String() + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders the run as markdown with h1/h2 headings and bullet lists.
// The transcript goes into a fenced block so its line breaks survive.
func Markdown(r Run) string {
	var b strings.Builder
	title := "Speaker Resolution Report"
	if r.Name != "" {
		title += ": " + r.Name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Ground truth\n\n")
	writeMapping(&b, r.Truth)

	b.WriteString("## Predicted\n\n")
	writeMapping(&b, r.Predicted)

	b.WriteString("## Accuracy\n\n")
	b.WriteString(r.Accuracy() + "\n\n")
	if r.ScoreErr == nil {
		fmt.Fprintf(&b, "- Correct: %d\n- Incorrect: %d\n- Missing: %d\n\n", r.Score.Correct, r.Score.Incorrect, r.Score.Missing)
		for _, nm := range r.Score.NearMisses {
			fmt.Fprintf(&b, "- %s: expected %s, got %s (similarity %.2f)\n", nm.Label, nm.Want, nm.Got, nm.Similarity)
		}
		if len(r.Score.NearMisses) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Final result\n\n```\n")
	b.WriteString(strings.ReplaceAll(r.Text, "```", "'''"))
	if !strings.HasSuffix(r.Text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func writeMapping(b *strings.Builder, m *linker.Mapping) {
	if m.Len() == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for label, name := range m.All() {
		fmt.Fprintf(b, "- %s: %s\n", label, name)
	}
	b.WriteString("\n")
}
