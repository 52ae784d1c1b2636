package linker

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position says which side of the cue phrase the introduced name sits on.
type Position string

const (
	// PreIntro cues come before the name: "my name is John Doe".
	PreIntro Position = "pre"
	// PostIntro cues come after the name: "John Doe, that's me".
	PostIntro Position = "post"
)

// Window selects the space-delimited fields around a cue that may hold a name.
// Skip fields are dropped next to the phrase before Size fields are taken.
type Window struct {
	Size int `yaml:"size" json:"size"`
	Skip int `yaml:"skip" json:"skip"`
}

// Cue is one introduction phrase plus the rule for cutting its name window.
type Cue struct {
	Phrase   string   `yaml:"phrase" json:"phrase"`
	Position Position `yaml:"position" json:"position"`
	// Window is optional in YAML; a zero Size falls back to the position default.
	Window Window `yaml:"window,omitempty" json:"window,omitempty"`
}

// CueSet is the ordered list of introduction cues. Order matters: within each
// position only the first phrase present in a line is used.
type CueSet struct {
	Cues []Cue `yaml:"cues" json:"cues"`
}

var (
	defaultPreWindow  = Window{Size: 4}
	defaultPostWindow = Window{Size: 3, Skip: 1}
)

// DefaultWindow returns the window used when a cue does not set its own.
func DefaultWindow(p Position) Window {
	if p == PostIntro {
		return defaultPostWindow
	}
	return defaultPreWindow
}

// DefaultCues returns the built-in English introduction phrases.
func DefaultCues() CueSet {
	pre := []string{
		"my name is",
		"i am",
		"i’m",
		"i'm",
		"they call me",
		"i’m called",
		"i'm called",
		"i am called",
	}
	post := []string{
		"that is me",
		"that’s me",
		"that's me",
		"that would be me",
	}

	set := CueSet{}
	for _, p := range pre {
		set.Cues = append(set.Cues, Cue{Phrase: p, Position: PreIntro, Window: defaultPreWindow})
	}
	for _, p := range post {
		set.Cues = append(set.Cues, Cue{Phrase: p, Position: PostIntro, Window: defaultPostWindow})
	}
	return set
}

// Pre returns the pre-introduction cues in configured order.
func (s CueSet) Pre() []Cue { return s.byPosition(PreIntro) }

// Post returns the post-introduction cues in configured order.
func (s CueSet) Post() []Cue { return s.byPosition(PostIntro) }

func (s CueSet) byPosition(p Position) []Cue {
	var out []Cue
	for _, c := range s.Cues {
		if c.Position == p {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks every cue and returns the first problem found.
func (s CueSet) Validate() error {
	if len(s.Cues) == 0 {
		return fmt.Errorf("cue set must contain at least one cue")
	}
	for i, c := range s.Cues {
		if strings.TrimSpace(c.Phrase) == "" {
			return fmt.Errorf("cue %d: phrase is required", i)
		}
		if c.Position != PreIntro && c.Position != PostIntro {
			return fmt.Errorf("cue %d (%q): position must be %q or %q, got %q", i, c.Phrase, PreIntro, PostIntro, c.Position)
		}
		if c.Window.Size < 0 || c.Window.Skip < 0 {
			return fmt.Errorf("cue %d (%q): window size and skip must not be negative", i, c.Phrase)
		}
	}
	return nil
}

// normalized lowercases phrases (lines are matched lowercased) and fills in
// default windows.
func (s CueSet) normalized() CueSet {
	out := CueSet{Cues: make([]Cue, len(s.Cues))}
	for i, c := range s.Cues {
		c.Phrase = strings.ToLower(c.Phrase)
		if c.Window.Size == 0 {
			c.Window = DefaultWindow(c.Position)
		}
		out.Cues[i] = c
	}
	return out
}

// LoadCues reads a YAML cue file.
func LoadCues(path string) (CueSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return CueSet{}, fmt.Errorf("cues: open %q: %w", path, err)
	}
	defer f.Close()

	set, err := LoadCuesFromReader(f)
	if err != nil {
		return CueSet{}, fmt.Errorf("cues: parse %q: %w", path, err)
	}
	return set, nil
}

// LoadCuesFromReader decodes and validates a YAML cue set from r.
func LoadCuesFromReader(r io.Reader) (CueSet, error) {
	var set CueSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return CueSet{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := set.Validate(); err != nil {
		return CueSet{}, err
	}
	return set.normalized(), nil
}
