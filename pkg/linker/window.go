package linker

import "strings"

// Extract returns the name window this cue cuts out of a lowercased line, and
// false when the phrase does not occur in it.
//
// Fields are split on single spaces, so the space right after (pre) or right
// before (post) the phrase yields an empty field next to it. The default post
// window skips exactly that field.
func (c Cue) Extract(line string) (string, bool) {
	idx := strings.Index(line, c.Phrase)
	if idx < 0 {
		return "", false
	}

	w := c.Window
	if w.Size == 0 {
		w = DefaultWindow(c.Position)
	}

	if c.Position == PostIntro {
		fields := strings.Split(line[:idx], " ")
		return strings.Join(tail(fields, w), " "), true
	}
	fields := strings.Split(line[idx+len(c.Phrase):], " ")
	return strings.Join(head(fields, w), " "), true
}

func head(fields []string, w Window) []string {
	start := min(w.Skip, len(fields))
	end := min(start+w.Size, len(fields))
	return fields[start:end]
}

func tail(fields []string, w Window) []string {
	end := max(len(fields)-w.Skip, 0)
	start := max(end-w.Size, 0)
	return fields[start:end]
}
