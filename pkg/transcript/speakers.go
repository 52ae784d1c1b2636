package transcript

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"speaker-linker/pkg/linker"
)

var speakerLabelPattern = regexp.MustCompile(`Speaker\d*`)

// SpeakerInfo counts how often a label occurs in a transcript.
type SpeakerInfo struct {
	Label       string
	Occurrences int
}

// DetectSpeakers returns every distinct speaker label with its occurrence
// count, ordered by first appearance.
func DetectSpeakers(text string) []SpeakerInfo {
	var speakers []SpeakerInfo
	index := make(map[string]int)

	for _, match := range speakerLabelPattern.FindAllString(text, -1) {
		if i, ok := index[match]; ok {
			speakers[i].Occurrences++
			continue
		}
		index[match] = len(speakers)
		speakers = append(speakers, SpeakerInfo{Label: match, Occurrences: 1})
	}
	return speakers
}

// ExtractSpeakerLabels returns the distinct speaker labels in text, in order of
// first appearance and with their original casing.
func ExtractSpeakerLabels(text string) []string {
	speakers := DetectSpeakers(text)
	labels := make([]string, len(speakers))
	for i, s := range speakers {
		labels[i] = s.Label
	}
	zap.S().Infof("Detected %d speaker labels in transcript", len(labels))
	return labels
}

// ReplaceSpeakers substitutes every literal occurrence of each label with its
// name, in mapping order. A label that is a prefix of a later label
// ("Speaker1" vs "Speaker10") rewrites part of it first.
func ReplaceSpeakers(text string, mapping *linker.Mapping) string {
	if mapping.Len() == 0 {
		return text
	}

	zap.S().Infof("Replacing %d speaker labels with names", mapping.Len())
	result := text
	for label, name := range mapping.All() {
		result = strings.ReplaceAll(result, label, name)
	}
	return result
}
