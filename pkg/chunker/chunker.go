package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// ChunkText groups whole sentences into chunks of roughly chunkSize words. A
// sentence longer than chunkSize becomes a chunk of its own.
func ChunkText(content string, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	zap.S().Debugf("Chunking text by sentence, %d words per chunk", chunkSize)

	content = strings.ReplaceAll(content, "\r\n", " ")
	content = strings.ReplaceAll(content, "\n", " ")

	sentences := splitIntoSentences(content)
	return groupSentences(sentences, chunkSize), nil
}

// ChunkTextBySpace cuts content into windows of chunkSize words where each
// window repeats the last overlap words of the previous one, so a name cut at a
// boundary appears whole in one of the two chunks.
func ChunkTextBySpace(content string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSize, overlap)
	}

	words := strings.Fields(content)
	zap.S().Debugf("Chunking %d words by space, size %d, overlap %d", len(words), chunkSize, overlap)
	if len(words) == 0 {
		return nil, nil
	}
	if len(words) <= chunkSize {
		return []string{strings.Join(words, " ")}, nil
	}

	var chunks []string
	for i := 0; i < len(words); i += chunkSize - overlap {
		end := min(i+chunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks, nil
}

func splitIntoSentences(text string) []string {
	text = protectAbbreviations(text)

	var sentences []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, restoreAbbreviations(s))
		}
		current.Reset()
	}

	for i := 0; i < len(text); i++ {
		current.WriteByte(text[i])
		if (text[i] == '.' || text[i] == '!' || text[i] == '?') &&
			(i == len(text)-1 || unicode.IsSpace(rune(text[i+1]))) {
			flush()
		}
	}
	flush()
	return sentences
}

func groupSentences(sentences []string, target int) []string {
	var chunks []string
	var current []string
	words := 0

	for _, s := range sentences {
		n := len(strings.Fields(s))
		if words > 0 && words+n > target {
			chunks = append(chunks, strings.Join(current, " "))
			current, words = nil, 0
		}
		current = append(current, s)
		words += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// Honorifics end in a period but do not end a sentence; "Mr. Smith" must stay
// in one chunk for the recognizer to see the full name.
var abbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Jr.", "St.",
	"Inc.", "Ltd.", "Co.", "Corp.",
	"i.e.", "e.g.", "etc.", "vs.", "a.m.", "p.m.",
	"U.S.", "U.K.", "E.U.",
}

const abbrevDot = "·"

func protectAbbreviations(text string) string {
	for _, abbr := range abbreviations {
		text = strings.ReplaceAll(text, abbr, strings.ReplaceAll(abbr, ".", abbrevDot))
	}
	return text
}

func restoreAbbreviations(text string) string {
	for _, abbr := range abbreviations {
		text = strings.ReplaceAll(text, strings.ReplaceAll(abbr, ".", abbrevDot), abbr)
	}
	return text
}
