package services

import (
	"regexp"
	"strings"
)

var sentenceRegexp = regexp.MustCompile(`[^.!?]+[.!?]*`)

func splitSentences(text string) []string {
	matches := sentenceRegexp.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, match := range matches {
		sentence := strings.TrimSpace(match)
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}
	return sentences
}

// chunkSentences groups consecutive sentences into chunks of at most maxRunes
// runes. A single sentence longer than maxRunes is hard-split; source order is
// preserved throughout.
func chunkSentences(text string, maxRunes int) []string {
	sentences := splitSentences(text)
	chunks := make([]string, 0, len(sentences))
	var builder strings.Builder
	currentRunes := 0

	flush := func() {
		if builder.Len() > 0 {
			chunks = append(chunks, builder.String())
			builder.Reset()
			currentRunes = 0
		}
	}

	for _, sentence := range sentences {
		runes := []rune(sentence)
		if len(runes) > maxRunes {
			flush()
			for start := 0; start < len(runes); start += maxRunes {
				end := start + maxRunes
				if end > len(runes) {
					end = len(runes)
				}
				chunks = append(chunks, string(runes[start:end]))
			}
			continue
		}
		needed := len(runes)
		if currentRunes > 0 {
			needed++
		}
		if currentRunes+needed > maxRunes {
			flush()
		}
		if currentRunes > 0 {
			builder.WriteString(" ")
			currentRunes++
		}
		builder.WriteString(sentence)
		currentRunes += len(runes)
	}
	flush()

	return chunks
}
