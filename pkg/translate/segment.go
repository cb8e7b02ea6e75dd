package translate

import (
	"strings"
	"unicode/utf8"
)

// SplitSentences splits text into sentences. Line breaks always end a
// sentence, and so does each run of full stops, which stays attached to its
// sentence. Whitespace inside a sentence is collapsed and pieces holding
// nothing but punctuation are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	add := func(piece string) {
		sentence := strings.Join(strings.Fields(piece), " ")
		if strings.Trim(sentence, ". ") != "" {
			sentences = append(sentences, sentence)
		}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		for line != "" {
			end := strings.IndexByte(line, '.')
			if end < 0 {
				end = len(line)
			}
			for end < len(line) && line[end] == '.' {
				end++
			}
			add(line[:end])
			line = line[end:]
		}
	}
	return sentences
}

// SplitParagraphs splits text on blank lines and drops empty paragraphs
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()
	return paragraphs
}

// ChunkParagraphs groups paragraphs into chunks of at most maxChars runes,
// joining paragraphs within a chunk with a blank line. A paragraph longer
// than maxChars is split at the last whitespace before the limit.
func ChunkParagraphs(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 1
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, paragraph := range SplitParagraphs(text) {
		for _, piece := range splitLong(paragraph, maxChars) {
			pieceLen := utf8.RuneCountInString(piece)
			if currentLen > 0 && currentLen+2+pieceLen > maxChars {
				flush()
			}
			if currentLen > 0 {
				current.WriteString("\n\n")
				currentLen += 2
			}
			current.WriteString(piece)
			currentLen += pieceLen
		}
	}
	flush()
	return chunks
}

// splitLong breaks s into pieces of at most maxChars runes
func splitLong(s string, maxChars int) []string {
	var pieces []string
	for utf8.RuneCountInString(s) > maxChars {
		runes := []rune(s)
		cut := maxChars
		for i := maxChars; i > maxChars/2; i-- {
			if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
				cut = i
				break
			}
		}
		pieces = append(pieces, strings.TrimSpace(string(runes[:cut])))
		s = strings.TrimSpace(string(runes[cut:]))
	}
	if s != "" {
		pieces = append(pieces, s)
	}
	return pieces
}
