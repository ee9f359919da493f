// Package splitter cuts document text into overlapping chunks sized for
// embedding. Splitting prefers the largest structural separator that keeps a
// piece within bounds (paragraph, line, sentence, word, raw runes), and the
// configured overlap is copied verbatim from the tail of each chunk into the
// head of the next so context survives chunk boundaries.
package splitter

import "strings"

var separators = []string{"\n\n", "\n", ". ", " "}

type Splitter struct {
	maxLen  int
	overlap int
}

func New(maxLen, overlap int) Splitter {
	if maxLen <= 0 {
		maxLen = 1000
	}
	if overlap < 0 || overlap >= maxLen {
		overlap = 0
	}
	return Splitter{maxLen: maxLen, overlap: overlap}
}

// Split returns the ordered chunks of text. Every chunk is at most maxLen
// runes; consecutive chunks share exactly overlap runes; no input text is
// dropped. The chunk position in the returned slice is its ordinal.
func (s Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	// Each chunk after the first carries an overlap-rune prefix, so chunk
	// bodies may use at most maxLen-overlap runes.
	bodyLimit := s.maxLen - s.overlap
	pieces := splitRecursive(text, separators, bodyLimit)
	bodies := mergePieces(pieces, bodyLimit)

	chunks := make([]string, 0, len(bodies))
	for i, body := range bodies {
		if i == 0 {
			chunks = append(chunks, body)
			continue
		}
		prev := []rune(chunks[i-1])
		from := len(prev) - s.overlap
		if from < 0 {
			from = 0
		}
		chunks = append(chunks, string(prev[from:])+body)
	}
	return chunks
}

// splitRecursive breaks text into pieces of at most limit runes, trying the
// given separators in order before falling back to raw rune windows.
// Separators stay attached to the preceding piece, so concatenating the
// pieces reproduces the input exactly.
func splitRecursive(text string, seps []string, limit int) []string {
	if len([]rune(text)) <= limit {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	if len(seps) == 0 {
		return splitRunes(text, limit)
	}
	parts := strings.SplitAfter(text, seps[0])
	if len(parts) == 1 {
		return splitRecursive(text, seps[1:], limit)
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len([]rune(part)) <= limit {
			out = append(out, part)
			continue
		}
		out = append(out, splitRecursive(part, seps[1:], limit)...)
	}
	return out
}

func splitRunes(text string, limit int) []string {
	runes := []rune(text)
	out := make([]string, 0, len(runes)/limit+1)
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}

// mergePieces greedily packs adjacent pieces into bodies of at most limit
// runes without reordering or dropping anything.
func mergePieces(pieces []string, limit int) []string {
	out := make([]string, 0, len(pieces))
	var current strings.Builder
	currentLen := 0
	for _, p := range pieces {
		n := len([]rune(p))
		if currentLen > 0 && currentLen+n > limit {
			out = append(out, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(p)
		currentLen += n
	}
	if currentLen > 0 {
		out = append(out, current.String())
	}
	return out
}
