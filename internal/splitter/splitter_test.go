package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitShortTextIsOneChunk(t *testing.T) {
	s := New(100, 10)
	chunks := s.Split("короткий текст")
	require.Equal(t, []string{"короткий текст"}, chunks)
}

func TestSplitEmptyText(t *testing.T) {
	require.Nil(t, New(100, 10).Split(""))
}

func TestSplitChunkBoundAndExactOverlap(t *testing.T) {
	const maxLen, overlap = 40, 8
	text := strings.Repeat("слово надежда банк вклад ставка год ", 30)
	chunks := New(maxLen, overlap).Split(text)
	require.Greater(t, len(chunks), 2)

	for i, c := range chunks {
		require.LessOrEqual(t, len([]rune(c)), maxLen, "chunk %d too long", i)
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		tail := string(prev[len(prev)-overlap:])
		head := string(cur[:overlap])
		require.Equal(t, tail, head, "chunks %d/%d do not share the overlap", i-1, i)
	}
}

func TestSplitDropsNoText(t *testing.T) {
	const maxLen, overlap = 50, 10
	text := "Первый абзац про вклады.\n\nВторой абзац про ипотеку и ставки по ней.\nТретья строка. Ещё предложение, довольно длинное, чтобы не влезть целиком."
	chunks := New(maxLen, overlap).Split(text)

	var b strings.Builder
	for i, c := range chunks {
		runes := []rune(c)
		if i == 0 {
			b.WriteString(c)
			continue
		}
		b.WriteString(string(runes[overlap:]))
	}
	require.Equal(t, text, b.String())
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	text := "первый абзац\n\nвторой абзац\n\nтретий абзац"
	chunks := New(20, 0).Split(text)
	require.Equal(t, []string{"первый абзац\n\n", "второй абзац\n\n", "третий абзац"}, chunks)
}

func TestSplitHardCutsUnbrokenRuns(t *testing.T) {
	text := strings.Repeat("ж", 95)
	chunks := New(30, 5).Split(text)
	for _, c := range chunks {
		require.LessOrEqual(t, len([]rune(c)), 30)
	}
	// reconstruction without the overlap prefixes
	var b strings.Builder
	for i, c := range chunks {
		runes := []rune(c)
		if i == 0 {
			b.WriteString(c)
			continue
		}
		b.WriteString(string(runes[5:]))
	}
	require.Equal(t, text, b.String())
}

func TestNewClampsBadOverlap(t *testing.T) {
	s := New(10, 10)
	chunks := s.Split(strings.Repeat("a", 25))
	require.Equal(t, []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)}, chunks)
}
