package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainTextReservedCharactersEscaped(t *testing.T) {
	out := TelegramMarkdownV2("Cost: $5.00 (discount!)")
	require.Equal(t, `Cost: $5\.00 \(discount\!\)`, out)
}

func TestMarkersSurviveEscaping(t *testing.T) {
	out := TelegramMarkdownV2("**bold** and ### Heading")
	require.Equal(t, "*bold* and *Heading*", out)
	require.NotContains(t, out, "**")
	require.NotContains(t, out, "#")
}

func TestBulletsRewritten(t *testing.T) {
	out := TelegramMarkdownV2("итоги:\n* первый\n* второй")
	require.Contains(t, out, "• первый")
	require.Contains(t, out, "• второй")
	require.NotContains(t, out, `\•`)
}

func TestMixedDocument(t *testing.T) {
	in := "### Курс валют\n**Доллар**: 90.5 руб. (рост +1.2%)\n* евро\n* юань"
	out := TelegramMarkdownV2(in)
	require.Contains(t, out, "*Курс валют*")
	require.Contains(t, out, "*Доллар*")
	require.Contains(t, out, `90\.5 руб\.`)
	require.Contains(t, out, `\(рост \+1\.2%\)`)
	require.Contains(t, out, "• евро")
}

func TestEscapeReservedCoversWholeSet(t *testing.T) {
	out := EscapeReserved(reserved)
	for _, r := range reserved {
		require.Contains(t, out, `\`+string(r))
	}
}

func TestStagesOrderIsFixed(t *testing.T) {
	names := make([]string, 0)
	for _, s := range Stages() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"rewrite_headings",
		"rewrite_bold",
		"rewrite_bullets",
		"escape_reserved",
		"unescape_markers",
	}, names)
}

func TestIdempotentForTextWithoutMarkup(t *testing.T) {
	// Once escaped, a second escape pass would double backslashes; the public
	// entry point is applied exactly once per model response.
	out := TelegramMarkdownV2("просто текст без знаков")
	require.Equal(t, "просто текст без знаков", out)
	require.False(t, strings.Contains(out, `\`))
}
