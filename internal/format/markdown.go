// Package format re-serializes model markdown into Telegram's MarkdownV2
// dialect. The transformation is an ordered pipeline of pure stages; the
// order is load-bearing. Markers are synthesized first, then every reserved
// character is escaped uniformly, then exactly the two synthesized markers
// (bold asterisk, bullet glyph) are un-escaped. Escaping before marker
// insertion would leave no way to tell markup from literal punctuation.
package format

import (
	"regexp"
	"strings"
)

// reserved is the MarkdownV2 character set that must be backslash-escaped
// when used literally.
const reserved = "_*[]()~`>#+-=|{}.!"

var (
	headingRe = regexp.MustCompile(`###\s*(.*)`)
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletRe  = regexp.MustCompile(`(?m)^\s*\*\s`)
)

// Stage is one named text transformation of the pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Stages returns the pipeline in its required order.
func Stages() []Stage {
	return []Stage{
		{Name: "rewrite_headings", Apply: rewriteHeadings},
		{Name: "rewrite_bold", Apply: rewriteBold},
		{Name: "rewrite_bullets", Apply: rewriteBullets},
		{Name: "escape_reserved", Apply: EscapeReserved},
		{Name: "unescape_markers", Apply: unescapeMarkers},
	}
}

// TelegramMarkdownV2 converts model output into text that Telegram's strict
// parser renders with the intended bold/bullet formatting while every other
// reserved character displays literally.
func TelegramMarkdownV2(text string) string {
	for _, s := range Stages() {
		text = s.Apply(text)
	}
	return text
}

// rewriteHeadings turns "### Heading" into the single-asterisk bold marker.
func rewriteHeadings(text string) string {
	return headingRe.ReplaceAllString(text, "*${1}*")
}

// rewriteBold collapses **double emphasis** to Telegram's *single* marker.
func rewriteBold(text string) string {
	return boldRe.ReplaceAllString(text, "*${1}*")
}

// rewriteBullets replaces a line-leading "* " with a literal bullet glyph.
func rewriteBullets(text string) string {
	return bulletRe.ReplaceAllString(text, "• ")
}

// EscapeReserved backslash-prefixes every reserved character, including the
// markers inserted by the earlier stages.
func EscapeReserved(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for _, r := range text {
		if r < 0x80 && strings.ContainsRune(reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unescapeMarkers restores the markup role of exactly the bold marker and
// the bullet glyph; everything else stays escaped.
func unescapeMarkers(text string) string {
	text = strings.ReplaceAll(text, `\*`, "*")
	return strings.ReplaceAll(text, `\•`, "•")
}
