package telegram

// MaxMessageLen is Telegram's hard per-message length limit.
const MaxMessageLen = 4096

// SplitMessage cuts text into segments of at most limit runes, preferring to
// break at the last newline inside the window so markup entities are not cut
// mid-line; the newline at a split point is consumed. Without a newline in
// the window the text is hard-cut at the limit. Segment order is delivery
// order.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLen
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	parts := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		if len(runes) <= limit {
			parts = append(parts, string(runes))
			break
		}
		window := runes[:limit]
		cut := -1
		for i := len(window) - 1; i >= 0; i-- {
			if window[i] == '\n' {
				cut = i
				break
			}
		}
		if cut >= 0 {
			parts = append(parts, string(window[:cut]))
			runes = runes[cut+1:]
		} else {
			parts = append(parts, string(window))
			runes = runes[limit:]
		}
	}
	return parts
}
