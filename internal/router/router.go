// Package router decides the handling path for an incoming query by keyword
// matching. Deterministic and order-dependent: the chart rule wins over the
// other two.
package router

import "strings"

type Intent int

const (
	// IntentDocuments: answer from document context only.
	IntentDocuments Intent = iota
	// IntentWebAugmented: document context plus live web search.
	IntentWebAugmented
	// IntentChart: the user wants a rendered chart image.
	IntentChart
)

func (i Intent) String() string {
	switch i {
	case IntentChart:
		return "chart"
	case IntentWebAugmented:
		return "web_augmented"
	default:
		return "documents"
	}
}

// Router matches queries against configured keyword sets. The lists are
// configuration, not code: tuning them requires no rebuild.
type Router struct {
	plotKeywords []string
	webKeywords  []string
}

func New(plotKeywords, webKeywords []string) *Router {
	return &Router{
		plotKeywords: lowerAll(plotKeywords),
		webKeywords:  lowerAll(webKeywords),
	}
}

// Classify picks the handling path via case-insensitive substring matching.
// Chart intent is checked first and takes priority over web augmentation.
func (r *Router) Classify(query string) Intent {
	q := strings.ToLower(query)
	if containsAny(q, r.plotKeywords) {
		return IntentChart
	}
	if containsAny(q, r.webKeywords) {
		return IntentWebAugmented
	}
	return IntentDocuments
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
