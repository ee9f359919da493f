// Package plot turns a user request into a rendered PNG chart. The model is
// asked to describe the chart as a small JSON object; rendering happens
// locally.
package plot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ragbot/internal/models"
	"ragbot/internal/providers"
)

const specSystemPrompt = `Ты — генератор данных для графиков. Пользователь просит построить график.
Ответь ТОЛЬКО JSON-объектом без пояснений, в формате:
{"type": "line|bar|pie", "x": [...], "y": [...], "title": "...", "xlabel": "...", "ylabel": "..."}
Если запрос не про график, ответь словом NO.`

// Requester asks a chat provider to produce a chart description.
type Requester struct {
	chat    providers.ChatProvider
	timeout time.Duration
}

func NewRequester(chat providers.ChatProvider) *Requester {
	return &Requester{chat: chat, timeout: 30 * time.Second}
}

// RequestSpec asks the model for a chart description of the query. A nil
// spec with a nil error means the model produced no usable chart data and
// the caller should answer with text instead.
func (r *Requester) RequestSpec(ctx context.Context, query string) (*models.PlotSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.chat.Complete(ctx, []models.Message{
		{Role: "system", Content: specSystemPrompt},
		{Role: "user", Content: query},
	})
	if err != nil {
		return nil, fmt.Errorf("chart spec request failed: %w", err)
	}
	return ParseSpec(raw), nil
}

// ParseSpec extracts a chart spec from model output. Returns nil when the
// output carries no parseable JSON object or the series is unusable.
func ParseSpec(raw string) *models.PlotSpec {
	payload := extractJSON(raw)
	if payload == "" {
		return nil
	}

	var in struct {
		Type   string `json:"type"`
		X      []any  `json:"x"`
		Y      []any  `json:"y"`
		Title  string `json:"title"`
		XLabel string `json:"xlabel"`
		YLabel string `json:"ylabel"`
	}
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		return nil
	}
	if len(in.Y) == 0 {
		return nil
	}

	spec := &models.PlotSpec{
		Type:   strings.ToLower(strings.TrimSpace(in.Type)),
		Title:  in.Title,
		XLabel: in.XLabel,
		YLabel: in.YLabel,
	}
	for _, v := range in.Y {
		f, ok := v.(float64)
		if !ok {
			return nil
		}
		spec.Values = append(spec.Values, f)
	}
	for _, v := range in.X {
		spec.Labels = append(spec.Labels, labelString(v))
	}
	// Pad or trim labels so axes always line up with the series.
	for len(spec.Labels) < len(spec.Values) {
		spec.Labels = append(spec.Labels, strconv.Itoa(len(spec.Labels)+1))
	}
	spec.Labels = spec.Labels[:len(spec.Values)]
	return spec
}

// extractJSON returns the outermost {...} of the text, tolerating markdown
// code fences and prose around the object.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func labelString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
