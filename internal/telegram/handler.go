// Package telegram holds the bot surface: the per-message answer pipeline,
// response segmentation, and the telebot wiring around them.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ragbot/internal/format"
	"ragbot/internal/models"
	"ragbot/internal/providers"
	"ragbot/internal/router"
)

const systemPrompt = "Ты — дружелюбный и полезный ИИ-ассистент. Отвечай структурированно и по делу, используй Markdown для форматирования."

// User-facing failure texts. Sent through the same formatter as normal
// answers.
const (
	apologyNetwork   = "Простите, возникла проблема с доступом к сети. Попробуйте позже."
	apologyMalformed = "Получен странный ответ от ИИ, не могу его обработать."
	apologyGeneric   = "Простите, что-то пошло не так. Я уже разбираюсь в проблеме."
)

type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query string, n int) (string, error)
}

type ChartRequester interface {
	RequestSpec(ctx context.Context, query string) (*models.PlotSpec, error)
}

// Handler turns one user query into a deliverable response. It owns no
// transport: the telebot layer calls it and ships whatever comes back.
type Handler struct {
	router        *router.Router
	retriever     Retriever
	chat          providers.ChatProvider
	search        WebSearcher
	charts        ChartRequester
	render        func(*models.PlotSpec) ([]byte, error)
	searchResults int
	messageLimit  int
}

func NewHandler(
	r *router.Router,
	retriever Retriever,
	chat providers.ChatProvider,
	search WebSearcher,
	charts ChartRequester,
	render func(*models.PlotSpec) ([]byte, error),
	searchResults int,
) *Handler {
	if searchResults <= 0 {
		searchResults = 3
	}
	return &Handler{
		router:        r,
		retriever:     retriever,
		chat:          chat,
		search:        search,
		charts:        charts,
		render:        render,
		searchResults: searchResults,
		messageLimit:  MaxMessageLen,
	}
}

// Response is what gets delivered for one query. Either Photo is set (chart
// answers) or Parts carries MarkdownV2 segments in send order.
type Response struct {
	Parts []string
	Photo []byte
}

// Respond runs the full pipeline: classify, optionally chart, otherwise
// gather context, complete, format, segment. It never returns an error;
// provider failures degrade into an apology text so the user always hears
// back. reqID ties the log lines of one query together.
func (h *Handler) Respond(ctx context.Context, reqID, query string) Response {
	intent := h.router.Classify(query)
	log.Printf("[%s] intent=%s query_len=%d", reqID, intent, len([]rune(query)))

	if intent == router.IntentChart {
		if photo, ok := h.tryChart(ctx, reqID, query); ok {
			return Response{Photo: photo}
		}
		// No usable chart data: answer with text instead.
	}

	answer := h.textAnswer(ctx, reqID, query, intent)
	formatted := format.TelegramMarkdownV2(answer)
	return Response{Parts: SplitMessage(formatted, h.messageLimit)}
}

func (h *Handler) tryChart(ctx context.Context, reqID, query string) ([]byte, bool) {
	spec, err := h.charts.RequestSpec(ctx, query)
	if err != nil {
		log.Printf("[%s] chart spec request failed: %v", reqID, err)
		return nil, false
	}
	if spec == nil {
		log.Printf("[%s] model declined to produce chart data", reqID)
		return nil, false
	}
	photo, err := h.render(spec)
	if err != nil {
		log.Printf("[%s] chart render failed: %v", reqID, err)
		return nil, false
	}
	return photo, true
}

func (h *Handler) textAnswer(ctx context.Context, reqID, query string, intent router.Intent) string {
	docs, err := h.retriever.Retrieve(ctx, query)
	if err != nil {
		log.Printf("[%s] retrieval failed, answering without documents: %v", reqID, err)
		docs = nil
	}

	webContext := ""
	if intent == router.IntentWebAugmented {
		webContext, err = h.search.Search(ctx, query, h.searchResults)
		if err != nil {
			log.Printf("[%s] web search failed, answering without it: %v", reqID, err)
			webContext = ""
		}
	}

	answer, err := h.chat.Complete(ctx, buildPrompt(query, docs, webContext))
	if err != nil {
		log.Printf("[%s] completion failed (%s): %v", reqID, providers.ClassifyError(err), err)
		return apologyFor(err)
	}
	return answer
}

func buildPrompt(query string, docs []string, webContext string) []models.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Вопрос пользователя: %s\n", query)
	if len(docs) > 0 {
		b.WriteString("\nКонтекст из документов:\n")
		for _, d := range docs {
			b.WriteString(d)
			b.WriteString("\n---\n")
		}
	}
	if webContext != "" {
		b.WriteString("\nАктуальная информация из интернета:\n")
		b.WriteString(webContext)
		b.WriteString("\n")
	}
	b.WriteString("\nОтветь на вопрос, опираясь на контекст, если он относится к делу.")
	return []models.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}

func apologyFor(err error) string {
	if errors.Is(err, providers.ErrMalformedResponse) {
		return apologyMalformed
	}
	switch providers.ClassifyError(err) {
	case providers.ErrorTransient, providers.ErrorRate, providers.ErrorQuota:
		return apologyNetwork
	default:
		return apologyGeneric
	}
}
