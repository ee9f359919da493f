package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	tele "gopkg.in/telebot.v3"

	"ragbot/internal/workflows"
)

const greeting = "Здравствуйте! Я — ваш персональный ассистент.\n\nЗадайте свой вопрос или воспользуйтесь одной из подсказок ниже 👇"

const apologyPanic = "Ой, произошла ошибка. Попробуйте еще раз."

// suggestions feed the reply keyboard; three are sampled per /start.
var suggestions = []string{
	"Что такое Large Language Model?",
	"Последние новости об ИИ",
	"Какой сегодня курс доллара?",
	"Построй график роста популярности ИИ",
	"Расскажи о документах, которые ты знаешь",
	"Построй диаграмму использования языков программирования",
	"Что нового в мире технологий сегодня?",
	"Объясни, как работает векторный поиск",
}

// Bot is the long-polling Telegram front end. The temporal client is
// optional: without it /reindex reports that indexing is unavailable.
type Bot struct {
	tb        *tele.Bot
	handler   *Handler
	temporal  client.Client
	taskQueue string
}

func NewBot(token string, handler *Handler, temporal client.Client, taskQueue string) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b := &Bot{tb: tb, handler: handler, temporal: temporal, taskQueue: taskQueue}
	tb.Handle("/start", b.onStart)
	tb.Handle("/help", b.onStart)
	tb.Handle("/reindex", b.onReindex)
	tb.Handle(tele.OnText, b.onText)
	return b, nil
}

// Start blocks on the long-polling loop.
func (b *Bot) Start() {
	log.Printf("telegram bot started")
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) onStart(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	picks := sampleSuggestions(3)
	menu.Reply(
		menu.Row(menu.Text(picks[0]), menu.Text(picks[1])),
		menu.Row(menu.Text(picks[2])),
	)
	return c.Send(greeting, menu)
}

func (b *Bot) onReindex(c tele.Context) error {
	if b.temporal == nil {
		return c.Send("Переиндексация сейчас недоступна.")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run, err := b.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                                       "docs-index",
		TaskQueue:                                b.taskQueue,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.DocsIndexWorkflow, workflows.DocsIndexInput{})
	if err != nil {
		log.Printf("reindex start failed: %v", err)
		return c.Send("Индексация уже выполняется или недоступна.")
	}
	log.Printf("started docs-index workflow run %s", run.GetRunID())
	return c.Send("Запустил переиндексацию документов.")
}

func (b *Bot) onText(c tele.Context) error {
	reqID := uuid.NewString()[:8]
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] panic while handling message: %v", reqID, r)
			_ = c.Send(apologyPanic)
		}
	}()

	query := c.Text()
	log.Printf("[%s] message from chat %d", reqID, c.Chat().ID)
	_ = c.Notify(tele.Typing)

	resp := b.handler.Respond(context.Background(), reqID, query)
	if resp.Photo != nil {
		return c.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(resp.Photo))})
	}
	for _, part := range resp.Parts {
		if err := c.Send(part, &tele.SendOptions{ParseMode: tele.ModeMarkdownV2}); err != nil {
			log.Printf("[%s] send failed: %v", reqID, err)
			return err
		}
	}
	return nil
}

func sampleSuggestions(n int) []string {
	picks := make([]string, len(suggestions))
	copy(picks, suggestions)
	rand.Shuffle(len(picks), func(i, j int) { picks[i], picks[j] = picks[j], picks[i] })
	if n > len(picks) {
		n = len(picks)
	}
	return picks[:n]
}
