package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytget/tg-video-bot/internal/extractor"
	"github.com/ytget/tg-video-bot/internal/queue"
	"github.com/ytget/tg-video-bot/internal/session"
)

// Reply texts.
const (
	GreetingText      = "Send me a video link and I will fetch it for you."
	PromptText        = "Please send me a link to a video."
	ProbingText       = "Looking up available formats..."
	ProbeFailedText   = "Could not read that link. Check that it points to a video and try again."
	ChoiceExpiredText = "That choice has expired. Send the link again."
	UnknownOptionText = "That option is no longer available. Send the link again."
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// API is the subset of the Telegram client used by the handler.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Prober resolves a URL into a title and a set of selectable formats.
type Prober interface {
	Probe(ctx context.Context, url string) (*extractor.ProbeResult, error)
}

// Handler routes incoming Telegram updates.
type Handler struct {
	api      API
	prober   Prober
	sessions *session.Store
	queue    *queue.Queue
}

// NewHandler creates a Handler wired to the given collaborators.
func NewHandler(api API, prober Prober, sessions *session.Store, q *queue.Queue) *Handler {
	return &Handler{
		api:      api,
		prober:   prober,
		sessions: sessions,
		queue:    q,
	}
}

// Run consumes updates until the channel closes or the context is cancelled.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		h.sendText(chatID, GreetingText)
		return
	}

	url := urlPattern.FindString(msg.Text)
	if url == "" {
		h.sendText(chatID, PromptText)
		return
	}

	h.sendText(chatID, ProbingText)

	result, err := h.prober.Probe(ctx, url)
	if err != nil {
		log.Printf("Probe failed for chat %d: %v", chatID, err)
		h.sendText(chatID, ProbeFailedText)
		return
	}

	h.sessions.SetAwaitingChoice(chatID, url, result.Title, result.Options)

	offer := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\nChoose a format:", result.Title))
	offer.ReplyMarkup = FormatKeyboard(result.Options)
	if _, err := h.api.Send(offer); err != nil {
		log.Printf("Failed to send format keyboard to chat %d: %v", chatID, err)
	}
}

func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := h.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("Failed to answer callback %s: %v", cb.ID, err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	// Callback data holds the option's position in the offered list. Anything
	// unparseable maps to an out-of-range index and is rejected by the store.
	index, convErr := strconv.Atoi(cb.Data)
	if convErr != nil {
		index = -1
	}

	job, err := h.sessions.ConfirmChoiceAt(chatID, index)
	switch {
	case errors.Is(err, session.ErrNoPendingChoice):
		h.sendText(chatID, ChoiceExpiredText)
	case errors.Is(err, session.ErrUnknownOption):
		h.sendText(chatID, UnknownOptionText)
	case err != nil:
		log.Printf("Choice confirmation failed for chat %d: %v", chatID, err)
	default:
		h.queue.Enqueue(job)
		position := h.queue.Len()
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID,
			fmt.Sprintf("Queued: %s (position %d)", job.GetDisplayTitle(), position))
		if _, err := h.api.Send(edit); err != nil {
			log.Printf("Failed to edit offer message in chat %d: %v", chatID, err)
		}
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}
