package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/tg-video-bot/internal/model"
)

// Dialogue errors surfaced to the user with a corrective prompt
var (
	// ErrNoPendingChoice means a choice arrived while no format list was pending
	ErrNoPendingChoice = errors.New("no format choice pending for this chat")

	// ErrUnknownOption means the chosen id is not in the pending candidate list
	ErrUnknownOption = errors.New("unknown format option")
)

// Phase is the position of a chat in the URL -> format-selection dialogue
type Phase string

const (
	// PhaseAwaitingURL means the bot expects a video link next
	PhaseAwaitingURL Phase = "AwaitingURL"

	// PhaseAwaitingChoice means a format list was offered and a button press is expected
	PhaseAwaitingChoice Phase = "AwaitingChoice"
)

// conversation holds the state of one chat. Its mutex serializes transitions
// for that chat only; chats never block each other.
type conversation struct {
	mu      sync.Mutex
	phase   Phase
	url     string
	title   string
	options []model.FormatOption
}

// Store keeps one conversation per chat identifier
type Store struct {
	mu    sync.Mutex
	chats map[int64]*conversation
}

// NewStore creates an empty conversation store
func NewStore() *Store {
	return &Store{
		chats: make(map[int64]*conversation),
	}
}

// conversation returns the chat's state, creating it on first contact
func (s *Store) conversation(chatID int64) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.chats[chatID]
	if !exists {
		c = &conversation{phase: PhaseAwaitingURL}
		s.chats[chatID] = c
	}
	return c
}

// Phase returns the chat's current dialogue phase
func (s *Store) Phase(chatID int64) Phase {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Options returns a copy of the chat's pending candidate list
func (s *Store) Options(chatID int64) []model.FormatOption {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()

	options := make([]model.FormatOption, len(c.options))
	copy(options, c.options)
	return options
}

// SetAwaitingChoice stores the probe result and moves the chat to the
// choice phase. A later URL overwrites an unanswered offer; last message wins.
func (s *Store) SetAwaitingChoice(chatID int64, url, title string, options []model.FormatOption) {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseAwaitingChoice
	c.url = url
	c.title = title
	c.options = make([]model.FormatOption, len(options))
	copy(c.options, options)
}

// ConfirmChoice validates the chosen format against the pending list and, on
// success, mints a Pending job and returns the chat to the URL phase. On
// failure the state is left unchanged.
func (s *Store) ConfirmChoice(chatID int64, formatID string) (*model.Job, error) {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAwaitingChoice {
		return nil, ErrNoPendingChoice
	}

	found := false
	for _, option := range c.options {
		if option.ID == formatID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownOption
	}

	return c.confirmLocked(chatID, formatID), nil
}

// ConfirmChoiceAt confirms the pending option at the given list position.
// Keyboards carry positions instead of format selectors because selectors can
// exceed the messaging API's callback payload limit.
func (s *Store) ConfirmChoiceAt(chatID int64, index int) (*model.Job, error) {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAwaitingChoice {
		return nil, ErrNoPendingChoice
	}
	if index < 0 || index >= len(c.options) {
		return nil, ErrUnknownOption
	}

	return c.confirmLocked(chatID, c.options[index].ID), nil
}

// confirmLocked mints the job and returns the chat to the URL phase. The
// caller holds c.mu.
func (c *conversation) confirmLocked(chatID int64, formatID string) *model.Job {
	job := &model.Job{
		ID:         uuid.New().String(),
		ChatID:     chatID,
		URL:        c.url,
		FormatID:   formatID,
		Title:      c.title,
		Status:     model.JobStatusPending,
		EnqueuedAt: time.Now(),
	}

	c.phase = PhaseAwaitingURL
	c.url = ""
	c.title = ""
	c.options = nil

	return job
}

// Reset returns the chat to the URL phase and drops any pending offer
func (s *Store) Reset(chatID int64) {
	c := s.conversation(chatID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseAwaitingURL
	c.url = ""
	c.title = ""
	c.options = nil
}
