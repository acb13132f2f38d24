package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinemood/internal/llm"
	"cinemood/internal/metrics"
	"cinemood/internal/models"
)

const (
	chatSystemPrompt = "You are a friendly, knowledgeable assistant. " +
		"Answer clearly and concisely, and describe images carefully when one is attached."
	defaultImagePrompt = "What's in this image?"

	// maxContextEntries is the largest message list sent untrimmed.
	maxContextEntries = 20
	// keptEntries is how many trailing entries survive a trim. Must stay even
	// and >= 2 so user/assistant pairs line up.
	keptEntries = 16
)

// ChatService is the stateless chat assistant: every call reloads the
// user's history, bounds it and records the new turn.
type ChatService struct {
	turns TurnStore
	llm   llm.Completer
}

// NewChatService creates a new ChatService.
func NewChatService(turns TurnStore, completer llm.Completer) *ChatService {
	return &ChatService{turns: turns, llm: completer}
}

// NewTurn is the incoming user message. Image is a data URL or empty.
type NewTurn struct {
	Text  string
	Image string
}

// BuildContext assembles the system instruction, the replayed history and the
// new turn, then trims the list to the bounded window.
func BuildContext(history []models.Turn, turn NewTurn) []llm.Message {
	msgs := make([]llm.Message, 0, 2*len(history)+2)
	msgs = append(msgs, llm.SystemMessage(chatSystemPrompt))
	for _, t := range history {
		msgs = append(msgs, llm.UserMessage(t.Prompt), llm.AssistantMessage(t.Reply))
	}

	if turn.Image != "" {
		text := turn.Text
		if text == "" {
			text = defaultImagePrompt
		}
		msgs = append(msgs, llm.UserImageMessage(text, turn.Image))
	} else {
		msgs = append(msgs, llm.UserMessage(turn.Text))
	}

	return boundWindow(msgs)
}

// boundWindow keeps msgs[0] plus the last keptEntries entries once the list
// grows past maxContextEntries. It counts entries, not tokens.
func boundWindow(msgs []llm.Message) []llm.Message {
	if len(msgs) <= maxContextEntries {
		return msgs
	}
	out := make([]llm.Message, 0, 1+keptEntries)
	out = append(out, msgs[0])
	return append(out, msgs[len(msgs)-keptEntries:]...)
}

// Chat answers one message for userID and appends the exchange to history.
// A failed history write is logged; the reply is still returned.
func (s *ChatService) Chat(ctx context.Context, userID string, turn NewTurn) (string, error) {
	turn.Text = strings.TrimSpace(turn.Text)
	if turn.Text == "" && turn.Image == "" {
		return "", invalid("Message or image is required")
	}
	if userID == "" {
		userID = AnonymousUser
	}

	history, err := s.turns.ListTurns(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load chat history: %w", err)
	}

	msgs := BuildContext(history, turn)
	slog.Debug("chat context assembled", "user_id", userID, "history_turns", len(history), "entries", len(msgs))

	reply, err := s.llm.Complete(ctx, llm.Request{
		Operation: "chat",
		Input:     msgs,
		Vision:    turn.Image != "",
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	prompt := turn.Text
	if prompt == "" {
		prompt = defaultImagePrompt
	}
	if err := s.turns.InsertTurn(ctx, models.Turn{UserID: userID, Prompt: prompt, Reply: reply.Text}); err != nil {
		metrics.PersistenceFailures.WithLabelValues("chat_history").Inc()
		slog.Error("failed to save chat turn", "user_id", userID, "error", err)
	}

	return reply.Text, nil
}

// History returns every stored turn for userID, oldest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.Turn, error) {
	turns, err := s.turns.ListTurns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return turns, nil
}
