package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"cinemood/internal/llm"
	"cinemood/internal/models"
)

func history(n int) []models.Turn {
	out := make([]models.Turn, n)
	for i := range out {
		out[i] = models.Turn{Prompt: fmt.Sprintf("q%d", i), Reply: fmt.Sprintf("a%d", i)}
	}
	return out
}

// unbounded assembles the context without trimming.
func unbounded(h []models.Turn, text string) []llm.Message {
	msgs := []llm.Message{llm.SystemMessage(chatSystemPrompt)}
	for _, t := range h {
		msgs = append(msgs, llm.UserMessage(t.Prompt), llm.AssistantMessage(t.Reply))
	}
	return append(msgs, llm.UserMessage(text))
}

func TestBuildContextNoHistory(t *testing.T) {
	msgs := BuildContext(nil, NewTurn{Text: "hello"})
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser || msgs[1].Text() != "hello" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestBuildContextWindow(t *testing.T) {
	for n := 0; n <= 15; n++ {
		t.Run(fmt.Sprintf("turns=%d", n), func(t *testing.T) {
			h := history(n)
			full := unbounded(h, "now")
			got := BuildContext(h, NewTurn{Text: "now"})

			if len(full) <= maxContextEntries {
				if !reflect.DeepEqual(got, full) {
					t.Fatalf("expected untrimmed context of %d entries, got %d", len(full), len(got))
				}
				return
			}
			if len(got) != 1+keptEntries {
				t.Fatalf("len = %d, want %d", len(got), 1+keptEntries)
			}
			if got[0].Role != llm.RoleSystem {
				t.Errorf("first entry role = %s, want system", got[0].Role)
			}
			if !reflect.DeepEqual(got[1:], full[len(full)-keptEntries:]) {
				t.Errorf("trimmed window does not match the trailing entries")
			}
		})
	}
}

func TestBuildContextExactlyTwentyUntouched(t *testing.T) {
	// 1 system + 9 pairs + 1 new message = 20 entries.
	got := BuildContext(history(9), NewTurn{Text: "x"})
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
}

func TestBuildContextImage(t *testing.T) {
	msgs := BuildContext(nil, NewTurn{Image: "data:image/png;base64,AAAA"})
	last := msgs[len(msgs)-1]
	if !last.HasImage() {
		t.Fatal("expected image part on the new user message")
	}
	if last.Text() != defaultImagePrompt {
		t.Errorf("text = %q, want default image prompt", last.Text())
	}
}

func TestChat(t *testing.T) {
	turns := &fakeTurns{turns: history(2)}
	llmFake := &fakeCompleter{replies: map[string]string{"chat": "hi there"}}
	svc := NewChatService(turns, llmFake)

	reply, err := svc.Chat(context.Background(), "", NewTurn{Text: "  hello "})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q", reply)
	}
	if len(llmFake.calls) != 1 || len(llmFake.calls[0].Input) != 6 || llmFake.calls[0].Vision {
		t.Errorf("unexpected completion request: %+v", llmFake.calls)
	}
	if len(turns.inserted) != 1 {
		t.Fatalf("inserted %d turns, want 1", len(turns.inserted))
	}
	got := turns.inserted[0]
	if got.UserID != AnonymousUser || got.Prompt != "hello" || got.Reply != "hi there" {
		t.Errorf("inserted turn = %+v", got)
	}
}

func TestChatImageUsesVision(t *testing.T) {
	turns := &fakeTurns{}
	llmFake := &fakeCompleter{replies: map[string]string{"chat": "a cat"}}
	svc := NewChatService(turns, llmFake)

	if _, err := svc.Chat(context.Background(), "u1", NewTurn{Image: "data:image/jpeg;base64,AAAA"}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !llmFake.calls[0].Vision {
		t.Error("expected vision request")
	}
	if turns.inserted[0].Prompt != defaultImagePrompt {
		t.Errorf("stored prompt = %q", turns.inserted[0].Prompt)
	}
}

func TestChatRejectsEmpty(t *testing.T) {
	turns := &fakeTurns{}
	llmFake := &fakeCompleter{}
	svc := NewChatService(turns, llmFake)

	_, err := svc.Chat(context.Background(), "u1", NewTurn{Text: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(llmFake.calls) != 0 {
		t.Error("language model must not be called")
	}
}

func TestChatPersistFailureStillReplies(t *testing.T) {
	turns := &fakeTurns{insertErr: errors.New("db down")}
	svc := NewChatService(turns, &fakeCompleter{replies: map[string]string{"chat": "ok"}})

	reply, err := svc.Chat(context.Background(), "u1", NewTurn{Text: "hi"})
	if err != nil || reply != "ok" {
		t.Fatalf("Chat = %q, %v", reply, err)
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name  string
		turns *fakeTurns
		llm   *fakeCompleter
	}{
		{"history read fails", &fakeTurns{listErr: errors.New("db down")}, &fakeCompleter{}},
		{"completion fails", &fakeTurns{}, &fakeCompleter{err: llm.ErrNotConfigured}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewChatService(tt.turns, tt.llm)
			if _, err := svc.Chat(context.Background(), "u1", NewTurn{Text: "hi"}); err == nil {
				t.Fatal("expected error")
			}
			if len(tt.turns.inserted) != 0 {
				t.Error("no turn should be stored")
			}
		})
	}
}
