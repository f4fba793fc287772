package convo

import (
	"context"
	"testing"

	"chat-relay/internal/llm"
	"chat-relay/internal/users"
)

type memStore struct{ msgs []Message }

func (m *memStore) Append(_ context.Context, msg Message) error {
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memStore) History(_ context.Context, userID int64) ([]Message, error) {
	var out []Message
	for _, msg := range m.msgs {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type memUserRepo struct{ ids map[int64]bool }

func (m *memUserRepo) Exists(_ context.Context, id int64) (bool, error) { return m.ids[id], nil }
func (m *memUserRepo) Create(_ context.Context, u users.User) error {
	m.ids[u.ID] = true
	return nil
}

type fakeLLM struct {
	resp llm.Response
	err  error
	got  []llm.Message
}

func (f *fakeLLM) Generate(_ context.Context, msgs []llm.Message) (llm.Response, error) {
	f.got = msgs
	return f.resp, f.err
}

func TestReplyAppendsUserAndAssistant(t *testing.T) {
	store := &memStore{}
	userSvc := users.NewService(&memUserRepo{ids: map[int64]bool{42: true}})
	fl := &fakeLLM{resp: llm.Response{Content: "Paris", Model: "test-model"}}
	r := NewResponder(userSvc, store, fl, "")

	resp, registered, err := r.Reply(context.Background(), 42, "alice", "What is the capital of France?")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if !registered {
		t.Fatalf("registered user reported as unregistered")
	}
	if resp.Content != "Paris" {
		t.Fatalf("unexpected reply: %q", resp.Content)
	}

	if len(store.msgs) != 2 {
		t.Fatalf("want 2 records, got %d", len(store.msgs))
	}
	if store.msgs[0].Role != RoleUser || store.msgs[0].Content != "What is the capital of France?" {
		t.Fatalf("unexpected user record: %+v", store.msgs[0])
	}
	if store.msgs[1].Role != RoleAssistant || store.msgs[1].Content != "Paris" {
		t.Fatalf("unexpected assistant record: %+v", store.msgs[1])
	}
	if store.msgs[0].UserID != 42 || store.msgs[0].Username != "alice" {
		t.Fatalf("history not keyed by user id: %+v", store.msgs[0])
	}
}

func TestReplyBuildsPromptWithPersona(t *testing.T) {
	store := &memStore{msgs: []Message{
		{UserID: 7, Role: RoleUser, Content: "hi"},
		{UserID: 7, Role: RoleAssistant, Content: "hello"},
	}}
	userSvc := users.NewService(&memUserRepo{ids: map[int64]bool{7: true}})
	fl := &fakeLLM{resp: llm.Response{Content: "ok"}}
	r := NewResponder(userSvc, store, fl, "")

	if _, _, err := r.Reply(context.Background(), 7, "bob", "again"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	// system + 2 prior turns + the new question
	if len(fl.got) != 4 {
		t.Fatalf("want 4 prompt messages, got %d", len(fl.got))
	}
	if fl.got[0].Role != "system" || fl.got[0].Content != DefaultPersona {
		t.Fatalf("persona not first: %+v", fl.got[0])
	}
	if fl.got[1].Role != RoleUser || fl.got[2].Role != RoleAssistant || fl.got[3].Role != RoleUser {
		t.Fatalf("roles not mapped: %+v", fl.got[1:])
	}
}

func TestReplyUnregisteredWritesNothing(t *testing.T) {
	store := &memStore{}
	userSvc := users.NewService(&memUserRepo{ids: map[int64]bool{}})
	fl := &fakeLLM{resp: llm.Response{Content: "should not be called"}}
	r := NewResponder(userSvc, store, fl, "")

	resp, registered, err := r.Reply(context.Background(), 99, "mallory", "hello")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if registered {
		t.Fatalf("unregistered user reported as registered")
	}
	if resp.Content != NotRegisteredReply {
		t.Fatalf("unexpected reply: %q", resp.Content)
	}
	if len(store.msgs) != 0 {
		t.Fatalf("store received %d writes, want 0", len(store.msgs))
	}
	if fl.got != nil {
		t.Fatalf("llm called for unregistered user")
	}
}

func TestReplyRegisteredEvenIfReplyMatchesOnboardingText(t *testing.T) {
	store := &memStore{}
	userSvc := users.NewService(&memUserRepo{ids: map[int64]bool{42: true}})
	fl := &fakeLLM{resp: llm.Response{Content: NotRegisteredReply, Model: "test-model"}}
	r := NewResponder(userSvc, store, fl, "")

	_, registered, err := r.Reply(context.Background(), 42, "alice", "echo the login text")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if !registered {
		t.Fatalf("turn outcome must not depend on the reply text")
	}
	if len(store.msgs) != 2 {
		t.Fatalf("want 2 records, got %d", len(store.msgs))
	}
}
