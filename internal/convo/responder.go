package convo

import (
	"context"
	"fmt"
	"time"

	"chat-relay/internal/llm"
	"chat-relay/internal/users"
)

// Responder runs one conversation turn: persist the question, feed the
// accumulated history to the LLM and persist the reply.
type Responder struct {
	users     *users.Service
	store     Store
	llmClient llm.Client
	persona   string
}

func NewResponder(userSvc *users.Service, store Store, llmClient llm.Client, persona string) *Responder {
	if persona == "" {
		persona = DefaultPersona
	}
	return &Responder{users: userSvc, store: store, llmClient: llmClient, persona: persona}
}

// Reply answers one user question. The returned bool reports whether a
// turn actually ran: unregistered senders get the fixed onboarding reply
// with registered=false and nothing is written. The question append is
// not rolled back if the completion call fails afterwards.
func (r *Responder) Reply(ctx context.Context, userID int64, username, question string) (llm.Response, bool, error) {
	ok, err := r.users.IsRegistered(ctx, userID)
	if err != nil {
		return llm.Response{}, false, err
	}
	if !ok {
		return llm.Response{Content: NotRegisteredReply}, false, nil
	}

	if err := r.store.Append(ctx, Message{
		UserID:    userID,
		Username:  username,
		Role:      RoleUser,
		Content:   question,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return llm.Response{}, true, fmt.Errorf("append question: %w", err)
	}

	history, err := r.store.History(ctx, userID)
	if err != nil {
		return llm.Response{}, true, fmt.Errorf("load history: %w", err)
	}

	resp, err := r.llmClient.Generate(ctx, BuildPrompt(r.persona, history))
	if err != nil {
		return llm.Response{}, true, fmt.Errorf("generate reply: %w", err)
	}

	if err := r.store.Append(ctx, Message{
		UserID:    userID,
		Username:  username,
		Role:      RoleAssistant,
		Content:   resp.Content,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return llm.Response{}, true, fmt.Errorf("append reply: %w", err)
	}

	return resp, true, nil
}
