package convo

import "chat-relay/internal/llm"

// BuildPrompt maps stored history to role-tagged LLM messages with the
// persona prepended as the system message. Records with a role other
// than "user" become assistant turns.
func BuildPrompt(persona string, history []Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	out = append(out, llm.Message{Role: "system", Content: persona})
	for _, m := range history {
		role := RoleAssistant
		if m.Role == RoleUser {
			role = RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
