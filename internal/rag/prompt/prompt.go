package prompt

import (
	"strings"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

const (
	ContextDelimiter = "\n\n---\n\n"
	NoContext        = "No specific course materials found for this question."
)

const systemTemplate = `You are a helpful, encouraging and knowledgeable university teaching assistant named Campus AI.
You are helping a student with their coursework.

Below is the context extracted from the lecturer's uploaded course materials.
Answer the student's questions using ONLY this context.

COURSE MATERIALS CONTEXT:
{{context}}

RULES:
1. If the answer is in the context, give a clear, easy to understand explanation.
2. If the answer is NOT in the context, politely tell the student that you cannot find the exact answer in the lecturer's notes, then give a helpful, academically accurate general answer anyway.
3. Format the answer in markdown: use headings, bold text and bullet points so it is easy to read.`

// Prompt is what the answering model receives: a system instruction and the conversation.
type Prompt struct {
	System   string
	Messages []commonModels.ChatTurn
}

// Context joins match contents in the order given, or returns NoContext when there are none.
func Context(matches []commonModels.RetrievalMatch) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		parts = append(parts, m.Content)
	}
	if len(parts) == 0 {
		return NoContext
	}
	return strings.Join(parts, ContextDelimiter)
}

// Assemble has no side effects; the same inputs always yield the same prompt.
func Assemble(matches []commonModels.RetrievalMatch, history []commonModels.ChatTurn) Prompt {
	messages := make([]commonModels.ChatTurn, 0, len(history))
	for _, turn := range history {
		if turn.Role == commonModels.RoleSystem || strings.TrimSpace(turn.Text) == "" {
			continue
		}
		messages = append(messages, turn)
	}
	return Prompt{
		System:   strings.Replace(systemTemplate, "{{context}}", Context(matches), 1),
		Messages: messages,
	}
}
