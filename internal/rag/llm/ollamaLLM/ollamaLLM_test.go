package ollamaLLM

import (
	"testing"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/tmc/langchaingo/llms"
)

func TestToMessagesPutsSystemFirst(t *testing.T) {
	messages := toMessages(prompt.Prompt{
		System: "be helpful",
		Messages: []commonModels.ChatTurn{
			{Role: commonModels.RoleUser, Text: "q"},
			{Role: commonModels.RoleAssistant, Text: "a"},
		},
	})

	want := []llms.ChatMessageType{llms.ChatMessageTypeSystem, llms.ChatMessageTypeHuman, llms.ChatMessageTypeAI}
	if len(messages) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(messages))
	}
	for i, m := range messages {
		if m.Role != want[i] {
			t.Errorf("message %d role = %s; want %s", i, m.Role, want[i])
		}
	}
}
