package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSystemExplicitPromptWins(t *testing.T) {
	params := ChatParams{
		SystemPrompt: "explicit",
		Messages: []Message{
			{Role: RoleSystem, Content: "embedded"},
			{Role: RoleUser, Content: "hi"},
		},
	}

	system, turns := params.SplitSystem()
	assert.Equal(t, "explicit", system)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, turns)
}

func TestSplitSystemJoinsEmbeddedMessages(t *testing.T) {
	params := ChatParams{
		Messages: []Message{
			{Role: RoleSystem, Content: "first"},
			{Role: RoleUser, Content: "hi"},
			{Role: RoleSystem, Content: "second"},
		},
	}

	system, turns := params.SplitSystem()
	assert.Equal(t, "first\n\nsecond", system)
	assert.Len(t, turns, 1)
}

func TestMessagesWithSystemPassThrough(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "embedded"},
		{Role: RoleUser, Content: "hi"},
	}
	params := ChatParams{Messages: messages}

	assert.Equal(t, messages, params.MessagesWithSystem())
}

func TestMessagesWithSystemRestoresExplicitPrompt(t *testing.T) {
	params := ChatParams{
		SystemPrompt: "explicit",
		Messages: []Message{
			{Role: RoleSystem, Content: "dropped"},
			{Role: RoleUser, Content: "hi"},
		},
	}

	got := params.MessagesWithSystem()
	assert.Equal(t, []Message{
		{Role: RoleSystem, Content: "explicit"},
		{Role: RoleUser, Content: "hi"},
	}, got)
}
