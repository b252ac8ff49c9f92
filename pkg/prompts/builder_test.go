package prompts

import (
	"strings"
	"testing"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

func testMessage() chat.Message {
	return chat.Message{Sender: "Alice", Channel: "play-arena", Text: "Who do you vote for?"}
}

func TestNew(t *testing.T) {
	builder := New()
	if builder == nil {
		t.Fatal("Expected builder to be created, got nil")
	}
	if builder.messages == nil {
		t.Error("Expected messages slice to be initialized")
	}
}

func TestBuilder_FluentInterface(t *testing.T) {
	gs, err := state.NewGameState([]string{"Alice", "Bob"}, 1)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}

	builder := New().
		WithSystemPrompt("system").
		WithGameState(gs).
		WithInboundMessage(testMessage())

	if builder.systemPrompt != "system" {
		t.Error("WithSystemPrompt did not set prompt")
	}
	if builder.gs != gs {
		t.Error("WithGameState did not set gamestate")
	}
	if builder.inbound == nil || builder.inbound.Sender != "Alice" {
		t.Error("WithInboundMessage did not set message")
	}
}

func TestBuilder_Build_Requirements(t *testing.T) {
	if _, err := New().WithInboundMessage(testMessage()).Build(); err == nil || err.Error() != "system prompt is required" {
		t.Errorf("Expected 'system prompt is required' error, got: %v", err)
	}
	if _, err := New().WithSystemPrompt("system").Build(); err == nil || err.Error() != "inbound message is required" {
		t.Errorf("Expected 'inbound message is required' error, got: %v", err)
	}
}

func TestBuilder_Build_Order(t *testing.T) {
	gs, err := state.NewGameState([]string{"Alice", "Bob", "Charlie"}, 2)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	if err := gs.RecordLynch("Alice", state.RoleSeer); err != nil {
		t.Fatalf("RecordLynch: %v", err)
	}

	messages, err := BuildMessages("You are Fred.", gs, testMessage())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(messages))
	}

	if messages[0].Role != chat.ChatRoleSystem || messages[0].Content != "You are Fred." {
		t.Errorf("Unexpected system prompt message: %+v", messages[0])
	}
	if !strings.HasPrefix(messages[1].Content, GameSummaryHeader) {
		t.Errorf("Expected game summary second, got %q", messages[1].Content)
	}
	if !strings.Contains(messages[1].Content, "The seer was confirmed dead.") {
		t.Errorf("Game summary missing lynch outcome: %q", messages[1].Content)
	}
	if messages[2].Content != SuspicionDetectionPrompt {
		t.Errorf("Expected suspicion instructions third, got %q", messages[2].Content)
	}
	want := "[From - Alice| play-arena]: Who do you vote for?"
	if messages[3].Role != chat.ChatRoleUser || messages[3].Content != want {
		t.Errorf("Expected inbound message %q, got %+v", want, messages[3])
	}
}

func TestBuilder_Build_WithoutGameState(t *testing.T) {
	messages, err := BuildMessages("You are Fred.", nil, testMessage())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected summary to be skipped, got %d messages", len(messages))
	}
}

func TestClassifierMessages(t *testing.T) {
	mod := ClassifierMessages(true, "Bob was killed last night.")
	if len(mod) != 1 || mod[0].Role != chat.ChatRoleSystem {
		t.Fatalf("Expected one system message, got %+v", mod)
	}
	if !strings.Contains(mod[0].Content, "Input: Bob was killed last night.") {
		t.Error("Moderator message was not substituted")
	}
	if !strings.Contains(mod[0].Content, "record_night_phase_death") {
		t.Error("Expected moderator vocabulary")
	}

	usr := ClassifierMessages(false, "I am the seer.")
	if !strings.Contains(usr[0].Content, "Input: I am the seer.") {
		t.Error("Player message was not substituted")
	}
	if !strings.Contains(usr[0].Content, "Suspicious Behavior Detection Rules") {
		t.Error("Expected player vocabulary with suspicion rules")
	}
}
