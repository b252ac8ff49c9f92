package runner

import (
	"time"

	"github.com/google/uuid"
)

// TestSuite defines a scripted game replayed against the API.
// It is either a regular game with Steps, or a suite that references other Cases.
type TestSuite struct {
	Name      string     `json:"name"`
	AgentName string     `json:"agent_name,omitempty"` // Used for regular tests
	Players   []string   `json:"players,omitempty"`    // Used for regular tests
	WolfCount int        `json:"wolf_count,omitempty"` // Optional, server default otherwise
	Steps     []TestStep `json:"steps,omitempty"`      // Used for regular tests
	Cases     []string   `json:"cases,omitempty"`      // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one message delivered to the agent. Steps with Respond set
// ask for a reply; all others are notifications.
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Sender       string       `json:"sender"`
	Channel      string       `json:"channel,omitempty"`
	Text         string       `json:"text"`
	Respond      bool         `json:"respond,omitempty"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Ledger properties
	Round        *int     `json:"round,omitempty"`
	AlivePlayers []string `json:"alive_players,omitempty"` // order independent
	WolvesLeft   *int     `json:"wolves_left,omitempty"`

	// Narrative sentences, matched case-insensitively as substrings
	NarrativeContains    []string `json:"narrative_contains,omitempty"`
	NarrativeNotContains []string `json:"narrative_not_contains,omitempty"`

	// Response Analysis
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
	ResponseMinLength   *int     `json:"response_min_length,omitempty"`
	ResponseMaxLength   *int     `json:"response_max_length,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	GameID   uuid.UUID // ID of the game used for this test
}
