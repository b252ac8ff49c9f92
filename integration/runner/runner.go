package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// DefaultChannel is used for steps that do not name one
const DefaultChannel = "town-square"

// Runner replays scripted games against a running werewolf-agent API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	KeepGames         bool // skip the DELETE after each suite
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 120 * time.Second},
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// a sequence may reference another sequence
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite creates a game, plays every step and checks expectations after each
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gameID, err := CreateGame(ctx, r.Client, r.BaseURL, suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to create game: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.GameID = gameID

	if !r.KeepGames {
		defer func() {
			if err := DeleteGame(context.WithoutCancel(ctx), r.Client, r.BaseURL, gameID); err != nil {
				r.Logger("    Warning: failed to delete game %s: %v", gameID, err)
			}
		}()
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, gameID, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, gameID uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}
	fail := func(err error) TestResult {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	channel := step.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	msg := chat.Message{
		ID:      uuid.New(),
		Sender:  step.Sender,
		Channel: channel,
		Text:    step.Text,
	}

	if step.Respond {
		text, err := Respond(ctx, r.Client, r.BaseURL, gameID, msg)
		if err != nil {
			return fail(fmt.Errorf("failed to get response: %w", err))
		}
		result.ResponseText = text
	} else if err := Notify(ctx, r.Client, r.BaseURL, gameID, msg); err != nil {
		return fail(fmt.Errorf("failed to notify: %w", err))
	}

	view, err := GetGame(ctx, r.Client, r.BaseURL, gameID)
	if err != nil {
		return fail(fmt.Errorf("failed to get game: %w", err))
	}

	if err := checkExpectations(step.Expectations, view, result.ResponseText); err != nil {
		return fail(fmt.Errorf("expectation failed: %w", err))
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkExpectations validates one step's expectations against the game after it ran
func checkExpectations(exp Expectations, view *GameView, responseText string) error {
	gs := view.State
	if gs == nil {
		return fmt.Errorf("game has no state")
	}

	if exp.Round != nil && gs.Round != *exp.Round {
		return fmt.Errorf("expected round %d, got %d", *exp.Round, gs.Round)
	}

	if exp.WolvesLeft != nil && gs.WolvesLeft != *exp.WolvesLeft {
		return fmt.Errorf("expected %d wolves left, got %d", *exp.WolvesLeft, gs.WolvesLeft)
	}

	// order independent
	if len(exp.AlivePlayers) > 0 {
		actual := make(map[string]bool)
		for _, name := range gs.AlivePlayers() {
			actual[strings.ToLower(name)] = true
		}
		for _, name := range exp.AlivePlayers {
			if !actual[strings.ToLower(name)] {
				return fmt.Errorf("expected %s to be alive, alive players are %v", name, gs.AlivePlayers())
			}
		}
		if len(actual) != len(exp.AlivePlayers) {
			return fmt.Errorf("expected alive players %v, got %v", exp.AlivePlayers, gs.AlivePlayers())
		}
	}

	narrative := strings.ToLower(strings.Join(view.Narrative, "\n"))
	for _, want := range exp.NarrativeContains {
		if !strings.Contains(narrative, strings.ToLower(want)) {
			return fmt.Errorf("narrative does not contain %q", want)
		}
	}
	for _, unwanted := range exp.NarrativeNotContains {
		if strings.Contains(narrative, strings.ToLower(unwanted)) {
			return fmt.Errorf("narrative contains unwanted %q", unwanted)
		}
	}

	response := strings.ToLower(responseText)
	for _, want := range exp.ResponseContains {
		if !strings.Contains(response, strings.ToLower(want)) {
			return fmt.Errorf("response does not contain %q: %s", want, responseText)
		}
	}
	for _, unwanted := range exp.ResponseNotContains {
		if strings.Contains(response, strings.ToLower(unwanted)) {
			return fmt.Errorf("response contains unwanted %q: %s", unwanted, responseText)
		}
	}

	if exp.ResponseRegex != "" {
		re, err := regexp.Compile(exp.ResponseRegex)
		if err != nil {
			return fmt.Errorf("invalid response_regex %q: %w", exp.ResponseRegex, err)
		}
		if !re.MatchString(responseText) {
			return fmt.Errorf("response does not match %q: %s", exp.ResponseRegex, responseText)
		}
	}

	if exp.ResponseMinLength != nil && len(responseText) < *exp.ResponseMinLength {
		return fmt.Errorf("response length %d below minimum %d", len(responseText), *exp.ResponseMinLength)
	}
	if exp.ResponseMaxLength != nil && len(responseText) > *exp.ResponseMaxLength {
		return fmt.Errorf("response length %d above maximum %d", len(responseText), *exp.ResponseMaxLength)
	}

	return nil
}
