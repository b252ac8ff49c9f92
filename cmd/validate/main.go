package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/werewolf-agent/integration/runner"
	"github.com/jwebster45206/werewolf-agent/pkg/actions"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <case.json> [case.json...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &CaseValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

// CaseValidator checks integration case files before they are replayed against a server
type CaseValidator struct {
	errors []string
}

func (v *CaseValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("case file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidCaseFilename(nameWithoutExt) {
		return fmt.Errorf("case filename '%s' must be lowercase snake_case (e.g., night_kill.json, not night-kill.json or NightKill.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var suite runner.TestSuite
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&suite); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateSuite(&suite, filepath.Dir(filename))

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *CaseValidator) validateSuite(suite *runner.TestSuite, dir string) {
	if suite.Name == "" {
		v.addError("suite has no name")
	}

	if suite.IsSequence() {
		if len(suite.Steps) > 0 {
			v.addError("a sequence must not also define steps")
		}
		for _, c := range suite.Cases {
			if _, err := os.Stat(filepath.Join(dir, c)); err != nil {
				v.addError(fmt.Sprintf("referenced case '%s' not found", c))
			}
		}
		return
	}

	gs, err := state.NewGameState(suite.Players, suite.WolfCount)
	if err != nil {
		v.addError(fmt.Sprintf("players: %v", err))
		return
	}
	if suite.AgentName == "" {
		v.addError("agent_name is required")
	} else if !gs.HasPlayer(suite.AgentName) {
		v.addError(fmt.Sprintf("agent_name '%s' is not in players", suite.AgentName))
	}
	if suite.WolfCount >= len(suite.Players) {
		v.addError(fmt.Sprintf("wolf_count %d leaves no villagers among %d players", suite.WolfCount, len(suite.Players)))
	}
	if len(suite.Steps) == 0 {
		v.addError("suite has no steps")
	}

	for i, step := range suite.Steps {
		v.validateStep(gs, i, &step)
	}
}

func (v *CaseValidator) validateStep(gs *state.GameState, i int, step *runner.TestStep) {
	label := fmt.Sprintf("step %d", i+1)
	if step.Name != "" {
		label = fmt.Sprintf("step %d (%s)", i+1, step.Name)
	}

	if strings.TrimSpace(step.Text) == "" {
		v.addError(label + " has no text")
	}
	if step.Sender == "" {
		v.addError(label + " has no sender")
	} else if !actions.IsModerator(step.Sender) && !gs.HasPlayer(step.Sender) {
		v.addError(fmt.Sprintf("%s sender '%s' is neither the moderator nor a player", label, step.Sender))
	}

	exp := step.Expectations
	for _, name := range exp.AlivePlayers {
		if !gs.HasPlayer(name) {
			v.addError(fmt.Sprintf("%s expects unknown player '%s' to be alive", label, name))
		}
	}
	if exp.WolvesLeft != nil && (*exp.WolvesLeft < 0 || *exp.WolvesLeft > gs.WolfCount) {
		v.addError(fmt.Sprintf("%s expects %d wolves left out of %d", label, *exp.WolvesLeft, gs.WolfCount))
	}
	if exp.Round != nil && *exp.Round < 0 {
		v.addError(fmt.Sprintf("%s expects negative round %d", label, *exp.Round))
	}

	hasResponseChecks := len(exp.ResponseContains) > 0 || len(exp.ResponseNotContains) > 0 ||
		exp.ResponseRegex != "" || exp.ResponseMinLength != nil || exp.ResponseMaxLength != nil
	if hasResponseChecks && !step.Respond {
		v.addError(label + " checks the response but does not set respond")
	}
	if exp.ResponseRegex != "" {
		if _, err := regexp.Compile(exp.ResponseRegex); err != nil {
			v.addError(fmt.Sprintf("%s has invalid response_regex: %v", label, err))
		}
	}
	if exp.ResponseMinLength != nil && exp.ResponseMaxLength != nil && *exp.ResponseMinLength > *exp.ResponseMaxLength {
		v.addError(fmt.Sprintf("%s response_min_length %d exceeds response_max_length %d", label, *exp.ResponseMinLength, *exp.ResponseMaxLength))
	}
}

func (v *CaseValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidCaseFilename(name string) bool {
	// Allow 'x.' prefix for experimental cases
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
