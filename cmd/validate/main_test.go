package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCase(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  []string
	}{
		{
			name:     "valid case",
			filename: "night_kill.json",
			content: `{"name": "kill", "agent_name": "Fred", "players": ["Alice", "Bob", "Fred"], "wolf_count": 1,
				"steps": [
					{"sender": "moderator", "text": "Bob died.", "expect": {"alive_players": ["Alice", "Fred"], "wolves_left": 1}},
					{"sender": "alice", "text": "Fred?", "respond": true, "expect": {"response_regex": "\\w+", "response_min_length": 1}}
				]}`,
		},
		{
			name:     "valid sequence",
			filename: "all.json",
			content:  `{"name": "all", "cases": ["night_kill.json"]}`,
		},
		{
			name:     "bad filename",
			filename: "Night-Kill.json",
			content:  `{}`,
			wantErr:  []string{"lowercase snake_case"},
		},
		{
			name:     "invalid json",
			filename: "broken.json",
			content:  `{"name": `,
			wantErr:  []string{"invalid JSON"},
		},
		{
			name:     "unknown field",
			filename: "extra.json",
			content:  `{"name": "x", "scenario": "pirate.json"}`,
			wantErr:  []string{"strict JSON"},
		},
		{
			name:     "missing sequence case",
			filename: "seq.json",
			content:  `{"name": "seq", "cases": ["nope.json"]}`,
			wantErr:  []string{"referenced case 'nope.json' not found"},
		},
		{
			name:     "duplicate players",
			filename: "dupes.json",
			content:  `{"name": "d", "agent_name": "Fred", "players": ["Fred", "fred"], "steps": [{"sender": "moderator", "text": "hi"}]}`,
			wantErr:  []string{"invalid roster"},
		},
		{
			name:     "step problems",
			filename: "problems.json",
			content: `{"name": "p", "agent_name": "Zed", "players": ["Alice", "Fred"], "wolf_count": 2,
				"steps": [
					{"sender": "Mallory", "text": " ", "expect": {"alive_players": ["Bob"], "wolves_left": 5, "response_contains": ["x"]}},
					{"name": "lengths", "sender": "moderator", "text": "go", "respond": true, "expect": {"response_regex": "(", "response_min_length": 9, "response_max_length": 1}}
				]}`,
			wantErr: []string{
				"agent_name 'Zed' is not in players",
				"wolf_count 2 leaves no villagers",
				"step 1 has no text",
				"sender 'Mallory' is neither the moderator nor a player",
				"unknown player 'Bob'",
				"expects 5 wolves left",
				"checks the response but does not set respond",
				"step 2 (lengths) has invalid response_regex",
				"response_min_length 9 exceeds response_max_length 1",
			},
		},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCase(t, dir, tt.filename, tt.content)

			err := (&CaseValidator{}).validateFile(path)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidateFile_Cases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "integration", "cases", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		assert.NoError(t, (&CaseValidator{}).validateFile(f), f)
	}
}

func TestIsValidCaseFilename(t *testing.T) {
	assert.True(t, isValidCaseFilename("night_kill"))
	assert.True(t, isValidCaseFilename("x.draft_case"))
	assert.True(t, isValidCaseFilename("a"))
	assert.False(t, isValidCaseFilename("NightKill"))
	assert.False(t, isValidCaseFilename("night-kill"))
	assert.False(t, isValidCaseFilename("night_"))
}
