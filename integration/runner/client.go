package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

// GameView is the API's view of one game.
type GameView struct {
	GameID    uuid.UUID        `json:"game_id"`
	AgentName string           `json:"agent_name"`
	State     *state.GameState `json:"state"`
	Narrative []string         `json:"narrative"`
}

func doJSON(ctx context.Context, client *http.Client, method, url string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %s request: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s returned %d (expected %d): %s", method, url, resp.StatusCode, wantStatus, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateGame starts a game for the suite and returns its ID
func CreateGame(ctx context.Context, client *http.Client, baseURL string, suite TestSuite) (uuid.UUID, error) {
	body := map[string]any{
		"agent_name": suite.AgentName,
		"players":    suite.Players,
	}
	if suite.WolfCount > 0 {
		body["wolf_count"] = suite.WolfCount
	}

	var created struct {
		GameID uuid.UUID `json:"game_id"`
	}
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/v1/games", body, http.StatusCreated, &created); err != nil {
		return uuid.Nil, err
	}
	return created.GameID, nil
}

// Notify delivers a message that needs no reply
func Notify(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID, msg chat.Message) error {
	return doJSON(ctx, client, http.MethodPost, baseURL+"/v1/games/"+gameID.String()+"/notify", msg, http.StatusAccepted, nil)
}

// Respond delivers a message and returns the agent's reply
func Respond(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID, msg chat.Message) (string, error) {
	var resp chat.Response
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/v1/games/"+gameID.String()+"/respond", msg, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GetGame retrieves the current ledger and narrative
func GetGame(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID) (*GameView, error) {
	var view GameView
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/v1/games/"+gameID.String(), nil, http.StatusOK, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// DeleteGame removes the game after a run
func DeleteGame(ctx context.Context, client *http.Client, baseURL string, gameID uuid.UUID) error {
	return doJSON(ctx, client, http.MethodDelete, baseURL+"/v1/games/"+gameID.String(), nil, http.StatusNoContent, nil)
}
