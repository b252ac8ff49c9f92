package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/werewolf-agent/internal/agent"
	"github.com/jwebster45206/werewolf-agent/pkg/chat"
	"github.com/jwebster45206/werewolf-agent/pkg/session"
	"github.com/jwebster45206/werewolf-agent/pkg/state"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateGameRequest defines the request body for creating a new game
type CreateGameRequest struct {
	AgentName   string   `json:"agent_name"`            // Required: the name this agent plays under
	Description string   `json:"description,omitempty"` // Optional: free text from the host
	Players     []string `json:"players"`               // Required: the full roster, including the agent
	WolfCount   int      `json:"wolf_count,omitempty"`  // Optional: defaults to the server setting
}

type CreateGameResponse struct {
	GameID uuid.UUID `json:"game_id"`
}

type GameResponse struct {
	GameID      uuid.UUID        `json:"game_id"`
	AgentName   string           `json:"agent_name"`
	Description string           `json:"description,omitempty"`
	Policy      string           `json:"policy"`
	State       *state.GameState `json:"state"`
	Narrative   []string         `json:"narrative"`
}

type GamesHandler struct {
	manager *agent.Manager
	logger  *slog.Logger
}

func NewGamesHandler(manager *agent.Manager, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		manager: manager,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests from the host game runner
// Routes:
// POST /v1/games              - Create a new game
// GET /v1/games/{id}          - Read the agent's view of a game
// DELETE /v1/games/{id}       - Delete a game
// POST /v1/games/{id}/notify  - Deliver a message that needs no reply
// POST /v1/games/{id}/respond - Deliver a message and get the agent's reply
func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	gameID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", parts[0], "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid game ID format")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, gameID)
		case http.MethodDelete:
			h.handleDelete(w, r, gameID)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	if len(parts) != 2 || (parts[1] != "notify" && parts[1] != "respond") {
		h.writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	msg, ok := h.decodeMessage(w, r)
	if !ok {
		return
	}
	if parts[1] == "notify" {
		h.handleNotify(w, r, gameID, msg)
	} else {
		h.handleRespond(w, r, gameID, msg)
	}
}

func (h *GamesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("Invalid create request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'agent_name' and 'players' fields.")
		return
	}

	req.AgentName = strings.TrimSpace(req.AgentName)
	if req.AgentName == "" {
		h.writeError(w, http.StatusBadRequest, "agent_name is required")
		return
	}
	if len(req.Players) == 0 {
		h.writeError(w, http.StatusBadRequest, "players is required")
		return
	}
	if req.WolfCount < 0 {
		h.writeError(w, http.StatusBadRequest, "wolf_count cannot be negative")
		return
	}

	id, err := h.manager.Create(r.Context(), agent.CreateRequest{
		AgentName:   req.AgentName,
		Description: req.Description,
		Players:     req.Players,
		WolfCount:   req.WolfCount,
	})
	if err != nil {
		if errors.Is(err, state.ErrInvalidRoster) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create game", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create game")
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateGameResponse{GameID: id})
}

func (h *GamesHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	a, ok := h.lookup(w, r, id)
	if !ok {
		return
	}

	// Encode while locked so the ledger cannot change underneath.
	var body []byte
	err := a.View(func(s *session.Session) error {
		var err error
		body, err = json.Marshal(GameResponse{
			GameID:      s.ID,
			AgentName:   s.AgentName,
			Description: s.Description,
			Policy:      s.Policy,
			State:       s.GameState,
			Narrative:   state.Narrate(s.GameState),
		})
		return err
	})
	if err != nil {
		h.logger.Error("Failed to encode game", "game_id", id.String(), "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *GamesHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.manager.Delete(r.Context(), id); err != nil {
		h.managerError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GamesHandler) handleNotify(w http.ResponseWriter, r *http.Request, id uuid.UUID, msg chat.Message) {
	if err := h.manager.Notify(r.Context(), id, msg); err != nil {
		h.managerError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *GamesHandler) handleRespond(w http.ResponseWriter, r *http.Request, id uuid.UUID, msg chat.Message) {
	reply, err := h.manager.Respond(r.Context(), id, msg)
	if err != nil {
		h.managerError(w, id, err)
		return
	}
	h.writeJSON(w, http.StatusOK, chat.Response{Text: reply})
}

func (h *GamesHandler) decodeMessage(w http.ResponseWriter, r *http.Request) (chat.Message, bool) {
	var msg chat.Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
		h.logger.Warn("Invalid message body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'sender', 'channel' and 'text' fields.")
		return msg, false
	}
	if err := msg.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return msg, false
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	return msg, true
}

func (h *GamesHandler) lookup(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*agent.Agent, bool) {
	a, err := h.manager.Get(r.Context(), id)
	if err != nil {
		h.managerError(w, id, err)
		return nil, false
	}
	return a, true
}

func (h *GamesHandler) managerError(w http.ResponseWriter, id uuid.UUID, err error) {
	if errors.Is(err, agent.ErrGameNotFound) {
		h.writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	h.logger.Error("Game request failed", "game_id", id.String(), "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *GamesHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}

func (h *GamesHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
