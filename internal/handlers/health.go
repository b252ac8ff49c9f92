package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/werewolf-agent/internal/storage"
)

const storagePingTimeout = 2 * time.Second

type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Service     string            `json:"service"`
	Model       string            `json:"model"`
	ActiveGames int               `json:"active_games"`
	Components  map[string]string `json:"components"`
}

// GameCounter reports how many games are loaded.
type GameCounter interface {
	ActiveGames() int
}

type HealthHandler struct {
	store     storage.Store
	games     GameCounter
	modelName string
	logger    *slog.Logger
}

func NewHealthHandler(store storage.Store, games GameCounter, modelName string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		games:     games,
		modelName: modelName,
		logger:    logger,
	}
}

// ServeHTTP reports 200 while storage answers a ping and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storagePingTimeout)
	defer cancel()

	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Service:    "werewolf-agent",
		Model:      h.modelName,
		Components: map[string]string{"storage": "healthy"},
	}
	if h.games != nil {
		response.ActiveGames = h.games.ActiveGames()
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		response.Components["storage"] = "unhealthy"
		response.Status = "degraded"
	}

	statusCode := http.StatusOK
	if response.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response", "error", err)
	}
}

func (h *HealthHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Error encoding error response", "error", err)
	}
}
