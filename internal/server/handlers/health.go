package handlers

import (
	"net/http"

	"github.com/agentstation/gallery/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "gallery",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Ready once at least one collection is loaded
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	snap := h.gallery.Snapshot()
	if len(snap.Kinds()) == 0 {
		response.ServiceUnavailable(w, "No collections loaded")
		return
	}

	kinds := make([]string, 0, len(snap.Kinds()))
	for _, k := range snap.Kinds() {
		kinds = append(kinds, k.Plural())
	}
	response.OK(w, map[string]any{
		"status":      "ready",
		"collections": kinds,
		"loaded_at":   snap.LoadedAt(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
