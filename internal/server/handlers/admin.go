package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/gallery/internal/server/response"
	"github.com/agentstation/gallery/pkg/constants"
)

// HandleReload handles POST /api/v1/reload.
// @Summary Reload collections
// @Description Re-read the data files and thumbnails, then notify live clients of every change
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 500 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.ReloadContextTimeout)
	defer cancel()

	start := time.Now()
	if err := h.gallery.Reload(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Reload failed")
		response.ErrorFromType(w, err)
		return
	}

	summary := h.gallery.Snapshot().Summary()
	response.OK(w, map[string]any{
		"status":      "reloaded",
		"duration_ms": time.Since(start).Milliseconds(),
		"loaded_at":   summary.LoadedAt,
		"collections": summary.Collections,
	})
}

// HandleStats handles GET /api/v1/stats.
// @Summary Server statistics
// @Description Runtime, collection, event, real-time and cache statistics
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Security ApiKeyAuth
// @Router /api/v1/stats [get].
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snap := h.gallery.Snapshot()
	collections := map[string]int{}
	rejected := 0
	for _, k := range snap.Kinds() {
		collections[k.Plural()] = snap.Collection(k).Len()
		rejected += len(snap.Rejected(k))
	}

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"gallery": map[string]any{
			"collections":    collections,
			"rejected_total": rejected,
			"loaded_at":      snap.LoadedAt(),
		},
		"events": map[string]any{
			"published_total": h.broker.EventsPublished(),
			"dropped_total":   h.broker.EventsDropped(),
			"queue_depth":     h.broker.QueueDepth(),
			"subscribers":     h.broker.SubscriberCount(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.sseBroadcaster.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}
