package handlers

import (
	"net/http"

	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/internal/server/response"
	"github.com/agentstation/gallery/pkg/errors"
)

// HandleListEntries handles GET /api/v1/{kind}.
// @Summary List entries
// @Description Accepted entries of one collection, in file order
// @Tags entries
// @Produce json
// @Param kind path string true "models, datasources or projects"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/{kind} [get].
func (h *Handlers) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	k, err := kind(r.PathValue("kind"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	cacheKey := "entries:" + k.String()
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	snap := h.gallery.Snapshot()
	entries := snap.Collection(k).Entries()
	result := map[string]any{
		"kind":     k,
		"entries":  entries,
		"count":    len(entries),
		"rejected": len(snap.Rejected(k)),
	}
	h.cache.Set(cacheKey, result)
	response.OK(w, result)
}

// HandleGetEntry handles GET /api/v1/{kind}/{name}.
// @Summary Get entry
// @Description One accepted entry by name
// @Tags entries
// @Produce json
// @Param kind path string true "models, datasources or projects"
// @Param name path string true "Entry name"
// @Success 200 {object} response.Response{data=catalogs.Entry}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/{kind}/{name} [get].
func (h *Handlers) HandleGetEntry(w http.ResponseWriter, r *http.Request) {
	k, err := kind(r.PathValue("kind"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	name := r.PathValue("name")

	entry, ok := h.gallery.Snapshot().Collection(k).Lookup(name)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError(k.String(), name))
		return
	}
	response.OK(w, entry)
}

// HandleRejected handles GET /api/v1/rejected/{kind}.
// @Summary Rejected records
// @Description Records of one collection that failed validation, with every field error
// @Tags entries
// @Produce json
// @Param kind path string true "models, datasources or projects"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/rejected/{kind} [get].
func (h *Handlers) HandleRejected(w http.ResponseWriter, r *http.Request) {
	k, err := kind(r.PathValue("kind"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	snap := h.gallery.Snapshot()
	rejected := snap.Rejected(k)
	if rejected == nil {
		rejected = []loader.Rejected{}
	}
	response.OK(w, map[string]any{
		"kind":     k,
		"source":   snap.Source(k),
		"rejected": rejected,
	})
}
