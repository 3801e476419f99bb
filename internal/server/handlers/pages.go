package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/agentstation/gallery/internal/server/cache"
	"github.com/agentstation/gallery/internal/site"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

const htmlContentType = "text/html; charset=utf-8"

// HandleIndex handles GET /.
// @Summary Gallery index
// @Description Landing page listing every loaded collection
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get].
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, func(out io.Writer) error {
		return site.WriteIndex(out, h.gallery.Snapshot(), h.basePath)
	})
}

// HandleGrid handles GET /{kind}-grid.
// @Summary Collection grid
// @Description Thumbnail grid of one collection in file order
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /model-grid [get].
func (h *Handlers) HandleGrid(w http.ResponseWriter, r *http.Request, k catalogs.Kind) {
	h.servePage(w, r, func(out io.Writer) error {
		return site.WriteGrid(out, h.gallery.Snapshot(), k, h.basePath)
	})
}

// HandleDetail handles GET /{kind}/{name}.
// @Summary Entry detail
// @Description Detail page of one entry
// @Tags pages
// @Produce html
// @Param name path string true "Entry name"
// @Success 200 {string} string "HTML page"
// @Failure 404 {string} string "Unknown entry"
// @Router /model/{name} [get].
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request, k catalogs.Kind, name string) {
	h.servePage(w, r, func(out io.Writer) error {
		return site.WriteDetail(out, h.gallery.Snapshot(), k, name, h.basePath)
	})
}

// servePage renders through the page cache, keyed by request path. The
// cache is cleared on every reload.
func (h *Handlers) servePage(w http.ResponseWriter, r *http.Request, write func(io.Writer) error) {
	key := "page:" + r.URL.Path
	if page, ok := h.cache.GetPage(key); ok {
		writeHTML(w, page)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Page render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := cache.Page{ContentType: htmlContentType, Body: buf.Bytes()}
	h.cache.Set(key, page)
	writeHTML(w, page)
}

func writeHTML(w http.ResponseWriter, page cache.Page) {
	w.Header().Set("Content-Type", page.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page.Body)
}
