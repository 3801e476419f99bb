package handlers

import (
	"net/http"

	"github.com/agentstation/gallery/internal/server/response"
	"github.com/agentstation/gallery/pkg/schema"
)

// HandleSchemaJSON handles GET /api/v1/schema.
// @Summary Entry schema (JSON)
// @Description Authoring schema for catalog entries as a JSON document
// @Tags schema
// @Produce json
// @Success 200 {object} object
// @Router /api/v1/schema [get].
func (h *Handlers) HandleSchemaJSON(w http.ResponseWriter, _ *http.Request) {
	data, err := schema.Entry().JSON()
	if err != nil {
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(data)
}

// HandleSchemaYAML handles GET /api/v1/schema.yaml.
// @Summary Entry schema (YAML)
// @Description Authoring schema for catalog entries as a YAML document
// @Tags schema
// @Produce application/x-yaml
// @Success 200 {string} string "YAML schema"
// @Router /api/v1/schema.yaml [get].
func (h *Handlers) HandleSchemaYAML(w http.ResponseWriter, _ *http.Request) {
	data, err := schema.Entry().YAML()
	if err != nil {
		response.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	_, _ = w.Write(data)
}
