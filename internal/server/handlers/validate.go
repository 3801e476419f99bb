package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/internal/server/response"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/logging"
	"github.com/agentstation/gallery/pkg/schema"
)

// HandleValidate handles POST /api/v1/validate.
// @Summary Validate records
// @Description Validates one raw record, or a whole collection document when the collection query parameter is set. YAML bodies are accepted with a yaml content type.
// @Tags schema
// @Accept json
// @Produce json
// @Param collection query string false "Validate a collection document of this kind"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 422 {object} response.Response{error=response.Error}
// @Router /api/v1/validate [post].
func (h *Handlers) HandleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxRequestBody))
	if err != nil {
		response.BadRequest(w, "Unable to read request body", err.Error())
		return
	}

	format := loader.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = loader.FormatYAML
	}

	if collection := r.URL.Query().Get("collection"); collection != "" {
		h.validateCollection(w, r, collection, body, format)
		return
	}

	raw, err := loader.DecodeRecord(body, format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	entry, verrs := schema.Validate(raw)
	if len(verrs) > 0 {
		response.ErrorFromType(w, verrs)
		return
	}
	response.OK(w, entry)
}

func (h *Handlers) validateCollection(w http.ResponseWriter, r *http.Request, collection string, body []byte, format loader.Format) {
	k, err := catalogs.ParseKind(collection)
	if err != nil {
		response.BadRequest(w, "Unknown collection", err.Error())
		return
	}

	// rejected records are reported in the response, not the server log
	ctx := logging.WithLogger(r.Context(), logging.NewNopLogger())
	result, err := loader.Parse(ctx, k, body, format)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	data := map[string]any{
		"kind":     k,
		"accepted": result.Collection.Names(),
		"rejected": result.Rejected,
	}
	if !result.OK() {
		response.JSON(w, http.StatusUnprocessableEntity, response.Response{
			Data:  data,
			Error: &response.Error{Code: "VALIDATION_FAILED", Message: "Some records failed validation"},
		})
		return
	}
	response.OK(w, data)
}
