package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/adapters"
	"github.com/de-tools/result-atlas/pkg/models/api"
	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/projects"
	"github.com/de-tools/result-atlas/pkg/services/query"
)

type Handler struct {
	projects projects.Manager
}

func NewHandler(projects projects.Manager) *Handler {
	return &Handler{projects: projects}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	response := []api.Project{}
	for _, name := range h.projects.ListProjects(r.Context()) {
		response = append(response, api.Project{Name: name})
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	rs, name, ok := h.resultSet(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapResultSetDomainToApiOverview(name, rs))
}

func (h *Handler) GetOperationModes(w http.ResponseWriter, r *http.Request) {
	rs, _, ok := h.resultSet(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapOperationModesDomainToApi(rs.OperationModes))
}

func (h *Handler) GetSections(w http.ResponseWriter, r *http.Request) {
	rs, _, ok := h.resultSet(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapSectionsDomainToApi(rs.Sections))
}

func (h *Handler) GetStreamSeries(w http.ResponseWriter, r *http.Request) {
	stream, err := query.ParseStream(chi.URLParam(r, "stream"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.serveSeries(w, r, query.Target{Stream: stream})
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	rs, _, ok := h.resultSet(w, r)
	if !ok {
		return
	}
	target, err := assetTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	asset, err := rs.Asset(target.Category, target.Asset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapAssetDomainToApi(asset))
}

func (h *Handler) GetAssetSeries(w http.ResponseWriter, r *http.Request) {
	target, err := assetTarget(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.serveSeries(w, r, target)
}

func (h *Handler) serveSeries(w http.ResponseWriter, r *http.Request, target query.Target) {
	req, err := parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rs, _, ok := h.resultSet(w, r)
	if !ok {
		return
	}

	s, err := query.Resolve(rs, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := req.Apply(s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapSeriesDomainToApi(view))
}

func (h *Handler) resultSet(w http.ResponseWriter, r *http.Request) (*domain.ResultSet, string, bool) {
	name := chi.URLParam(r, "project")
	rs, err := h.projects.GetResultSet(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return nil, name, false
	}
	return rs, name, true
}

func assetTarget(r *http.Request) (query.Target, error) {
	category, err := domain.ParseAssetCategory(chi.URLParam(r, "category"))
	if err != nil {
		return query.Target{}, fmt.Errorf("%w: %v", domain.ErrUnknownAsset, err)
	}
	return query.AssetTarget(category, chi.URLParam(r, "asset")), nil
}

// parseRequest reads year, from, to and columns from the query string.
func parseRequest(r *http.Request) (query.Request, error) {
	values := r.URL.Query()
	var req query.Request

	if v := values.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid 'year' parameter: %q", v)
		}
		req.Year = year
	}
	for _, bound := range []struct {
		name string
		dst  **int
	}{{"from", &req.From}, {"to", &req.To}} {
		v := values.Get(bound.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid '%s' parameter: %q", bound.name, v)
		}
		*bound.dst = &n
	}
	if v := values.Get("columns"); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				req.Columns = append(req.Columns, c)
			}
		}
	}
	return req, nil
}

// writeJSON encodes v before writing the status so an encoding failure is
// still reported as a 500.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		writeError(w, r, fmt.Errorf("failed to encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownProject), errors.Is(err, domain.ErrUnknownAsset):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumnSelection), errors.Is(err, domain.ErrYearOutOfRange):
		status = http.StatusBadRequest
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	http.Error(w, err.Error(), status)
}
