package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	"github.com/artpar/portfolio/internal/shell/spotlight"
	"github.com/artpar/portfolio/internal/shell/store"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// Project Handlers
// =============================================================================

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	filter := listing.ProjectFilter{}
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := domain.Category(raw)
		if !c.IsValid() {
			h.writeError(w, http.StatusBadRequest, domain.ErrInvalidCategory.Error(), "validation_error")
			return
		}
		filter.Category = c
	}
	if featured, ok := queryBool(r, "featured"); ok {
		filter.FeaturedOnly = featured
	}

	projects, err := h.store.ListProjects(r.Context(), store.AllRows())
	if err != nil {
		h.writeFailure(w, err, "projects", "list")
		return
	}

	h.writeJSON(w, http.StatusOK, paginate(r, listing.FilterProjects(projects, filter)))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "project", "get")
		return
	}

	h.writeJSON(w, http.StatusOK, project)
}

func (h *Handler) handleGetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeFailure(w, err, "project", "get")
		return
	}

	h.writeJSON(w, http.StatusOK, project)
}

func (h *Handler) handleGetSpotlight(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetSpotlightProject(r.Context())
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "no project is in the spotlight", "not_found")
			return
		}
		h.writeFailure(w, err, "spotlight project", "get")
		return
	}

	h.writeJSON(w, http.StatusOK, project)
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	project, err := domain.NewProject(req.input(), h.now())
	if err != nil {
		h.writeFailure(w, err, "project", "create")
		return
	}

	h.saveProject(w, r, project, http.StatusCreated, "create")
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "project", "update")
		return
	}
	if err := project.Apply(req.input(), h.now()); err != nil {
		h.writeFailure(w, err, "project", "update")
		return
	}

	h.saveProject(w, r, project, http.StatusOK, "update")
}

func (h *Handler) handlePatchProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ProjectPatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "project", "update")
		return
	}
	if err := project.ApplyPatch(req.patch(), h.now()); err != nil {
		h.writeFailure(w, err, "project", "update")
		return
	}

	h.saveProject(w, r, project, http.StatusOK, "update")
}

// saveProject persists project through the spotlight enforcer. A takeover
// needs ?confirm_spotlight=true under the confirm policy.
func (h *Handler) saveProject(w http.ResponseWriter, r *http.Request, project *domain.Project, status int, op string) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm_spotlight"))

	result, err := h.enforcer.SaveProject(r.Context(), project, confirmed)
	if err != nil {
		if errors.Is(err, spotlight.ErrSpotlightConflict) {
			h.metrics.observeSpotlight("needs_confirmation")
		}
		h.writeFailure(w, err, "project", op)
		return
	}
	if project.IsSpotlight {
		h.metrics.observeSpotlight(result.Outcome.String())
	}

	h.logger.Info("project saved", "project_id", project.ID, "slug", project.Slug, "spotlight", project.IsSpotlight)
	h.writeJSON(w, status, ProjectResponse{Project: *project, PreviousSpotlight: result.Previous})
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		h.writeFailure(w, err, "project", "delete")
		return
	}

	h.logger.Info("project deleted", "project_id", id)
	w.WriteHeader(http.StatusNoContent)
}
