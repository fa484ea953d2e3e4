package api

import (
	"net/http"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	"github.com/artpar/portfolio/internal/shell/store"
)

// =============================================================================
// Experience Handlers
// =============================================================================

// handleListExperiences lists entries by start date, most recent first,
// with ongoing roles ahead of finished ones.
func (h *Handler) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	exps, err := h.store.ListExperiences(r.Context(), store.AllRows())
	if err != nil {
		h.writeFailure(w, err, "experiences", "list")
		return
	}

	h.writeJSON(w, http.StatusOK, paginate(r, listing.SortExperiences(exps, h.now())))
}

// handleExperienceTimeline groups entries by year, newest year first.
// limit and offset select entries in sorted order before grouping.
func (h *Handler) handleExperienceTimeline(w http.ResponseWriter, r *http.Request) {
	exps, err := h.store.ListExperiences(r.Context(), store.AllRows())
	if err != nil {
		h.writeFailure(w, err, "experiences", "list")
		return
	}

	now := h.now()
	h.writeJSON(w, http.StatusOK, listing.Timeline(paginate(r, listing.SortExperiences(exps, now)), now))
}

func (h *Handler) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exp, err := h.store.GetExperience(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "experience", "get")
		return
	}

	h.writeJSON(w, http.StatusOK, exp)
}

func (h *Handler) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	exp, err := domain.NewExperience(req.input(), h.now())
	if err != nil {
		h.writeFailure(w, err, "experience", "create")
		return
	}
	if err := h.store.CreateExperience(r.Context(), exp); err != nil {
		h.writeFailure(w, err, "experience", "create")
		return
	}

	h.writeJSON(w, http.StatusCreated, exp)
}

func (h *Handler) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ExperienceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	exp, err := h.store.GetExperience(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "experience", "update")
		return
	}
	if err := exp.Apply(req.input(), h.now()); err != nil {
		h.writeFailure(w, err, "experience", "update")
		return
	}
	if err := h.store.UpdateExperience(r.Context(), exp); err != nil {
		h.writeFailure(w, err, "experience", "update")
		return
	}

	h.writeJSON(w, http.StatusOK, exp)
}

func (h *Handler) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteExperience(r.Context(), id); err != nil {
		h.writeFailure(w, err, "experience", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
