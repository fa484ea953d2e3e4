package api

import (
	"net/http"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	"github.com/artpar/portfolio/internal/shell/store"
)

// =============================================================================
// Research Handlers
// =============================================================================

// handleListResearch lists publications by date, newest first.
func (h *Handler) handleListResearch(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListResearch(r.Context(), store.AllRows())
	if err != nil {
		h.writeFailure(w, err, "research", "list")
		return
	}

	h.writeJSON(w, http.StatusOK, paginate(r, listing.SortResearch(items, h.now())))
}

func (h *Handler) handleGetResearch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.store.GetResearch(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "research", "get")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleCreateResearch(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	item, err := domain.NewResearch(req.input(), h.now())
	if err != nil {
		h.writeFailure(w, err, "research", "create")
		return
	}
	if err := h.store.CreateResearch(r.Context(), item); err != nil {
		h.writeFailure(w, err, "research", "create")
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) handleUpdateResearch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ResearchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	item, err := h.store.GetResearch(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "research", "update")
		return
	}
	if err := item.Apply(req.input(), h.now()); err != nil {
		h.writeFailure(w, err, "research", "update")
		return
	}
	if err := h.store.UpdateResearch(r.Context(), item); err != nil {
		h.writeFailure(w, err, "research", "update")
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleDeleteResearch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteResearch(r.Context(), id); err != nil {
		h.writeFailure(w, err, "research", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
