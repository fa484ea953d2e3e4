package api

import (
	"fmt"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	"github.com/artpar/portfolio/internal/shell/store"
	"github.com/go-chi/chi/v5"
)

// =============================================================================
// Blog Handlers
// =============================================================================

// handleListBlogs lists posts newest first. Anonymous callers only see
// published posts; ?featured=true|false selects one side of the featured split.
func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	q := r.URL.Query()

	filter := listing.BlogFilter{
		PublishedOnly: !ac.Authenticated,
		Tag:           q.Get("tag"),
		Query:         q.Get("q"),
	}
	if published, ok := queryBool(r, "published"); ok && published {
		filter.PublishedOnly = true
	}

	blogs, err := h.store.ListBlogs(r.Context(), store.AllRows())
	if err != nil {
		h.writeFailure(w, err, "blogs", "list")
		return
	}
	blogs = listing.FilterBlogs(blogs, filter)

	if featured, ok := queryBool(r, "featured"); ok {
		f, regular := listing.SplitFeatured(blogs)
		blogs = regular
		if featured {
			blogs = f
		}
	}

	h.writeJSON(w, http.StatusOK, paginate(r, blogs))
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	blog, err := h.store.GetBlog(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "blog", "get")
		return
	}
	if !auth.CanViewBlog(auth.FromContext(r.Context()), *blog) {
		h.writeError(w, http.StatusNotFound, "blog not found", "not_found")
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) handleGetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	blog, ok := h.viewableBlogBySlug(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

// handleExportBlogMarkdown renders a post as a Markdown document.
func (h *Handler) handleExportBlogMarkdown(w http.ResponseWriter, r *http.Request) {
	blog, ok := h.viewableBlogBySlug(w, r)
	if !ok {
		return
	}

	doc, err := blogMarkdown(blog)
	if err != nil {
		h.logger.Error("failed to convert blog to markdown", "blog_id", blog.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to export blog", "internal_error")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", blog.Slug+".md"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (h *Handler) viewableBlogBySlug(w http.ResponseWriter, r *http.Request) (*domain.Blog, bool) {
	blog, err := h.store.GetBlogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeFailure(w, err, "blog", "get")
		return nil, false
	}
	if !auth.CanViewBlog(auth.FromContext(r.Context()), *blog) {
		h.writeError(w, http.StatusNotFound, "blog not found", "not_found")
		return nil, false
	}
	return blog, true
}

// handleRecordBlogView counts one view of a published post.
func (h *Handler) handleRecordBlogView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	blog, err := h.store.GetBlog(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "blog", "record view for")
		return
	}
	if !blog.Published {
		h.writeError(w, http.StatusNotFound, "blog not found", "not_found")
		return
	}

	views, err := h.store.IncrementBlogViews(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "blog", "record view for")
		return
	}
	h.metrics.observeView()

	h.writeJSON(w, http.StatusOK, ViewsResponse{ID: id, Views: views})
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req BlogRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	blog, err := domain.NewBlog(req.input(), h.now())
	if err != nil {
		h.writeFailure(w, err, "blog", "create")
		return
	}
	if err := h.store.CreateBlog(r.Context(), blog); err != nil {
		h.writeFailure(w, err, "blog", "create")
		return
	}

	h.logger.Info("blog created", "blog_id", blog.ID, "slug", blog.Slug, "published", blog.Published)
	h.writeJSON(w, http.StatusCreated, blog)
}

func (h *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req BlogRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	blog, err := h.store.GetBlog(r.Context(), id)
	if err != nil {
		h.writeFailure(w, err, "blog", "update")
		return
	}
	if err := blog.Apply(req.input(), h.now()); err != nil {
		h.writeFailure(w, err, "blog", "update")
		return
	}
	if err := h.store.UpdateBlog(r.Context(), blog); err != nil {
		h.writeFailure(w, err, "blog", "update")
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteBlog(r.Context(), id); err != nil {
		h.writeFailure(w, err, "blog", "delete")
		return
	}

	h.logger.Info("blog deleted", "blog_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Markdown Export
// =============================================================================

// blogMarkdown converts the stored HTML of b to GitHub-flavored Markdown
// under a level-one title heading.
func blogMarkdown(b *domain.Blog) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	body, err := converter.ConvertString(b.Content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(b.Title)
	sb.WriteString("\n\n")
	if b.Excerpt != "" {
		sb.WriteString("> ")
		sb.WriteString(b.Excerpt)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n")
	return sb.String(), nil
}
