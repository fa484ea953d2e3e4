// Package api provides HTTP handlers for the portfolio API.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	apimw "github.com/artpar/portfolio/internal/shell/api/middleware"
	"github.com/artpar/portfolio/internal/shell/imagehost"
	"github.com/artpar/portfolio/internal/shell/spotlight"
	"github.com/artpar/portfolio/internal/shell/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultSessionTTL     = 7 * 24 * time.Hour
	defaultMaxUploadBytes = 10 << 20
	maxJSONBodyBytes      = 4 << 20
)

// =============================================================================
// Handler
// =============================================================================

// Config holds the dependencies and settings of the API handler.
type Config struct {
	Store    store.Store
	Enforcer *spotlight.Enforcer
	Uploader imagehost.Uploader
	Logger   *slog.Logger

	// CookieName is the session cookie. Defaults to auth.DefaultCookieName.
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	// MetricsEnabled mounts /metrics and records request metrics.
	MetricsEnabled bool

	MaxUploadBytes int64
	Version        string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Handler provides HTTP handlers for the API.
type Handler struct {
	store    store.Store
	enforcer *spotlight.Enforcer
	uploader imagehost.Uploader
	metrics  *Metrics
	logger   *slog.Logger

	cookieName     string
	cookieSecure   bool
	sessionTTL     time.Duration
	maxUploadBytes int64
	version        string
	now            func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		store:          cfg.Store,
		enforcer:       cfg.Enforcer,
		uploader:       cfg.Uploader,
		logger:         cfg.Logger,
		cookieName:     cfg.CookieName,
		cookieSecure:   cfg.CookieSecure,
		sessionTTL:     cfg.SessionTTL,
		maxUploadBytes: cfg.MaxUploadBytes,
		version:        cfg.Version,
		now:            cfg.Now,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.enforcer == nil {
		h.enforcer = spotlight.NewEnforcer(cfg.Store, "", h.logger)
	}
	if h.uploader == nil {
		h.uploader = imagehost.NewNoopUploader()
	}
	if h.cookieName == "" {
		h.cookieName = auth.DefaultCookieName
	}
	if h.sessionTTL <= 0 {
		h.sessionTTL = defaultSessionTTL
	}
	if h.maxUploadBytes <= 0 {
		h.maxUploadBytes = defaultMaxUploadBytes
	}
	if h.now == nil {
		h.now = time.Now
	}
	if cfg.MetricsEnabled {
		h.metrics = NewMetrics()
	}
	return h
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(apimw.NewAuthMiddleware(apimw.AuthConfig{
		CookieName: h.cookieName,
		Resolver:   h.store,
		Logger:     h.logger,
		Now:        h.now,
	}).Handler)

	requireAuth := apimw.RequireAuth(h.logger)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/openapi.json", h.apiDocs().Handler())

		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.handleLogin)
			r.Post("/logout", h.handleLogout)
			r.Get("/session", h.handleSession)
		})

		// Project routes
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.handleListProjects)
			r.Get("/spotlight", h.handleGetSpotlight)
			r.Get("/slug/{slug}", h.handleGetProjectBySlug)
			r.Get("/{id}", h.handleGetProject)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.handleCreateProject)
				r.Put("/{id}", h.handleUpdateProject)
				r.Patch("/{id}", h.handlePatchProject)
				r.Delete("/{id}", h.handleDeleteProject)
			})
		})

		// Blog routes
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.handleListBlogs)
			r.Get("/slug/{slug}", h.handleGetBlogBySlug)
			r.Get("/slug/{slug}/markdown", h.handleExportBlogMarkdown)
			r.Get("/{id}", h.handleGetBlog)
			r.Post("/{id}/views", h.handleRecordBlogView)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.handleCreateBlog)
				r.Put("/{id}", h.handleUpdateBlog)
				r.Delete("/{id}", h.handleDeleteBlog)
			})
		})

		// Experience routes
		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", h.handleListExperiences)
			r.Get("/timeline", h.handleExperienceTimeline)
			r.Get("/{id}", h.handleGetExperience)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.handleCreateExperience)
				r.Put("/{id}", h.handleUpdateExperience)
				r.Delete("/{id}", h.handleDeleteExperience)
			})
		})

		// Research routes
		r.Route("/research", func(r chi.Router) {
			r.Get("/", h.handleListResearch)
			r.Get("/{id}", h.handleGetResearch)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.handleCreateResearch)
				r.Put("/{id}", h.handleUpdateResearch)
				r.Delete("/{id}", h.handleDeleteResearch)
			})
		})

		r.With(requireAuth).Post("/upload", h.handleUpload)
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
// Handlers that write another format override it.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("readiness check failed", "check", "database", "error", err)
		checks["database"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeFailure maps a domain, enforcer or store error onto an HTTP error.
// entity names the record kind in not-found messages.
func (h *Handler) writeFailure(w http.ResponseWriter, err error, entity, op string) {
	var conflict *spotlight.ConflictError
	switch {
	case domain.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
	case errors.As(err, &conflict):
		h.writeJSON(w, http.StatusConflict, SpotlightConflictResponse{
			Error:  conflict.Error(),
			Code:   "spotlight_conflict",
			Holder: conflict.Holder,
		})
	case isNotFound(err):
		h.writeError(w, http.StatusNotFound, entity+" not found", "not_found")
	case errors.Is(err, store.ErrDuplicateSlug):
		h.writeError(w, http.StatusConflict, "a "+entity+" with this slug already exists", "duplicate_slug")
	case errors.Is(err, store.ErrConstraint):
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
	default:
		h.logger.Error("failed to "+op+" "+entity, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to "+op+" "+entity, "internal_error")
	}
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "payload_too_large")
			return false
		}
		if errors.Is(err, io.EOF) {
			h.writeError(w, http.StatusBadRequest, "request body is empty", "validation_error")
			return false
		}
		h.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), "validation_error")
		return false
	}
	return true
}

// pathID parses the {id} URL parameter, writing a 400 on failure.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid id", "validation_error")
		return 0, false
	}
	return id, true
}

// listOptions reads limit and offset query parameters.
func listOptions(r *http.Request) store.ListOptions {
	opts := store.DefaultListOptions()
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		opts.Offset = v
	}
	return opts.Normalize()
}

// paginate applies the request's limit and offset to an already ordered
// and filtered list.
func paginate[T any](r *http.Request, items []T) []T {
	opts := listOptions(r)
	return listing.Paginate(items, opts.Limit, opts.Offset)
}

// queryBool reads a boolean query parameter. ok is false when absent or unparsable.
func queryBool(r *http.Request, name string) (value, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// isNotFound checks if an error is a not found error.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
