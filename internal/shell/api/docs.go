package api

import (
	"net/http"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/listing"
	"github.com/artpar/portfolio/internal/shell/api/openapi"
	"github.com/artpar/portfolio/internal/shell/imagehost"
)

// apiDocs describes every route Routes mounts under /api.
func (h *Handler) apiDocs() *openapi.Generator {
	g := openapi.NewGenerator(
		openapi.WithTitle("Portfolio API"),
		openapi.WithVersion(h.version),
		openapi.WithCookieName(h.cookieName),
	)

	g.RegisterResource(openapi.ResourceInfo{
		Name: "Project", Path: "/api/projects", Tag: "Projects",
		Model: domain.Project{}, Request: ProjectRequest{}, Patch: ProjectPatchRequest{},
		SupportsFind: true, SupportsSlug: true, SupportsCreate: true, SupportsUpdate: true, SupportsDelete: true,
	})
	g.RegisterResource(openapi.ResourceInfo{
		Name: "Blog", Path: "/api/blog", Tag: "Blog",
		Model: domain.Blog{}, Request: BlogRequest{},
		SupportsFind: true, SupportsSlug: true, SupportsCreate: true, SupportsUpdate: true, SupportsDelete: true,
	})
	g.RegisterResource(openapi.ResourceInfo{
		Name: "Experience", Path: "/api/experiences", Tag: "Experiences",
		Model: domain.Experience{}, Request: ExperienceRequest{},
		SupportsFind: true, SupportsCreate: true, SupportsUpdate: true, SupportsDelete: true,
	})
	g.RegisterResource(openapi.ResourceInfo{
		Name: "Research", Path: "/api/research", Tag: "Research",
		Model: domain.Research{}, Request: ResearchRequest{},
		SupportsFind: true, SupportsCreate: true, SupportsUpdate: true, SupportsDelete: true,
	})

	g.RegisterSchema("YearGroup", listing.YearGroup{})
	g.RegisterSchema("Views", ViewsResponse{})
	g.RegisterSchema("Session", domain.Session{})
	g.RegisterSchema("LoginRequest", LoginRequest{})
	g.RegisterSchema("Upload", imagehost.Upload{})

	for _, ep := range []openapi.EndpointInfo{
		{Method: http.MethodGet, Path: "/api/projects/spotlight", OperationID: "getSpotlightProject",
			Summary: "Get the spotlight project", Tag: "Projects", Response: "Project"},
		{Method: http.MethodGet, Path: "/api/blog/slug/{slug}/markdown", OperationID: "exportBlogMarkdown",
			Summary: "Export a blog post as Markdown", Tag: "Blog", ContentType: "text/markdown"},
		{Method: http.MethodPost, Path: "/api/blog/{id}/views", OperationID: "recordBlogView",
			Summary: "Count a view of a published post", Tag: "Blog", Response: "Views"},
		{Method: http.MethodGet, Path: "/api/experiences/timeline", OperationID: "experienceTimeline",
			Summary: "Experience grouped by year", Tag: "Experiences", Response: "YearGroup", ResponseList: true},
		{Method: http.MethodPost, Path: "/api/auth/login", OperationID: "login",
			Summary: "Sign in and start a session", Tag: "Auth", Request: "LoginRequest", Response: "Session"},
		{Method: http.MethodPost, Path: "/api/auth/logout", OperationID: "logout",
			Summary: "End the current session", Tag: "Auth", Status: http.StatusNoContent},
		{Method: http.MethodGet, Path: "/api/auth/session", OperationID: "getSession",
			Summary: "Get the current session", Tag: "Auth", Response: "Session"},
		{Method: http.MethodPost, Path: "/api/upload", OperationID: "uploadImage",
			Summary: "Upload an image to the image host", Tag: "Uploads", Response: "Upload",
			Status: http.StatusCreated, Admin: true},
	} {
		g.RegisterEndpoint(ep)
	}

	return g
}
