// Package openapi provides reflective OpenAPI 3.0 document generation for the
// portfolio API.
package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	schemaPrefix   = "#/components/schemas/"
	securityScheme = "sessionCookie"
	jsonMedia      = "application/json"
)

// =============================================================================
// Generator
// =============================================================================

// Generator produces OpenAPI 3.0 documents by reflecting on registered resources.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string
	cookieName  string
	resources   []ResourceInfo
	endpoints   []EndpointInfo
	mu          sync.RWMutex
	cachedSpec  *openapi3.T
}

// ResourceInfo describes a record collection served as plain JSON under Path.
// Reads are public; writes require a session.
type ResourceInfo struct {
	Name    string // Schema name, e.g. "Project"
	Path    string // Collection path, e.g. "/api/projects"
	Tag     string
	Model   any // Record type for the read schema
	Request any // Request body for create and replace
	Patch   any // Request body for PATCH; nil when unsupported

	SupportsFind   bool // GET {path} and GET {path}/{id}
	SupportsSlug   bool // GET {path}/slug/{slug}
	SupportsCreate bool // POST {path}
	SupportsUpdate bool // PUT {path}/{id}
	SupportsDelete bool // DELETE {path}/{id}
}

// EndpointInfo describes a single operation outside the CRUD pattern.
type EndpointInfo struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tag         string
	// Response names a component schema; empty means no body.
	Response string
	// ResponseList wraps Response in an array.
	ResponseList bool
	// Request names a component schema for a JSON request body.
	Request string
	// ContentType overrides the success media type.
	ContentType string
	Status      int
	Admin       bool
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version. Empty values are ignored.
func WithVersion(version string) Option {
	return func(g *Generator) {
		if version != "" {
			g.version = version
		}
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, url)
	}
}

// WithCookieName sets the session cookie named by the security scheme.
func WithCookieName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.cookieName = name
		}
	}
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		title:       "Portfolio API",
		version:     "1.0.0",
		description: "Content API for projects, blog posts, experience and research",
		cookieName:  "portfolio_session",
		resources:   make([]ResourceInfo, 0),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// RegisterResource adds a resource to the generator.
func (g *Generator) RegisterResource(info ResourceInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resources = append(g.resources, info)
	g.cachedSpec = nil
}

// RegisterEndpoint adds a single operation to the generator.
func (g *Generator) RegisterEndpoint(info EndpointInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endpoints = append(g.endpoints, info)
	g.cachedSpec = nil
}

// RegisterSchema adds a named component schema reflected from model.
func (g *Generator) RegisterSchema(name string, model any) {
	g.RegisterResource(ResourceInfo{Name: name, Model: model})
}

// Generate produces the complete OpenAPI 3.0 document.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Double-check after acquiring write lock
	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Servers: make(openapi3.Servers, 0, len(g.servers)),
		Paths:   &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
			SecuritySchemes: openapi3.SecuritySchemes{
				securityScheme: &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{
						Type: "apiKey",
						In:   "cookie",
						Name: g.cookieName,
					},
				},
			},
		},
	}

	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	g.addCommonSchemas(spec)

	for _, res := range g.resources {
		g.addResourceToSpec(spec, res)
	}
	for _, ep := range g.endpoints {
		g.addEndpointToSpec(spec, ep)
	}

	g.cachedSpec = spec
	return spec
}

// Handler returns an HTTP handler that serves the OpenAPI document.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := g.Generate()

		w.Header().Set("Content-Type", jsonMedia)
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	}
}

// =============================================================================
// Schema Generation
// =============================================================================

// addCommonSchemas adds the error schema shared by every operation.
func (g *Generator) addCommonSchemas(spec *openapi3.T) {
	spec.Components.Schemas["Error"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"error": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
				"code":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}},
			},
			Required: []string{"error", "code"},
		},
	}
}

// addResourceToSpec adds paths and schemas for a resource.
func (g *Generator) addResourceToSpec(spec *openapi3.T, res ResourceInfo) {
	if res.Model != nil {
		spec.Components.Schemas[res.Name] = g.extractSchema(res.Model)
	}
	if res.Request != nil {
		spec.Components.Schemas[res.Name+"Request"] = g.extractSchema(res.Request)
	}
	if res.Patch != nil {
		spec.Components.Schemas[res.Name+"PatchRequest"] = g.extractSchema(res.Patch)
	}
	if res.Path == "" {
		return
	}

	collection := &openapi3.PathItem{}
	if res.SupportsFind {
		collection.Get = g.operation(res, "list", "List "+res.Tag,
			http.StatusOK, listOf(res.Name), false)
	}
	if res.SupportsCreate {
		op := g.operation(res, "create", "Create a "+strings.ToLower(res.Name),
			http.StatusCreated, refTo(res.Name), true)
		op.RequestBody = jsonBody(res.Name + "Request")
		collection.Post = op
	}
	spec.Paths.Set(res.Path, collection)

	item := &openapi3.PathItem{Parameters: openapi3.Parameters{pathParam("id", "integer")}}
	if res.SupportsFind {
		item.Get = g.operation(res, "get", "Get a "+strings.ToLower(res.Name),
			http.StatusOK, refTo(res.Name), false)
	}
	if res.SupportsUpdate {
		op := g.operation(res, "update", "Replace a "+strings.ToLower(res.Name),
			http.StatusOK, refTo(res.Name), true)
		op.RequestBody = jsonBody(res.Name + "Request")
		item.Put = op
	}
	if res.Patch != nil {
		op := g.operation(res, "patch", "Partially update a "+strings.ToLower(res.Name),
			http.StatusOK, refTo(res.Name), true)
		op.RequestBody = jsonBody(res.Name + "PatchRequest")
		item.Patch = op
	}
	if res.SupportsDelete {
		item.Delete = g.operation(res, "delete", "Delete a "+strings.ToLower(res.Name),
			http.StatusNoContent, nil, true)
	}
	spec.Paths.Set(res.Path+"/{id}", item)

	if res.SupportsSlug {
		spec.Paths.Set(res.Path+"/slug/{slug}", &openapi3.PathItem{
			Parameters: openapi3.Parameters{pathParam("slug", "string")},
			Get: g.operation(res, "getBySlug", "Get a "+strings.ToLower(res.Name)+" by slug",
				http.StatusOK, refTo(res.Name), false),
		})
	}
}

// addEndpointToSpec adds a single operation, merging with any existing path item.
func (g *Generator) addEndpointToSpec(spec *openapi3.T, ep EndpointInfo) {
	item := spec.Paths.Value(ep.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		for _, name := range pathParams(ep.Path) {
			typ := "string"
			if name == "id" {
				typ = "integer"
			}
			item.Parameters = append(item.Parameters, pathParam(name, typ))
		}
		spec.Paths.Set(ep.Path, item)
	}

	status := ep.Status
	if status == 0 {
		status = http.StatusOK
	}

	var body *openapi3.SchemaRef
	if ep.Response != "" {
		body = refTo(ep.Response)
		if ep.ResponseList {
			body = listOf(ep.Response)
		}
	}

	op := &openapi3.Operation{
		OperationID: ep.OperationID,
		Summary:     ep.Summary,
		Responses:   responses(status, body, ep.ContentType, ep.Admin),
	}
	if ep.Tag != "" {
		op.Tags = []string{ep.Tag}
	}
	if ep.Request != "" {
		op.RequestBody = jsonBody(ep.Request)
	}
	if ep.Admin {
		op.Security = adminSecurity()
	}
	item.SetOperation(ep.Method, op)
}

// extractSchema extracts an OpenAPI schema from a Go struct. Embedded structs
// without a JSON name are flattened the way encoding/json does.
func (g *Generator) extractSchema(model any) *openapi3.SchemaRef {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}
	g.collectFields(t, schema)

	return &openapi3.SchemaRef{Value: schema}
}

func (g *Generator) collectFields(t reflect.Type, schema *openapi3.Schema) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		if field.Anonymous && (jsonTag == "" || strings.HasPrefix(jsonTag, ",")) && field.Type.Kind() == reflect.Struct {
			g.collectFields(field.Type, schema)
			continue
		}

		if !field.IsExported() {
			continue
		}

		name := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
		}

		if propSchema := g.goTypeToSchema(field.Type); propSchema != nil {
			schema.Properties[name] = propSchema
		}
	}
}

// goTypeToSchema converts a Go type to an OpenAPI schema.
func (g *Generator) goTypeToSchema(t reflect.Type) *openapi3.SchemaRef {
	switch t.Kind() {
	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}}

	case reflect.Int64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}

	case reflect.Float32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}, Format: "float"}}

	case reflect.Float64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}, Format: "double"}}

	case reflect.Bool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}

	case reflect.Slice, reflect.Array:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: g.goTypeToSchema(t.Elem()),
			},
		}

	case reflect.Map:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:                 &openapi3.Types{"object"},
				AdditionalProperties: openapi3.AdditionalProperties{Schema: g.goTypeToSchema(t.Elem())},
			},
		}

	case reflect.Ptr:
		schema := g.goTypeToSchema(t.Elem())
		if schema != nil && schema.Value != nil {
			schema.Value.Nullable = true
		}
		return schema

	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return &openapi3.SchemaRef{
				Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"},
			}
		}
		return g.extractSchema(reflect.New(t).Interface())

	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}
}

// =============================================================================
// Operation Generation
// =============================================================================

func (g *Generator) operation(res ResourceInfo, verb, summary string, status int, body *openapi3.SchemaRef, admin bool) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: verb + res.Name,
		Summary:     summary,
		Responses:   responses(status, body, "", admin),
	}
	if res.Tag != "" {
		op.Tags = []string{res.Tag}
	}
	if admin {
		op.Security = adminSecurity()
	}
	return op
}

// responses builds the success response plus the error responses the API emits.
func responses(status int, body *openapi3.SchemaRef, contentType string, admin bool) *openapi3.Responses {
	out := &openapi3.Responses{}

	success := openapi3.NewResponse().WithDescription(http.StatusText(status))
	if body != nil {
		if contentType == "" || contentType == jsonMedia {
			success = success.WithJSONSchemaRef(body)
		} else {
			success = success.WithContent(openapi3.NewContentWithSchemaRef(body, []string{contentType}))
		}
	}
	out.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: success})

	codes := []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError}
	if admin {
		codes = append(codes, http.StatusUnauthorized, http.StatusConflict)
	}
	for _, code := range codes {
		out.Set(strconv.Itoa(code), &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(http.StatusText(code)).
				WithJSONSchemaRef(refTo("Error")),
		})
	}
	return out
}

func adminSecurity() *openapi3.SecurityRequirements {
	return &openapi3.SecurityRequirements{{securityScheme: []string{}}}
}

func jsonBody(schema string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(refTo(schema)),
	}
}

func pathParam(name, typ string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{typ}}},
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func refTo(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: schemaPrefix + name}
}

func listOf(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: refTo(name),
		},
	}
}

// pathParams returns the {name} segments of a path template.
func pathParams(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}
