package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/swagts/internal/logging"
	"github.com/kolah/swagts/internal/model"
	"github.com/kolah/swagts/internal/typescript"
)

func lookup(t *testing.T, rec *typescript.Record, path ...string) typescript.Field {
	t.Helper()
	var f typescript.Field
	for _, name := range path {
		require.NotNil(t, rec, "no record for %q", name)
		var ok bool
		f, ok = rec.Lookup(name)
		require.True(t, ok, "field %q not found", name)
		rec = f.Record
	}
	return f
}

func usersDocument() *model.Document {
	return &model.Document{
		Paths: []model.Path{
			{
				Path: "/users/{id}",
				Operations: []model.Operation{
					{
						Method:      model.MethodGet,
						Path:        "/users/{id}",
						Description: "Fetch one user",
						Parameters: []model.Parameter{
							{Name: "id", In: model.LocationPath, Required: true, Type: model.TypeInteger},
							{Name: "expand", In: model.LocationQuery, Type: model.TypeArray, Items: &model.Items{Type: model.TypeString, Enum: []string{"groups", "roles"}}},
							{Name: "error.code", In: model.LocationQuery, Type: model.TypeInteger},
							{Name: "error.type", In: model.LocationQuery, Type: model.TypeString},
							{Name: "error.message", In: model.LocationQuery, Type: model.TypeString},
							{Name: "error.description", In: model.LocationQuery, Type: model.TypeString},
							{Name: "X-Trace", In: model.LocationHeader, Type: model.TypeString},
						},
						Responses: []model.Response{
							{StatusCode: "200", Description: "OK", Schema: &model.Property{Ref: "#/definitions/User"}},
							{StatusCode: "404", Schema: &model.Property{Ref: "#/definitions/Error"}},
							{StatusCode: "default"},
						},
					},
					{
						Method: model.MethodPut,
						Path:   "/users/{id}",
						Parameters: []model.Parameter{
							{Name: "id", In: model.LocationPath, Required: true, Type: model.TypeString},
							{Name: "user", In: model.LocationBody, Required: true, Schema: &model.Property{Ref: "#/definitions/User"}},
						},
					},
				},
			},
			{
				Path: "/api/internal/health",
				Operations: []model.Operation{
					{Method: model.MethodGet, Path: "/api/internal/health"},
				},
			},
			{
				Path: "/users",
				Operations: []model.Operation{
					{
						Method: model.MethodGet,
						Path:   "/users",
						Responses: []model.Response{
							{StatusCode: "200", Schema: &model.Property{Type: model.TypeArray, Items: &model.Items{Ref: "#/definitions/User"}}},
						},
					},
					{
						Method:     model.MethodDelete,
						Path:       "/users",
						Parameters: []model.Parameter{{Name: "X-Token", In: model.LocationHeader}},
					},
				},
			},
		},
	}
}

func TestEmitKeys(t *testing.T) {
	decl := New(logging.Discard()).Emit(usersDocument(), "CoreUsers")

	require.Equal(t, "CoreUsersActions", decl.Name)

	var keys []string
	for _, f := range decl.Body.Fields {
		keys = append(keys, f.Name)
		require.True(t, f.Quoted)
	}
	require.Equal(t, []string{
		"GET /users/:id",
		"PUT /users/:id",
		"GET /users",
		"DELETE /users",
	}, keys)
}

func TestEmitSkipsInternalPaths(t *testing.T) {
	doc := &model.Document{
		Paths: []model.Path{
			{Path: "/api", Operations: []model.Operation{{Method: model.MethodGet, Path: "/api"}}},
			{Path: "/apiary", Operations: []model.Operation{{Method: model.MethodPost, Path: "/apiary"}}},
			{Path: "/api/v1/x", Operations: []model.Operation{{Method: model.MethodDelete, Path: "/api/v1/x"}}},
		},
	}

	decl := New(logging.Discard()).Emit(doc, "Ns")
	require.Zero(t, decl.Body.Len())
}

func TestEmitParameters(t *testing.T) {
	decl := New(logging.Discard()).Emit(usersDocument(), "CoreUsers")
	get := lookup(t, &decl.Body, "GET /users/:id")

	require.Equal(t, "/** Fetch one user */", get.Comment)

	tests := []struct {
		name     string
		path     []string
		typ      string
		optional bool
	}{
		{name: "path id widened", path: []string{"parameters", "path", "id"}, typ: "string | number"},
		{name: "enum array", path: []string{"parameters", "query", "expand"}, typ: "('groups' | 'roles')[]", optional: true},
		{name: "collapsed tuple", path: []string{"parameters", "query", "error"}, typ: "number", optional: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := lookup(t, get.Record, tt.path...)
			require.Equal(t, tt.typ, f.Type)
			require.Equal(t, tt.optional, f.Optional)
		})
	}

	query := lookup(t, get.Record, "parameters", "query")
	require.Equal(t, 2, query.Record.Len())
	for _, suffix := range []string{"error.code", "error.type", "error.message", "error.description"} {
		_, ok := query.Record.Lookup(suffix)
		require.False(t, ok, suffix)
	}

	params := lookup(t, get.Record, "parameters")
	_, ok := params.Record.Lookup("body")
	require.False(t, ok)
}

func TestEmitBody(t *testing.T) {
	decl := New(logging.Discard()).Emit(usersDocument(), "CoreUsers")
	put := lookup(t, &decl.Body, "PUT /users/:id")

	body := lookup(t, put.Record, "parameters", "body")
	require.Equal(t, "CoreUsersDefinitions['User']", body.Type)
	require.False(t, body.Optional)

	path := lookup(t, put.Record, "parameters", "path", "id")
	require.Equal(t, "string | number", path.Type)

	_, ok := put.Record.Lookup("responses")
	require.False(t, ok)
}

func TestEmitResponses(t *testing.T) {
	decl := New(logging.Discard()).Emit(usersDocument(), "CoreUsers")
	get := lookup(t, &decl.Body, "GET /users/:id")

	tests := []struct {
		status string
		typ    string
	}{
		{status: "200", typ: "CoreUsersDefinitions['User']"},
		{status: "404", typ: "unknown"},
		{status: "default", typ: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := lookup(t, get.Record, "responses", tt.status)
			require.Equal(t, tt.typ, f.Type)
			require.True(t, f.Quoted)
		})
	}

	list := lookup(t, &decl.Body, "GET /users", "responses", "200")
	require.Equal(t, "CoreUsersDefinitions['User'][]", list.Type)
}

func TestEmitOmitsEmptyParameters(t *testing.T) {
	decl := New(logging.Discard()).Emit(usersDocument(), "CoreUsers")

	del := lookup(t, &decl.Body, "DELETE /users")
	require.Zero(t, del.Record.Len())

	list := lookup(t, &decl.Body, "GET /users")
	_, ok := list.Record.Lookup("parameters")
	require.False(t, ok)
}

func TestEmitMultipleBodyParameters(t *testing.T) {
	doc := &model.Document{
		Paths: []model.Path{{
			Path: "/items",
			Operations: []model.Operation{{
				Method: model.MethodPost,
				Path:   "/items",
				Parameters: []model.Parameter{
					{Name: "first", In: model.LocationBody, Schema: &model.Property{Ref: "#/definitions/Item"}},
					{Name: "second", In: model.LocationBody, Schema: &model.Property{Ref: "#/definitions/Other"}},
				},
			}},
		}},
	}

	decl := New(logging.Discard()).Emit(doc, "Ns")
	body := lookup(t, &decl.Body, "POST /items", "parameters", "body")
	require.Equal(t, "NsDefinitions['Item']", body.Type)
}

func TestEmitFallsBackToSummary(t *testing.T) {
	doc := &model.Document{
		Paths: []model.Path{{
			Path: "/ping",
			Operations: []model.Operation{{
				Method:  model.MethodGet,
				Path:    "/ping",
				Summary: "Ping",
			}},
		}},
	}

	decl := New(logging.Discard()).Emit(doc, "Ns")
	require.Equal(t, "/** Ping */", lookup(t, &decl.Body, "GET /ping").Comment)
}
