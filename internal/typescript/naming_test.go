package typescript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/swagts/internal/model"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user-center", "UserCenter"},
		{"core", "Core"},
		{"Core", "Core"},
		{"billing-api-v2", "BillingApiV2"},
		{"userService", "UserService"},
		{"user_service", "User_service"},
		{"a-b-c", "ABC"},
		{"trailing-", "Trailing"},
		{"-leading", "Leading"},
		{"", ""},
		{"édition-x", "ÉditionX"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, PascalCase(tt.input))
		})
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		source   string
		resource string
		expected string
	}{
		{"user-center", "default", "UserCenterDefault"},
		{"core", "pet-store", "CorePetStore"},
		{"billing", "invoices", "BillingInvoices"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			ns := Namespace(tt.source, tt.resource)
			require.Equal(t, tt.expected, ns)
			require.Equal(t, tt.expected+"Definitions", DefinitionsName(ns))
			require.Equal(t, tt.expected+"Actions", ActionsName(ns))
		})
	}
}

func TestActionKey(t *testing.T) {
	tests := []struct {
		method   model.Method
		path     string
		expected string
	}{
		{model.MethodGet, "/users/{id}", "GET /users/:id"},
		{model.MethodPost, "/users", "POST /users"},
		{model.MethodPut, "/orgs/{orgId}/users/{userId}", "PUT /orgs/:orgId/users/:userId"},
		{model.Method("delete"), "/users/{id}/", "DELETE /users/:id/"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, ActionKey(tt.method, tt.path))
		})
	}
}

func TestIsIDName(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"id", true},
		{"ID", true},
		{"userId", true},
		{"USER_ID", true},
		{"valid", true},
		{"count", false},
		{"name", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, IsIDName(tt.name))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"name", true},
		{"_private", true},
		{"$ref", true},
		{"a1", true},
		{"1a", false},
		{"zip-code", false},
		{"error.code", false},
		{"GET /users", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, IsIdentifier(tt.input))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", `'User'`},
		{"it's", `'it\'s'`},
		{`a\b`, `'a\\b'`},
		{"line\nbreak", `'line\nbreak'`},
		{"", `''`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, Quote(tt.input))
		})
	}
}

func TestFieldKey(t *testing.T) {
	require.Equal(t, "name", Field{Name: "name"}.Key())
	require.Equal(t, "'name'", Field{Name: "name", Quoted: true}.Key())
	require.Equal(t, "'zip-code'", Field{Name: "zip-code"}.Key())
}

func TestDocComment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   \n\t", ""},
		{"User name", "/** User name */"},
		{"multi\n  line\ttext", "/** multi line text */"},
		{"closes */ early", `/** closes *\/ early */`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, DocComment(tt.input))
		})
	}
}
