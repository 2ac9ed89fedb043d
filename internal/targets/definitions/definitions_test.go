package definitions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/logging"
	"github.com/kolah/swagts/internal/model"
	"github.com/kolah/swagts/internal/typescript"
)

func userDocument() *model.Document {
	return &model.Document{
		Info: model.Info{Title: "Users"},
		Definitions: []model.Schema{
			{
				Name: "User",
				Type: model.TypeObject,
				Properties: []model.Property{
					{Name: "id", Type: model.TypeInteger},
					{Name: "name", Type: model.TypeString, Description: "Display name"},
					{Name: "age", Type: model.TypeInteger},
					{Name: "groupIds", Type: model.TypeArray, Items: &model.Items{Type: model.TypeInteger}},
					{Name: "friends", Type: model.TypeArray, Items: &model.Items{Ref: "#/definitions/User"}},
					{Name: "address", Ref: "#/definitions/Address"},
					{Name: "active", Type: model.TypeBoolean},
				},
				Required: []string{"id", "ghost"},
			},
			{
				Name: "Status",
				Type: model.TypeString,
			},
			{
				Name: "Address",
				Properties: []model.Property{
					{Name: "zip-code", Type: model.TypeString},
				},
			},
		},
	}
}

func field(t *testing.T, rec *typescript.Record, name string) typescript.Field {
	t.Helper()
	f, ok := rec.Lookup(name)
	require.True(t, ok, "field %q not found", name)
	return f
}

func TestEmit(t *testing.T) {
	target := New(config.ScalarModelsSkip, logging.Discard())
	decl := target.Emit(userDocument(), "CoreUsers")

	require.Equal(t, "CoreUsersDefinitions", decl.Name)
	require.Equal(t, 2, decl.Body.Len())

	user := field(t, &decl.Body, "User")
	require.True(t, user.Quoted)
	require.NotNil(t, user.Record)
	require.Equal(t, 7, user.Record.Len())

	tests := []struct {
		name     string
		optional bool
		typ      string
	}{
		{name: "id", optional: false, typ: "string | number"},
		{name: "name", optional: true, typ: "string"},
		{name: "age", optional: true, typ: "number"},
		{name: "groupIds", optional: true, typ: "unknown[]"},
		{name: "friends", optional: true, typ: "CoreUsersDefinitions['User'][]"},
		{name: "address", optional: true, typ: "CoreUsersDefinitions['Address']"},
		{name: "active", optional: true, typ: "boolean"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := user.Record.Fields[i]
			require.Equal(t, tt.name, f.Name)
			require.Equal(t, tt.optional, f.Optional)
			require.Equal(t, tt.typ, f.Type)
		})
	}

	require.Equal(t, "/** Display name */", user.Record.Fields[1].Comment)

	address := field(t, &decl.Body, "Address")
	require.Equal(t, "'zip-code'", address.Record.Fields[0].Key())
}

func TestEmitRequiredSet(t *testing.T) {
	doc := &model.Document{
		Definitions: []model.Schema{{
			Name: "Pet",
			Type: model.TypeObject,
			Properties: []model.Property{
				{Name: "a", Type: model.TypeString},
				{Name: "b", Type: model.TypeString},
				{Name: "c", Type: model.TypeString},
			},
			Required: []string{"c", "a"},
		}},
	}

	decl := New("", logging.Discard()).Emit(doc, "Ns")
	pet := field(t, &decl.Body, "Pet")

	require.False(t, field(t, pet.Record, "a").Optional)
	require.True(t, field(t, pet.Record, "b").Optional)
	require.False(t, field(t, pet.Record, "c").Optional)
}

func TestEmitScalarModels(t *testing.T) {
	tests := []struct {
		name         string
		scalarModels string
		wantStatus   bool
	}{
		{name: "skip", scalarModels: config.ScalarModelsSkip, wantStatus: false},
		{name: "default", scalarModels: "", wantStatus: false},
		{name: "alias", scalarModels: config.ScalarModelsAlias, wantStatus: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := New(tt.scalarModels, logging.Discard()).Emit(userDocument(), "Ns")
			status, ok := decl.Body.Lookup("Status")
			require.Equal(t, tt.wantStatus, ok)
			if ok {
				require.Equal(t, "string", status.Type)
				require.Nil(t, status.Record)
			}
		})
	}
}

func TestEmitEmptyDocument(t *testing.T) {
	decl := New("", logging.Discard()).Emit(&model.Document{}, "Empty")
	require.Equal(t, "EmptyDefinitions", decl.Name)
	require.Zero(t, decl.Body.Len())
}

func TestEmitPreservesOrder(t *testing.T) {
	doc := &model.Document{
		Definitions: []model.Schema{
			{Name: "Zeta", Type: model.TypeObject},
			{Name: "Alpha", Type: model.TypeObject},
			{Name: "Mid", Type: model.TypeObject},
		},
	}

	decl := New("", logging.Discard()).Emit(doc, "Ns")
	var names []string
	for _, f := range decl.Body.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)
}
