package definitions

import (
	"log/slog"

	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/model"
	"github.com/kolah/swagts/internal/typescript"
)

// Target emits the <namespace>Definitions interface of a document: one
// nested record per object model, keyed by the raw model name.
type Target struct {
	scalarModels string
	logger       *slog.Logger
}

func New(scalarModels string, logger *slog.Logger) *Target {
	if scalarModels == "" {
		scalarModels = config.ScalarModelsSkip
	}
	return &Target{scalarModels: scalarModels, logger: logger}
}

func (t *Target) Name() string {
	return "definitions"
}

// Emit builds the declaration. Models that are neither objects nor aliased
// scalars produce no field.
func (t *Target) Emit(doc *model.Document, namespace string) typescript.Declaration {
	decl := typescript.Declaration{
		Name:    typescript.DefinitionsName(namespace),
		Comment: typescript.DocComment(doc.Info.Title),
	}

	for _, schema := range doc.Definitions {
		switch {
		case schema.IsObject():
			decl.Body.Add(typescript.Field{
				Name:    schema.Name,
				Quoted:  true,
				Comment: typescript.DocComment(schema.Description),
				Record:  t.record(schema, namespace),
			})
		case schema.Type == model.TypeString && t.scalarModels == config.ScalarModelsAlias:
			decl.Body.Add(typescript.Field{
				Name:    schema.Name,
				Quoted:  true,
				Comment: typescript.DocComment(schema.Description),
				Type:    typescript.StringType,
			})
		default:
			t.logger.Debug("skipping model",
				"namespace", namespace,
				"model", schema.Name,
				"type", schema.Type)
		}
	}

	return decl
}

func (t *Target) record(schema model.Schema, namespace string) *typescript.Record {
	rec := &typescript.Record{}
	for _, prop := range schema.Properties {
		fragment := typescript.MapPropertyType(&prop, namespace)
		if typescript.IsUnknown(fragment) {
			t.logger.Debug("property mapped to unknown",
				"namespace", namespace,
				"model", schema.Name,
				"property", prop.Name,
				"type", prop.Type)
		}
		rec.Add(typescript.Field{
			Name:     prop.Name,
			Optional: !schema.IsRequired(prop.Name),
			Comment:  typescript.DocComment(prop.Description),
			Type:     fragment,
		})
	}
	return rec
}
