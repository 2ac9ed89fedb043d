package actions

import (
	"log/slog"
	"strings"

	"github.com/kolah/swagts/internal/model"
	"github.com/kolah/swagts/internal/typescript"
)

// InternalPrefix marks paths that are never exposed as actions.
const InternalPrefix = "/api"

const successStatus = "200"

// Target emits the <namespace>Actions interface of a document, one member per
// operation keyed by "<VERB> <colon path>".
type Target struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Target {
	return &Target{logger: logger}
}

func (t *Target) Name() string {
	return "actions"
}

func (t *Target) Emit(doc *model.Document, namespace string) typescript.Declaration {
	decl := typescript.Declaration{
		Name:    typescript.ActionsName(namespace),
		Comment: typescript.DocComment(doc.Info.Description),
	}

	for _, path := range doc.Paths {
		if strings.HasPrefix(path.Path, InternalPrefix) {
			t.logger.Debug("skipping internal path", "namespace", namespace, "path", path.Path)
			continue
		}
		for _, op := range path.Operations {
			decl.Body.Add(typescript.Field{
				Name:    typescript.ActionKey(op.Method, path.Path),
				Quoted:  true,
				Comment: typescript.DocComment(operationComment(op)),
				Record:  t.action(op, namespace),
			})
		}
	}

	return decl
}

func operationComment(op model.Operation) string {
	if op.Description != "" {
		return op.Description
	}
	return op.Summary
}

func (t *Target) action(op model.Operation, namespace string) *typescript.Record {
	rec := &typescript.Record{}

	if params := t.parameters(op, namespace); params.Len() > 0 {
		rec.Add(typescript.Field{Name: "parameters", Record: params})
	}
	if len(op.Responses) > 0 {
		rec.Add(typescript.Field{Name: "responses", Record: t.responses(op, namespace)})
	}

	return rec
}

func (t *Target) parameters(op model.Operation, namespace string) *typescript.Record {
	var query, body, path []model.Parameter
	for _, p := range op.Parameters {
		switch p.In {
		case model.LocationQuery:
			query = append(query, p)
		case model.LocationBody:
			body = append(body, p)
		case model.LocationPath:
			path = append(path, p)
		default:
			t.logger.Debug("ignoring parameter",
				"operation", typescript.ActionKey(op.Method, op.Path),
				"parameter", p.Name,
				"in", p.In)
		}
	}

	rec := &typescript.Record{}
	if len(query) > 0 {
		rec.Add(typescript.Field{Name: "query", Record: locationRecord(query)})
	}
	if len(body) > 0 {
		if len(body) > 1 {
			t.logger.Warn("multiple body parameters, using the first",
				"operation", typescript.ActionKey(op.Method, op.Path),
				"count", len(body))
		}
		rec.Add(typescript.Field{
			Name:    "body",
			Comment: typescript.DocComment(body[0].Description),
			Type:    typescript.MapPropertyType(body[0].Schema, namespace),
		})
	}
	if len(path) > 0 {
		rec.Add(typescript.Field{Name: "path", Record: locationRecord(path)})
	}
	return rec
}

// locationRecord emits the query or path parameters of one operation.
func locationRecord(params []model.Parameter) *typescript.Record {
	rec := &typescript.Record{}
	for _, g := range GroupParameters(params) {
		head := g.Head()
		field := typescript.Field{
			Name:     g.Name,
			Quoted:   true,
			Optional: !head.Required,
			Comment:  typescript.DocComment(head.Description),
		}
		if g.Collapsed {
			field.Type = typescript.ScalarType(head.Type)
		} else {
			field.Type = typescript.MapParameterType(head)
		}
		rec.Add(field)
	}
	return rec
}

func (t *Target) responses(op model.Operation, namespace string) *typescript.Record {
	rec := &typescript.Record{}
	for _, resp := range op.Responses {
		fragment := typescript.Unknown
		if resp.StatusCode == successStatus && resp.Schema != nil {
			fragment = typescript.MapPropertyType(resp.Schema, namespace)
		}
		rec.Add(typescript.Field{
			Name:    resp.StatusCode,
			Quoted:  true,
			Comment: typescript.DocComment(resp.Description),
			Type:    fragment,
		})
	}
	return rec
}
