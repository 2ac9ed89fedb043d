package loader

import (
	"github.com/kolah/swagts/internal/model"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	"go.yaml.in/yaml/v4"
)

// Transform converts a loaded document into the compiler's model and attaches
// the resource it was fetched for.
func Transform(result *Result, resource model.Resource) (*model.Document, error) {
	doc := result.Document.Model

	out := &model.Document{
		Info:     transformInfo(doc.Info),
		Resource: resource,
	}

	if doc.Definitions != nil && doc.Definitions.Definitions != nil {
		for name, proxy := range doc.Definitions.Definitions.FromOldest() {
			out.Definitions = append(out.Definitions, transformSchema(name, proxy))
		}
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			out.Paths = append(out.Paths, transformPath(pathStr, pathItem))
		}
	}

	return out, nil
}

func transformInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	return model.Info{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	}
}

func transformPath(pathStr string, pathItem *v2.PathItem) model.Path {
	path := model.Path{Path: pathStr}

	methods := []struct {
		method model.Method
		op     *v2.Operation
	}{
		{model.MethodGet, pathItem.Get},
		{model.MethodPost, pathItem.Post},
		{model.MethodPut, pathItem.Put},
		{model.MethodDelete, pathItem.Delete},
	}

	var shared []model.Parameter
	for _, p := range pathItem.Parameters {
		shared = append(shared, transformParameter(p))
	}

	for _, m := range methods {
		if m.op == nil {
			continue
		}
		path.Operations = append(path.Operations, transformOperation(m.method, pathStr, m.op, shared))
	}

	return path
}

func transformOperation(method model.Method, path string, op *v2.Operation, shared []model.Parameter) model.Operation {
	operation := model.Operation{
		ID:          op.OperationId,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
	}

	var own []model.Parameter
	for _, p := range op.Parameters {
		own = append(own, transformParameter(p))
	}
	operation.Parameters = mergeParameters(shared, own)

	if op.Responses != nil {
		if op.Responses.Codes != nil {
			for code, resp := range op.Responses.Codes.FromOldest() {
				operation.Responses = append(operation.Responses, transformResponse(code, resp))
			}
		}
		if op.Responses.Default != nil {
			operation.Responses = append(operation.Responses, transformResponse("default", op.Responses.Default))
		}
	}

	return operation
}

// mergeParameters applies path-level parameters to an operation. An operation
// parameter with the same name and location replaces the shared one in place.
func mergeParameters(shared, own []model.Parameter) []model.Parameter {
	if len(shared) == 0 {
		return own
	}
	merged := make([]model.Parameter, 0, len(shared)+len(own))
	used := make(map[int]bool)
	for _, s := range shared {
		replaced := false
		for i, o := range own {
			if o.Name == s.Name && o.In == s.In {
				merged = append(merged, o)
				used[i] = true
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, s)
		}
	}
	for i, o := range own {
		if !used[i] {
			merged = append(merged, o)
		}
	}
	return merged
}

func transformParameter(p *v2.Parameter) model.Parameter {
	param := model.Parameter{
		Name:        p.Name,
		In:          model.ParameterLocation(p.In),
		Description: p.Description,
		Required:    boolPtr(p.Required),
		Type:        model.SchemaType(p.Type),
		Enum:        nodeValues(p.Enum),
	}

	if p.Items != nil {
		param.Items = &model.Items{
			Type: model.SchemaType(p.Items.Type),
			Enum: nodeValues(p.Items.Enum),
		}
	}

	if p.Schema != nil {
		prop := transformProperty(p.Name, p.Schema)
		param.Schema = &prop
	}

	return param
}

func transformResponse(code string, resp *v2.Response) model.Response {
	response := model.Response{
		StatusCode:  code,
		Description: resp.Description,
	}
	if resp.Schema != nil {
		prop := transformProperty("", resp.Schema)
		response.Schema = &prop
	}
	return response
}

func transformSchema(name string, proxy *base.SchemaProxy) model.Schema {
	schema := model.Schema{Name: name}

	s := proxy.Schema()
	if s == nil {
		return schema
	}

	schema.Description = s.Description
	if len(s.Type) > 0 {
		schema.Type = model.SchemaType(s.Type[0])
	}

	if s.Properties != nil {
		for propName, propProxy := range s.Properties.FromOldest() {
			schema.Properties = append(schema.Properties, transformProperty(propName, propProxy))
		}
	}

	schema.Required = s.Required

	return schema
}

func transformProperty(name string, proxy *base.SchemaProxy) model.Property {
	prop := model.Property{Name: name}

	// Siblings of a reference are ignored in swagger 2.0.
	if ref := proxy.GetReference(); ref != "" {
		prop.Ref = ref
		return prop
	}

	s := proxy.Schema()
	if s == nil {
		return prop
	}

	prop.Description = s.Description
	if len(s.Type) > 0 {
		prop.Type = model.SchemaType(s.Type[0])
	}

	if s.Items != nil && s.Items.IsA() && s.Items.A != nil {
		prop.Items = transformItems(s.Items.A)
	}

	return prop
}

func transformItems(proxy *base.SchemaProxy) *model.Items {
	if ref := proxy.GetReference(); ref != "" {
		return &model.Items{Ref: ref}
	}

	items := &model.Items{}
	s := proxy.Schema()
	if s == nil {
		return items
	}
	if len(s.Type) > 0 {
		items.Type = model.SchemaType(s.Type[0])
	}
	items.Enum = nodeValues(s.Enum)
	return items
}

func nodeValues(nodes []*yaml.Node) []string {
	var values []string
	for _, n := range nodes {
		if n != nil && n.Kind == yaml.ScalarNode {
			values = append(values, n.Value)
		}
	}
	return values
}

func boolPtr(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
