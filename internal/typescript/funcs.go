package typescript

import (
	"strings"
	"text/template"
)

// TemplateFuncs exposes rendering helpers to the declaration templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"key":             func(f Field) string { return f.Key() },
		"docComment":      DocComment,
		"quote":           Quote,
		"pascalCase":      PascalCase,
		"definitionsName": DefinitionsName,
		"actionsName":     ActionsName,
		"join":            strings.Join,
		"upper":           strings.ToUpper,
		"lower":           strings.ToLower,
	}
}
