package model

import "strings"

// DefinitionsRefPrefix is stripped from schema references before they are used
// as keys into a document's definitions.
const DefinitionsRefPrefix = "#/definitions/"

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema is a named model. Properties keep the insertion order of the source
// document.
type Schema struct {
	Name        string
	Description string
	Type        SchemaType
	Properties  []Property
	Required    []string
}

// IsRequired reports whether the property name is listed in the required set.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// IsObject reports whether the schema is emitted as a structural record.
// Schemas with properties but no declared type are treated as objects.
func (s *Schema) IsObject() bool {
	return s.Type == TypeObject || (s.Type == "" && len(s.Properties) > 0)
}

// Property describes one field. Exactly one of Type or Ref is meaningful for
// scalar descriptors; arrays carry Items instead.
type Property struct {
	Name        string
	Description string
	Type        SchemaType
	Ref         string
	Items       *Items
}

// Items is the element shape of an array descriptor.
type Items struct {
	Type SchemaType
	Ref  string
	Enum []string
}

// RefName strips the definitions prefix from a reference.
func RefName(ref string) string {
	return strings.TrimPrefix(ref, DefinitionsRefPrefix)
}
