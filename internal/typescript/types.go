package typescript

import (
	"strings"

	"github.com/kolah/swagts/internal/model"
)

const (
	Unknown     = "unknown"
	StringType  = "string"
	NumberType  = "number"
	BooleanType = "boolean"
	// IDType is the widened type of identifier-like numeric fields, which
	// services serialize inconsistently.
	IDType = "string | number"
)

// IndexedAccess references a model inside the namespace's Definitions
// interface, e.g. PetStoreDefinitions['User'].
func IndexedAccess(namespace, ref string) string {
	return DefinitionsName(namespace) + "[" + Quote(model.RefName(ref)) + "]"
}

// MapPropertyType maps one property descriptor to a type fragment. Shapes that
// are not recognized map to Unknown.
func MapPropertyType(p *model.Property, namespace string) string {
	if p == nil {
		return Unknown
	}

	switch p.Type {
	case model.TypeString:
		return StringType
	case model.TypeInteger, model.TypeNumber:
		if IsIDName(p.Name) {
			return IDType
		}
		return NumberType
	case model.TypeBoolean:
		return BooleanType
	case model.TypeArray:
		if p.Items != nil && p.Items.Ref != "" {
			return IndexedAccess(namespace, p.Items.Ref) + "[]"
		}
		return Unknown + "[]"
	case "":
		if p.Ref != "" {
			return IndexedAccess(namespace, p.Ref)
		}
	}

	return Unknown
}

// MapParameterType maps a query or path parameter to a type fragment.
func MapParameterType(p model.Parameter) string {
	switch p.Type {
	case model.TypeString, model.TypeInteger, model.TypeNumber, model.TypeBoolean:
		if IsIDName(p.Name) {
			return IDType
		}
		return ScalarType(p.Type)
	case model.TypeArray:
		if p.Items == nil {
			return Unknown + "[]"
		}
		switch p.Items.Type {
		case model.TypeString:
			if len(p.Items.Enum) > 0 {
				return "(" + LiteralUnion(p.Items.Enum) + ")[]"
			}
			return StringType + "[]"
		case model.TypeInteger, model.TypeNumber:
			return NumberType + "[]"
		}
		return Unknown + "[]"
	}
	return Unknown
}

// ScalarType maps a primitive kind without any name heuristics.
func ScalarType(t model.SchemaType) string {
	switch t {
	case model.TypeString:
		return StringType
	case model.TypeInteger, model.TypeNumber:
		return NumberType
	case model.TypeBoolean:
		return BooleanType
	default:
		return Unknown
	}
}

// LiteralUnion renders values as a union of string literal types.
func LiteralUnion(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v)
	}
	return strings.Join(quoted, " | ")
}

// IsUnknown reports whether a mapped fragment degraded to an opaque type.
func IsUnknown(fragment string) bool {
	return fragment == Unknown || fragment == Unknown+"[]"
}
