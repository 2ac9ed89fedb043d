package model

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the verbs compiled into action types, in emission order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

type Operation struct {
	ID          string
	Method      Method
	Path        string
	Summary     string
	Description string
	Parameters  []Parameter
	Responses   []Response
}

type ParameterLocation string

const (
	LocationQuery    ParameterLocation = "query"
	LocationBody     ParameterLocation = "body"
	LocationPath     ParameterLocation = "path"
	LocationHeader   ParameterLocation = "header"
	LocationFormData ParameterLocation = "formData"
)

// Parameter is one operation input. Name may contain a dot to denote a
// conceptual sub-field such as error.code.
type Parameter struct {
	Name        string
	In          ParameterLocation
	Description string
	Required    bool
	Type        SchemaType
	Items       *Items
	Enum        []string
	// Schema is set for body parameters.
	Schema *Property
}

type Response struct {
	StatusCode  string
	Description string
	Schema      *Property
}
