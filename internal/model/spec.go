package model

// Resource identifies one discovered API endpoint within a named source group.
// The (Source, Name) pair is unique within a compilation run and keys every
// derived identifier and output path.
type Resource struct {
	Source         string
	Name           string
	URL            string
	SwaggerVersion string
	Location       string
}

// Key returns the output key of the resource.
func (r Resource) Key() string {
	return r.Source + "/" + r.Name
}

// Document is one API description unit produced by the document source.
// It is treated as immutable once built.
type Document struct {
	Info        Info
	Definitions []Schema
	Paths       []Path
	Resource    Resource
}

type Info struct {
	Title       string
	Description string
	Version     string
}

// Path groups the operations registered under one URL path template.
type Path struct {
	Path       string
	Operations []Operation
}

// SchemaByName returns the named model schema or nil.
func (d *Document) SchemaByName(name string) *Schema {
	for i := range d.Definitions {
		if d.Definitions[i].Name == name {
			return &d.Definitions[i]
		}
	}
	return nil
}
