package typescript

import "strings"

// Declaration is one exported interface. Comments on declarations and fields
// hold rendered comment text, see DocComment.
type Declaration struct {
	Name    string
	Comment string
	Body    Record
}

// Record is the body of an interface or of a nested structural type.
type Record struct {
	Fields []Field
}

// Field is one member of a Record. Either Type or Record is set.
type Field struct {
	Name     string
	Quoted   bool
	Optional bool
	Comment  string
	Type     string
	Record   *Record
}

func (r *Record) Add(f Field) {
	r.Fields = append(r.Fields, f)
}

func (r *Record) Len() int {
	return len(r.Fields)
}

// Lookup returns the first field with the given name.
func (r *Record) Lookup(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Key renders the member name.
func (f Field) Key() string {
	if f.Quoted || !IsIdentifier(f.Name) {
		return Quote(f.Name)
	}
	return f.Name
}

// DocComment renders text as a one-line JSDoc comment.
func DocComment(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "*/", "*\\/")
	return "/** " + text + " */"
}
