package typescript

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kolah/swagts/internal/model"
)

// Namespace derives the prefix of every interface generated for a resource.
// Both parts are pascal-cased independently and concatenated, so distinct
// (source, name) pairs are expected to be unique upstream; see
// NamespaceRegistry for the collision check.
func Namespace(source, resource string) string {
	return PascalCase(source) + PascalCase(resource)
}

// PascalCase uppercases the first letter of every hyphen-delimited segment and
// joins the segments. The rest of each segment is left untouched.
func PascalCase(s string) string {
	var result strings.Builder
	for _, segment := range strings.Split(s, "-") {
		result.WriteString(capitalize(segment))
	}
	return result.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func DefinitionsName(namespace string) string {
	return namespace + "Definitions"
}

func ActionsName(namespace string) string {
	return namespace + "Actions"
}

var pathParamRe = regexp.MustCompile(`\{([^}]+)\}`)

// ColonPath rewrites {param} placeholders into :param.
func ColonPath(path string) string {
	return pathParamRe.ReplaceAllString(path, ":$1")
}

// ActionKey is the member name of one operation in an Actions interface,
// e.g. "GET /users/:id".
func ActionKey(method model.Method, path string) string {
	return strings.ToUpper(string(method)) + " " + ColonPath(path)
}

// IsIDName reports whether a field name triggers identifier widening.
func IsIDName(name string) bool {
	return strings.Contains(strings.ToLower(name), "id")
}

// IsIdentifier reports whether s can be used as a bare property name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Quote renders s as a single-quoted string literal. The formatter settles the
// final quote style.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
