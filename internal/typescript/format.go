package typescript

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/evanw/esbuild/pkg/api"
)

// FormatOptions mirrors the style switches of the formatter configuration.
type FormatOptions struct {
	// Semi terminates members and type aliases with a semicolon.
	Semi bool
	// SingleQuote selects single-quoted string literals.
	SingleQuote bool
}

// SyntaxError reports candidate source that is not valid TypeScript.
type SyntaxError struct {
	Line   int
	Column int
	Text   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Text)
}

// Format checks src against the TypeScript grammar and reprints it in
// canonical layout. Only declaration sources made of interfaces and type
// aliases are supported.
func Format(src []byte, opts FormatOptions) ([]byte, error) {
	if err := checkSyntax(src); err != nil {
		return nil, err
	}

	toks, err := tokenize(string(src))
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	file, err := p.parseFile()
	if err != nil {
		return nil, err
	}

	pr := &printer{opts: opts}
	pr.file(file)
	return []byte(pr.b.String()), nil
}

func checkSyntax(src []byte) error {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:   api.LoaderTS,
		LogLevel: api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}
	msg := result.Errors[0]
	se := &SyntaxError{Text: msg.Text}
	if msg.Location != nil {
		se.Line = msg.Location.Line
		se.Column = msg.Location.Column + 1
	}
	return se
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPunct
	tokComment
)

// token holds raw text, except for strings where text is the literal content
// with quote escapes removed and every other escape kept verbatim.
type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

const punctuation = "{}[]()<>:;,?|&.=-"

func tokenize(s string) ([]token, error) {
	var toks []token
	line, col := 1, 1
	i := 0

	advance := func(n int) {
		for _, r := range s[i : i+n] {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += n
	}

	for i < len(s) {
		c := s[i]
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			advance(1)
		case strings.HasPrefix(s[i:], "//"):
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				end = len(s) - i
			}
			toks = append(toks, token{kind: tokComment, text: strings.TrimRight(s[i:i+end], " \t\r"), line: line, col: col})
			advance(end)
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return nil, &SyntaxError{Line: line, Column: col, Text: "unterminated comment"}
			}
			n := end + 4
			toks = append(toks, token{kind: tokComment, text: s[i : i+n], line: line, col: col})
			advance(n)
		case c == '\'' || c == '"':
			text, n, ok := scanString(s[i:])
			if !ok {
				return nil, &SyntaxError{Line: line, Column: col, Text: "unterminated string literal"}
			}
			toks = append(toks, token{kind: tokString, text: text, line: line, col: col})
			advance(n)
		case r == '_' || r == '$' || unicode.IsLetter(r):
			n := size
			for i+n < len(s) {
				next, nsize := utf8.DecodeRuneInString(s[i+n:])
				if next != '_' && next != '$' && !unicode.IsLetter(next) && !unicode.IsDigit(next) {
					break
				}
				n += nsize
			}
			toks = append(toks, token{kind: tokIdent, text: s[i : i+n], line: line, col: col})
			advance(n)
		case c >= '0' && c <= '9':
			n := 1
			for i+n < len(s) && (s[i+n] == '.' || s[i+n] == '_' || isAlnum(s[i+n])) {
				n++
			}
			toks = append(toks, token{kind: tokNumber, text: s[i : i+n], line: line, col: col})
			advance(n)
		case strings.IndexByte(punctuation, c) >= 0:
			toks = append(toks, token{kind: tokPunct, text: string(c), line: line, col: col})
			advance(1)
		default:
			return nil, &SyntaxError{Line: line, Column: col, Text: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	return append(toks, token{kind: tokEOF, line: line, col: col}), nil
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func scanString(s string) (string, int, bool) {
	quote := s[0]
	var b strings.Builder
	for j := 1; j < len(s); j++ {
		ch := s[j]
		switch {
		case ch == '\\' && j+1 < len(s):
			next := s[j+1]
			if next == '\'' || next == '"' {
				b.WriteByte(next)
			} else {
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			j++
		case ch == quote:
			return b.String(), j + 1, true
		case ch == '\n':
			return "", 0, false
		default:
			b.WriteByte(ch)
		}
	}
	return "", 0, false
}

type fileNode struct {
	decls    []*declNode
	trailing []string
}

type declNode struct {
	comments []string
	export   bool
	declare  bool
	name     string
	body     *recordNode
	alias    typeExpr
}

type recordNode struct {
	members  []*memberNode
	trailing []string
}

type memberNode struct {
	comments []string
	key      token
	optional bool
	typ      typeExpr
}

type typeExpr interface{}

type (
	unionType struct {
		op    string
		parts []typeExpr
	}
	namedType struct {
		name string
		args []typeExpr
	}
	literalType struct{ tok token }
	recordType  struct{ rec *recordNode }
	parenType   struct{ inner typeExpr }
	arrayType   struct{ elem typeExpr }
	indexedType struct {
		obj   typeExpr
		index token
	}
)

type parser struct {
	toks []token
	pos  int
}

func (p *parser) comments() []string {
	var out []string
	for p.toks[p.pos].kind == tokComment {
		out = append(out, p.toks[p.pos].text)
		p.pos++
	}
	return out
}

// skip returns the index of the next non-comment token. Comments are only
// consumed by comments(), so they stay attached to the following member.
func (p *parser) skip() int {
	i := p.pos
	for p.toks[i].kind == tokComment {
		i++
	}
	return i
}

func (p *parser) peek() token {
	return p.toks[p.skip()]
}

func (p *parser) next() token {
	i := p.skip()
	t := p.toks[i]
	if t.kind != tokEOF {
		i++
	}
	p.pos = i
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Column: t.col, Text: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) error {
	t := p.next()
	if !t.is(tokPunct, text) {
		return p.errorf(t, "expected %q, found %q", text, t.text)
	}
	return nil
}

func (p *parser) accept(text string) bool {
	return p.acceptKind(tokPunct, text)
}

func (p *parser) acceptKind(kind tokenKind, text string) bool {
	if p.peek().is(kind, text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) ident() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", p.errorf(t, "expected identifier, found %q", t.text)
	}
	return t.text, nil
}

func (p *parser) parseFile() (*fileNode, error) {
	f := &fileNode{}
	for {
		comments := p.comments()
		if p.toks[p.pos].kind == tokEOF {
			f.trailing = comments
			return f, nil
		}

		d := &declNode{comments: comments}
		d.export = p.acceptKind(tokIdent, "export")
		d.declare = p.acceptKind(tokIdent, "declare")

		kw := p.next()
		switch {
		case kw.is(tokIdent, "interface"):
			name, err := p.ident()
			if err != nil {
				return nil, err
			}
			d.name = name
			if d.body, err = p.parseRecord(); err != nil {
				return nil, err
			}
		case kw.is(tokIdent, "type"):
			name, err := p.ident()
			if err != nil {
				return nil, err
			}
			d.name = name
			if err := p.expect("="); err != nil {
				return nil, err
			}
			if d.alias, err = p.parseType(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(kw, "unsupported declaration %q", kw.text)
		}
		p.accept(";")
		f.decls = append(f.decls, d)
	}
}

func (p *parser) parseRecord() (*recordNode, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	rec := &recordNode{}
	for {
		comments := p.comments()
		if p.accept("}") {
			rec.trailing = comments
			return rec, nil
		}

		key := p.next()
		if key.kind != tokIdent && key.kind != tokString && key.kind != tokNumber {
			return nil, p.errorf(key, "expected member name, found %q", key.text)
		}
		m := &memberNode{comments: comments, key: key}
		m.optional = p.accept("?")
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		m.typ = typ
		if !p.accept(";") {
			p.accept(",")
		}
		rec.members = append(rec.members, m)
	}
}

func (p *parser) parseType() (typeExpr, error) {
	p.accept("|")
	return p.parseBinary("|", func() (typeExpr, error) {
		p.accept("&")
		return p.parseBinary("&", p.parsePostfix)
	})
}

func (p *parser) parseBinary(op string, operand func() (typeExpr, error)) (typeExpr, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	parts := []typeExpr{first}
	for p.accept(op) {
		next, err := operand()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return first, nil
	}
	return &unionType{op: op, parts: parts}, nil
}

func (p *parser) parsePostfix() (typeExpr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.accept("[") {
		if p.accept("]") {
			base = &arrayType{elem: base}
			continue
		}
		idx := p.next()
		if idx.kind != tokString && idx.kind != tokNumber {
			return nil, p.errorf(idx, "unsupported index %q", idx.text)
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		base = &indexedType{obj: base, index: idx}
	}
	return base, nil
}

func (p *parser) parsePrimary() (typeExpr, error) {
	t := p.peek()
	switch {
	case t.is(tokPunct, "{"):
		rec, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		return &recordType{rec: rec}, nil
	case t.is(tokPunct, "("):
		p.next()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &parenType{inner: inner}, nil
	case t.is(tokPunct, "-"):
		p.next()
		num := p.next()
		if num.kind != tokNumber {
			return nil, p.errorf(num, "expected number, found %q", num.text)
		}
		num.text = "-" + num.text
		return &literalType{tok: num}, nil
	case t.kind == tokString || t.kind == tokNumber:
		p.next()
		return &literalType{tok: t}, nil
	case t.kind == tokIdent:
		p.next()
		named := &namedType{name: t.text}
		for p.accept(".") {
			part, err := p.ident()
			if err != nil {
				return nil, err
			}
			named.name += "." + part
		}
		if p.accept("<") {
			for {
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				named.args = append(named.args, arg)
				if !p.accept(",") {
					break
				}
			}
			if err := p.expect(">"); err != nil {
				return nil, err
			}
		}
		return named, nil
	}
	return nil, p.errorf(t, "unsupported type syntax %q", t.text)
}

type printer struct {
	opts  FormatOptions
	b     strings.Builder
	depth int
}

func (pr *printer) indent() string {
	return strings.Repeat("  ", pr.depth)
}

func (pr *printer) semi() string {
	if pr.opts.Semi {
		return ";"
	}
	return ""
}

func (pr *printer) quote(content string) string {
	q := byte('"')
	if pr.opts.SingleQuote {
		q = '\''
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			b.WriteByte(c)
			b.WriteByte(content[i+1])
			i++
		case c == q:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func (pr *printer) file(f *fileNode) {
	for i, d := range f.decls {
		if i > 0 {
			pr.b.WriteString("\n")
		}
		pr.comments(d.comments)
		if d.export {
			pr.b.WriteString("export ")
		}
		if d.declare {
			pr.b.WriteString("declare ")
		}
		if d.body != nil {
			pr.b.WriteString("interface " + d.name + " ")
			pr.record(d.body)
			pr.b.WriteString("\n")
			continue
		}
		pr.b.WriteString("type " + d.name + " = ")
		pr.typ(d.alias)
		pr.b.WriteString(pr.semi() + "\n")
	}
	if len(f.trailing) > 0 {
		if len(f.decls) > 0 {
			pr.b.WriteString("\n")
		}
		pr.comments(f.trailing)
	}
}

func (pr *printer) comments(comments []string) {
	for _, c := range comments {
		lines := strings.Split(c, "\n")
		pr.b.WriteString(pr.indent() + strings.TrimSpace(lines[0]) + "\n")
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "*") {
				line = " " + line
			}
			pr.b.WriteString(pr.indent() + line + "\n")
		}
	}
}

func (pr *printer) record(rec *recordNode) {
	if len(rec.members) == 0 && len(rec.trailing) == 0 {
		pr.b.WriteString("{}")
		return
	}
	pr.b.WriteString("{\n")
	pr.depth++
	for _, m := range rec.members {
		pr.comments(m.comments)
		pr.b.WriteString(pr.indent())
		pr.key(m.key)
		if m.optional {
			pr.b.WriteString("?")
		}
		pr.b.WriteString(": ")
		pr.typ(m.typ)
		pr.b.WriteString(pr.semi() + "\n")
	}
	pr.comments(rec.trailing)
	pr.depth--
	pr.b.WriteString(pr.indent() + "}")
}

func (pr *printer) key(t token) {
	if t.kind == tokString {
		pr.b.WriteString(pr.quote(t.text))
		return
	}
	pr.b.WriteString(t.text)
}

func (pr *printer) typ(t typeExpr) {
	switch v := t.(type) {
	case *unionType:
		for i, part := range v.parts {
			if i > 0 {
				pr.b.WriteString(" " + v.op + " ")
			}
			pr.typ(part)
		}
	case *namedType:
		pr.b.WriteString(v.name)
		if len(v.args) > 0 {
			pr.b.WriteString("<")
			for i, arg := range v.args {
				if i > 0 {
					pr.b.WriteString(", ")
				}
				pr.typ(arg)
			}
			pr.b.WriteString(">")
		}
	case *literalType:
		pr.key(v.tok)
	case *recordType:
		pr.record(v.rec)
	case *parenType:
		pr.b.WriteString("(")
		pr.typ(v.inner)
		pr.b.WriteString(")")
	case *arrayType:
		pr.typ(v.elem)
		pr.b.WriteString("[]")
	case *indexedType:
		pr.typ(v.obj)
		pr.b.WriteString("[")
		pr.key(v.index)
		pr.b.WriteString("]")
	}
}
