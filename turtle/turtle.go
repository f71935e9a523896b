// Package turtle parses a practical subset of the Turtle serialization into
// term triples.
//
// Supported syntax: @prefix and @base directives, IRI references, prefixed
// names, the "a" keyword, blank node labels, plain / language-tagged /
// datatype-tagged string literals, bare integer, decimal, double and boolean
// literals, predicate-object lists (";"), object lists (","), and comments.
// Collections, anonymous blank nodes, and multi-line strings are not
// supported; ontology documents in this system do not use them.
//
// Parsing is all-or-nothing: a syntax error yields no triples, so a failed
// load never partially populates a store.
package turtle

import (
	"strings"

	"github.com/c360/semgraph/term"
	"github.com/c360/semgraph/vocabulary"
)

// Datatype IRIs assigned to bare literal tokens.
const (
	xsdInteger = vocabulary.XSDBase + "integer"
	xsdDecimal = vocabulary.XSDBase + "decimal"
	xsdDouble  = vocabulary.XSDBase + "double"
	xsdBoolean = vocabulary.XSDBase + "boolean"
)

// Parser parses Turtle documents. The zero value is ready to use; a Parser
// may be reused across documents and is safe for concurrent use.
type Parser struct{}

// NewParser creates a Turtle parser.
func NewParser() *Parser {
	return &Parser{}
}

// Format returns the serialization format name.
func (p *Parser) Format() string {
	return "turtle"
}

// Parse parses a Turtle document and returns its triples in emission order.
// Prefixes must be declared in the document before use. On syntax errors the
// returned triple slice is nil.
func (p *Parser) Parse(data []byte) ([]term.Triple, error) {
	ps := &parser{
		input:    string(data),
		line:     1,
		prefixes: make(map[string]string),
	}
	return ps.parseDocument()
}

// parser holds per-document state.
type parser struct {
	input    string
	pos      int
	line     int
	base     string
	prefixes map[string]string
	triples  []term.Triple
}

func (p *parser) parseDocument() ([]term.Triple, error) {
	for {
		p.skipWhitespace()
		if p.eof() {
			return p.triples, nil
		}

		if p.peek() == '@' {
			if err := p.parseDirective(); err != nil {
				return nil, err
			}
			continue
		}

		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseDirective() error {
	word := p.readWord()
	switch word {
	case "@prefix":
		return p.parsePrefixDirective()
	case "@base":
		return p.parseBaseDirective()
	default:
		return p.errorf("unknown directive %q", word)
	}
}

func (p *parser) parsePrefixDirective() error {
	p.skipWhitespace()

	prefix, ok := p.readPrefixLabel()
	if !ok {
		return p.errorf("expected prefix label in @prefix directive")
	}

	p.skipWhitespace()
	base, err := p.readIRIRef()
	if err != nil {
		return err
	}

	if err := p.expectDot(); err != nil {
		return err
	}

	p.prefixes[prefix] = base
	return nil
}

func (p *parser) parseBaseDirective() error {
	p.skipWhitespace()
	base, err := p.readIRIRef()
	if err != nil {
		return err
	}
	if err := p.expectDot(); err != nil {
		return err
	}
	p.base = base
	return nil
}

// parseStatement parses one subject with its predicate-object list.
func (p *parser) parseStatement() error {
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}

	for {
		p.skipWhitespace()
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}

		for {
			p.skipWhitespace()
			object, err := p.parseObject()
			if err != nil {
				return err
			}

			t := term.Triple{Subject: subject, Predicate: predicate, Object: object}
			if err := t.Validate(); err != nil {
				return p.errorf("invalid triple: %v", err)
			}
			p.triples = append(p.triples, t)

			p.skipWhitespace()
			if p.peek() == ',' {
				p.advance()
				continue
			}
			break
		}

		switch p.peek() {
		case ';':
			p.advance()
			p.skipWhitespace()
			// Trailing ";" before the closing dot is permitted.
			if p.peek() == '.' {
				p.advance()
				return nil
			}
			continue
		case '.':
			p.advance()
			return nil
		default:
			return p.errorf("expected ';', ',' or '.' after object")
		}
	}
}

func (p *parser) parseSubject() (term.Term, error) {
	p.skipWhitespace()
	switch {
	case p.peek() == '<':
		iri, err := p.readIRIRef()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(iri), nil
	case p.hasPrefix("_:"):
		return p.readBlankNode()
	default:
		return p.readPrefixedName()
	}
}

func (p *parser) parsePredicate() (term.Term, error) {
	switch {
	case p.peek() == '<':
		iri, err := p.readIRIRef()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(iri), nil
	case p.peekWordIs("a"):
		p.readWord()
		return term.IRI(vocabulary.RDFType), nil
	default:
		return p.readPrefixedName()
	}
}

func (p *parser) parseObject() (term.Term, error) {
	switch {
	case p.peek() == '<':
		iri, err := p.readIRIRef()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(iri), nil
	case p.peek() == '"':
		return p.readLiteral()
	case p.hasPrefix("_:"):
		return p.readBlankNode()
	case p.peekWordIs("true"), p.peekWordIs("false"):
		return term.TypedLiteral(p.readWord(), xsdBoolean), nil
	case p.peekNumeric():
		return p.readNumericLiteral()
	default:
		return p.readPrefixedName()
	}
}

// readIRIRef reads "<...>" and resolves relative references against @base.
func (p *parser) readIRIRef() (string, error) {
	if p.peek() != '<' {
		return "", p.errorf("expected '<' to open IRI reference")
	}
	p.advance()

	start := p.pos
	for !p.eof() && p.peek() != '>' {
		if p.peek() == '\n' {
			return "", p.errorf("unterminated IRI reference")
		}
		p.advance()
	}
	if p.eof() {
		return "", p.errorf("unterminated IRI reference")
	}

	iri := p.input[start:p.pos]
	p.advance() // consume '>'

	if !vocabulary.IsValidIRI(iri) {
		if p.base == "" {
			return "", p.errorf("relative IRI %q without @base", iri)
		}
		iri = p.base + iri
	}
	return iri, nil
}

func (p *parser) readBlankNode() (term.Term, error) {
	p.pos += 2 // consume "_:"
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return term.Term{}, p.errorf("empty blank node label")
	}
	return term.BlankNode(p.input[start:p.pos]), nil
}

// readPrefixedName reads "prefix:local" and expands it against the
// document's declared prefixes.
func (p *parser) readPrefixedName() (term.Term, error) {
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.advance()
	}
	if p.eof() || p.peek() != ':' {
		return term.Term{}, p.errorf("expected prefixed name or IRI reference")
	}
	prefix := p.input[start:p.pos]
	p.advance() // consume ':'

	localStart := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.advance()
	}
	local := p.input[localStart:p.pos]

	base, declared := p.prefixes[prefix]
	if !declared {
		return term.Term{}, p.errorf("undeclared prefix %q", prefix)
	}
	return term.IRI(base + local), nil
}

// readLiteral reads a quoted string with optional language tag or datatype.
func (p *parser) readLiteral() (term.Term, error) {
	value, err := p.readQuotedString()
	if err != nil {
		return term.Term{}, err
	}

	switch {
	case p.peek() == '@':
		p.advance()
		start := p.pos
		for !p.eof() && (isNameChar(p.peek()) || p.peek() == '-') {
			p.advance()
		}
		if p.pos == start {
			return term.Term{}, p.errorf("empty language tag")
		}
		return term.LangLiteral(value, p.input[start:p.pos]), nil

	case p.hasPrefix("^^"):
		p.pos += 2
		var datatype string
		if p.peek() == '<' {
			datatype, err = p.readIRIRef()
			if err != nil {
				return term.Term{}, err
			}
		} else {
			dt, err := p.readPrefixedName()
			if err != nil {
				return term.Term{}, err
			}
			datatype = dt.Value
		}
		return term.TypedLiteral(value, datatype), nil

	default:
		return term.Literal(value), nil
	}
}

func (p *parser) readQuotedString() (string, error) {
	p.advance() // consume opening '"'

	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		switch c {
		case '"':
			p.advance()
			return sb.String(), nil
		case '\\':
			p.advance()
			if p.eof() {
				return "", p.errorf("unterminated string escape")
			}
			switch p.peek() {
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return "", p.errorf("unsupported string escape %q", string(p.peek()))
			}
			p.advance()
		case '\n':
			return "", p.errorf("unterminated string literal")
		default:
			sb.WriteByte(c)
			p.advance()
		}
	}
	return "", p.errorf("unterminated string literal")
}

func (p *parser) readNumericLiteral() (term.Term, error) {
	start := p.pos
	if p.peek() == '+' || p.peek() == '-' {
		p.advance()
	}
	hasDot := false
	hasExp := false
	for !p.eof() {
		c := p.peek()
		switch {
		case c >= '0' && c <= '9':
			p.advance()
		case c == '.' && !hasDot && !hasExp:
			// A dot followed by a non-digit terminates the statement instead.
			if p.pos+1 >= len(p.input) || !isDigit(p.input[p.pos+1]) {
				goto done
			}
			hasDot = true
			p.advance()
		case (c == 'e' || c == 'E') && !hasExp:
			hasExp = true
			p.advance()
			if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
				p.advance()
			}
		default:
			goto done
		}
	}
done:
	text := p.input[start:p.pos]
	if text == "" || text == "+" || text == "-" {
		return term.Term{}, p.errorf("malformed numeric literal")
	}

	switch {
	case hasExp:
		return term.TypedLiteral(text, xsdDouble), nil
	case hasDot:
		return term.TypedLiteral(text, xsdDecimal), nil
	default:
		return term.TypedLiteral(text, xsdInteger), nil
	}
}

// readPrefixLabel reads "prefix:" from a @prefix directive. The empty
// prefix (":") is allowed.
func (p *parser) readPrefixLabel() (string, bool) {
	start := p.pos
	for !p.eof() && isNameChar(p.peek()) {
		p.advance()
	}
	if p.eof() || p.peek() != ':' {
		return "", false
	}
	prefix := p.input[start:p.pos]
	p.advance() // consume ':'
	return prefix, true
}

func (p *parser) readWord() string {
	start := p.pos
	for !p.eof() && !isWhitespace(p.peek()) && p.peek() != ';' && p.peek() != ',' && p.peek() != '.' {
		p.advance()
	}
	return p.input[start:p.pos]
}

// peekWordIs reports whether the next token is exactly the given keyword.
// A trailing ':' means the word is a prefix label, not a keyword.
func (p *parser) peekWordIs(word string) bool {
	if !p.hasPrefix(word) {
		return false
	}
	end := p.pos + len(word)
	if end >= len(p.input) {
		return true
	}
	return !isNameChar(p.input[end]) && p.input[end] != ':'
}

func (p *parser) peekNumeric() bool {
	c := p.peek()
	if isDigit(c) {
		return true
	}
	if (c == '+' || c == '-') && p.pos+1 < len(p.input) {
		return isDigit(p.input[p.pos+1])
	}
	return false
}

func (p *parser) expectDot() error {
	p.skipWhitespace()
	if p.eof() || p.peek() != '.' {
		return p.errorf("expected '.' to close directive")
	}
	p.advance()
	return nil
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\n':
			p.line++
			p.advance()
		case isWhitespace(c):
			p.advance()
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	p.pos++
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_' || c == '-'
}
