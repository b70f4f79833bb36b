package parser

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/aledsdavies/parens/pkgs/errors"
	"github.com/aledsdavies/parens/pkgs/lexer"
	"github.com/aledsdavies/parens/pkgs/value"
)

// Reader-macro symbol names, interned on first use
const (
	symQuote           = "QUOTE"
	symQuasiquote      = "QUASIQUOTE"
	symUnquote         = "UNQUOTE"
	symUnquoteSplicing = "UNQUOTE-SPLICING"
)

// Parser turns source text into values allocated on a heap. It is a
// recursive-descent reader over the token stream; recursion depth is
// bounded by source syntax depth, which is fine for a reader (unlike
// the evaluator, user programs do not drive it).
//
// A Parser is not safe for concurrent use.
type Parser struct {
	heap *value.Heap
	syms *value.Interner

	src  string
	toks []lexer.Token
	pos  int
}

// New creates a parser allocating onto the given heap and interning
// symbols into the given table.
func New(h *value.Heap, syms *value.Interner) *Parser {
	return &Parser{heap: h, syms: syms}
}

func (p *Parser) begin(src string) {
	p.src = src
	p.toks = lexer.New(src).TokenizeToSlice()
	p.pos = 0
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

// Read parses one expression and returns it along with the unconsumed
// remainder of the source text.
func (p *Parser) Read(src string) (value.Value, string, error) {
	p.begin(src)
	v, err := p.parseExpr()
	if err != nil {
		return value.Nil, "", err
	}
	if p.pos == 0 {
		return v, src, nil
	}
	last := p.toks[p.pos-1]
	return v, src[last.Offset+len(last.Value):], nil
}

// ReadAll parses every top-level form in the source text
func (p *Parser) ReadAll(src string) ([]value.Value, error) {
	p.begin(src)
	var forms []value.Value
	for p.peek().Type != lexer.EOF {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

func (p *Parser) parseExpr() (value.Value, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.EOF:
		return value.Nil, incomplete("unexpected end of input")
	case lexer.RPAREN:
		return value.Nil, errors.NewSyntaxError("unexpected ) at " + tok.Position())
	case lexer.LPAREN:
		return p.parseList()
	case lexer.QUOTE:
		return p.wrap(symQuote)
	case lexer.QUASIQUOTE:
		return p.wrap(symQuasiquote)
	case lexer.UNQUOTE:
		return p.wrap(symUnquote)
	case lexer.UNQUOTE_SPLICING:
		return p.wrap(symUnquoteSplicing)
	default:
		return p.parseAtom(tok.Value), nil
	}
}

// wrap rewrites a reader-macro prefix into (SYM <expr>)
func (p *Parser) wrap(sym string) (value.Value, error) {
	inner, err := p.parseExpr()
	if err != nil {
		return value.Nil, err
	}
	return p.heap.List(p.syms.Intern(sym), inner), nil
}

// parseAtom tries a base-10 signed integer parse over the whole token;
// anything else is uppercased and interned. The uppercased name NIL
// reads as the Nil value, not a symbol. A leading sign belongs to the
// token, so -12 is one Integer while - 12 is the symbol - then 12.
func (p *Parser) parseAtom(text string) value.Value {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return value.Int(n)
	}
	name := strings.ToUpper(text)
	if name == "NIL" {
		return value.Nil
	}
	return p.syms.Intern(name)
}

// parseList consumes expressions until the matching close paren,
// building the result left-to-right through a moving tail cursor. A
// lone dot between items starts the dotted tail: exactly one expression
// follows, then the close paren.
func (p *Parser) parseList() (value.Value, error) {
	result := value.Nil
	cursor := value.Nil
	for {
		tok := p.peek()
		switch {
		case tok.Type == lexer.EOF:
			return value.Nil, incomplete("unterminated list")
		case tok.Type == lexer.RPAREN:
			p.next()
			return result, nil
		case tok.Type == lexer.ATOM && tok.Value == ".":
			p.next()
			if cursor.IsNil() {
				return value.Nil, errors.NewSyntaxError("dot before any list item at " + tok.Position())
			}
			tail, err := p.parseExpr()
			if err != nil {
				return value.Nil, err
			}
			end := p.next()
			if end.Type == lexer.EOF {
				return value.Nil, incomplete("unterminated list")
			}
			if end.Type != lexer.RPAREN {
				return value.Nil, errors.NewSyntaxError("expected ) after dotted tail, got " + end.Value + " at " + end.Position())
			}
			p.heap.SetCdr(cursor, tail)
			return result, nil
		}

		item, err := p.parseExpr()
		if err != nil {
			return value.Nil, err
		}
		cell := p.heap.Cons(item, value.Nil)
		if cursor.IsNil() {
			result = cell
		} else {
			p.heap.SetCdr(cursor, cell)
		}
		cursor = cell
	}
}

// incomplete marks a syntax error caused by input ending mid-form, so
// an input loop can keep reading lines instead of reporting it.
func incomplete(msg string) error {
	return errors.NewSyntaxError(msg).WithContext("incomplete", true)
}

// IsIncomplete reports whether err is a syntax error that more input
// could fix.
func IsIncomplete(err error) bool {
	var evalErr *errors.EvalError
	if !stderrors.As(err, &evalErr) {
		return false
	}
	v, ok := evalErr.GetContext("incomplete")
	return ok && v == true
}
