package formula

import (
	"fmt"
	"strconv"
)

// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")" | "-" factor
//
// Only decimal literals and the five operators are accepted. Identifiers,
// function calls, and every other token are parse errors.

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind  tokenKind
	value float64
	pos   int
}

// lex splits the expression into tokens, rejecting anything outside the
// arithmetic grammar.
func lex(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokStar, pos: i})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokSlash, pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, pos: i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			seenDot := false
			for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.') {
				if expr[i] == '.' {
					if seenDot {
						return nil, &EvaluationError{Msg: fmt.Sprintf("malformed number at position %d", start)}
					}
					seenDot = true
				}
				i++
			}
			lit := expr[start:i]
			if lit == "." {
				return nil, &EvaluationError{Msg: fmt.Sprintf("malformed number at position %d", start)}
			}
			value, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, &EvaluationError{Msg: fmt.Sprintf("malformed number %q", lit)}
			}
			tokens = append(tokens, token{kind: tokNumber, value: value, pos: start})
		default:
			return nil, &EvaluationError{Msg: fmt.Sprintf("unexpected character %q at position %d", c, i)}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(expr)})
	return tokens, nil
}

type parser struct {
	expr   string
	tokens []token
	pos    int
}

func newParser(expr string) *parser {
	return &parser{expr: expr}
}

func (p *parser) parse() (float64, error) {
	tokens, err := lex(p.expr)
	if err != nil {
		return 0, err
	}
	p.tokens = tokens
	p.pos = 0

	result, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, &EvaluationError{Msg: fmt.Sprintf("unexpected token at position %d", p.peek().pos)}
	}
	return result, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expression() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left += right
		case tokMinus:
			p.next()
			right, err := p.term()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.factor()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokSlash:
			p.next()
			right, err := p.factor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, &EvaluationError{Msg: "division by zero"}
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *parser) factor() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.value, nil
	case tokMinus:
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case tokLParen:
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return 0, &EvaluationError{Msg: fmt.Sprintf("missing closing parenthesis at position %d", closing.pos)}
		}
		return v, nil
	case tokEOF:
		return 0, &EvaluationError{Msg: "unexpected end of formula"}
	default:
		return 0, &EvaluationError{Msg: fmt.Sprintf("unexpected token at position %d", t.pos)}
	}
}
