package calc

import (
	"errors"
	"io"
	"strings"
)

// ClassKind is the syntactic role of a token in the shunting yard.
type ClassKind int8

const (
	ClassOperand ClassKind = iota
	ClassOperator
	ClassOpen
	ClassClose
)

// Assoc is the associativity of an operator.
type Assoc int8

const (
	AssocLeft Assoc = iota
	AssocRight
)

// Class is the classification of a token for the shunting yard. Prec and
// Assoc are meaningful only for operators. Higher Prec binds tighter.
type Class struct {
	Kind  ClassKind
	Prec  int8
	Assoc Assoc
	// Postfix marks a unary operator that follows its operand, so that a term
	// may be juxtaposed after it.
	Postfix bool
}

// moreBinding reports whether an operator with class c already on the stack
// must be output before pushing an operator of class than.
func (c Class) moreBinding(than Class) bool {
	if c.Prec != than.Prec {
		return c.Prec > than.Prec
	}
	return than.Assoc == AssocLeft
}

// endsTerm reports whether a token of class c may be followed by a term to
// form an implicit multiplication.
func (c Class) endsTerm() bool {
	return c.Kind == ClassOperand || c.Kind == ClassClose || c.Kind == ClassOperator && c.Postfix
}

// startsTerm reports whether a token of class c begins a term.
func (c Class) startsTerm() bool {
	return c.Kind == ClassOperand || c.Kind == ClassOpen
}

// Shuntable is a token type that the shunting yard can reorder.
type Shuntable[T any] interface {
	// Class classifies the token.
	Class() Class
	// Juxtapose returns the operator inserted between two adjacent terms.
	Juxtapose() T
}

// Class classifies the token. It panics on an invalid token kind.
func (t Token) Class() Class {
	switch t.Kind {
	case Operand:
		return Class{Kind: ClassOperand}
	case Add, Sub:
		return Class{Kind: ClassOperator, Prec: 0}
	case Mul, Div:
		return Class{Kind: ClassOperator, Prec: 1}
	case Pow, Root:
		return Class{Kind: ClassOperator, Prec: 2}
	case Percent:
		return Class{Kind: ClassOperator, Prec: 3, Postfix: true}
	case Open:
		return Class{Kind: ClassOpen}
	case Close:
		return Class{Kind: ClassClose}
	default:
		panic("calc: no class for token " + t.String())
	}
}

// Juxtapose returns an implicit multiplication at the position of t.
func (t Token) Juxtapose() Token {
	return Token{Kind: Mul, Text: "*", Pos: t.Pos}
}

type entry[T any] struct {
	tok   T
	class Class
}

// Yard reorders an infix token stream into postfix order using the
// shunting-yard algorithm. It pulls input tokens only as needed to produce
// each output token.
type Yard[T Shuntable[T]] struct {
	src func() (T, error)
	// out is the output queue. Tokens are taken from the front.
	out []T
	// ops is the operator stack.
	ops []entry[T]
	// last is the class of the previous input token, valid if seen.
	last Class
	seen bool
	done bool
	// pos reports the position of an input token for bracket errors. It may
	// be nil.
	pos func(T) int
}

// NewYard creates a shunting yard reading infix tokens from next. next
// returns io.EOF after the last token.
func NewYard[T Shuntable[T]](next func() (T, error)) *Yard[T] {
	return &Yard[T]{src: next}
}

// Next returns the next token in postfix order. After the last token, the
// result is the zero token with io.EOF.
func (y *Yard[T]) Next() (T, error) {
	var zero T
	for len(y.out) == 0 {
		if y.done {
			return zero, io.EOF
		}
		tok, err := y.src()
		if err != nil {
			if errors.Is(err, io.EOF) {
				y.done = true
				if err := y.end(); err != nil {
					return zero, err
				}
				continue
			}
			return zero, err
		}
		if err := y.push(tok); err != nil {
			return zero, err
		}
	}
	tok := y.out[0]
	y.out[0] = zero
	y.out = y.out[1:]
	return tok, nil
}

// push processes one infix token.
func (y *Yard[T]) push(tok T) error {
	c := tok.Class()
	if y.seen && y.last.endsTerm() && c.startsTerm() {
		// 2(x) -> 2 * (x); (a)(b) -> (a) * (b); 3 4 -> 3 * 4
		// The implicit operator goes straight onto the stack. It is resolved
		// only when a later operator displaces it or the input ends.
		j := tok.Juxtapose()
		y.ops = append(y.ops, entry[T]{j, j.Class()})
	}
	y.last, y.seen = c, true
	switch c.Kind {
	case ClassOperand:
		y.out = append(y.out, tok)
	case ClassOperator:
		return y.operator(tok, c)
	case ClassOpen:
		y.ops = append(y.ops, entry[T]{tok, c})
	case ClassClose:
		for {
			if len(y.ops) == 0 {
				return &BracketError{Col: y.position(tok), Right: ")"}
			}
			e := y.pop()
			if e.class.Kind == ClassOpen {
				break
			}
			if e.class.Kind == ClassOperand {
				return &InternalError{Msg: "operand on operator stack"}
			}
			y.out = append(y.out, e.tok)
		}
	default:
		return &InternalError{Msg: "unknown token class"}
	}
	return nil
}

// operator outputs operators that bind at least as tightly as c, then pushes
// tok.
func (y *Yard[T]) operator(tok T, c Class) error {
	for len(y.ops) > 0 {
		top := y.ops[len(y.ops)-1]
		switch top.class.Kind {
		case ClassOpen:
			y.ops = append(y.ops, entry[T]{tok, c})
			return nil
		case ClassOperand:
			return &InternalError{Msg: "operand on operator stack"}
		}
		if !top.class.moreBinding(c) {
			break
		}
		y.pop()
		y.out = append(y.out, top.tok)
	}
	y.ops = append(y.ops, entry[T]{tok, c})
	return nil
}

// end flushes the operator stack at the end of input.
func (y *Yard[T]) end() error {
	for len(y.ops) > 0 {
		e := y.pop()
		switch e.class.Kind {
		case ClassOpen:
			return &BracketError{Col: y.position(e.tok), Left: "("}
		case ClassOperand:
			return &InternalError{Msg: "operand on operator stack"}
		}
		y.out = append(y.out, e.tok)
	}
	return nil
}

func (y *Yard[T]) pop() entry[T] {
	e := y.ops[len(y.ops)-1]
	y.ops[len(y.ops)-1] = entry[T]{}
	y.ops = y.ops[:len(y.ops)-1]
	return e
}

func (y *Yard[T]) position(tok T) int {
	if y.pos == nil {
		return 0
	}
	return y.pos(tok)
}

// shunt creates a yard over a lexer.
func shunt(l *lexer) *Yard[Token] {
	y := NewYard(l.next)
	y.pos = func(t Token) int { return t.Pos }
	return y
}

// Postfix lexes an expression and returns its tokens in postfix order.
func Postfix(src string) ([]Token, error) {
	var toks []Token
	y := shunt(lex(strings.NewReader(src)))
	for {
		tok, err := y.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return toks, err
		}
		toks = append(toks, tok)
	}
}
