package calc

import (
	"errors"
	"io"
	"strings"
)

// value is an evaluated term along with the position of the token that
// produced it.
type value[T any] struct {
	v   T
	pos int
}

// memory is the evaluation stack.
type memory[T any] struct {
	stack []value[T]
	d     Domain[T]
}

func (m *memory[T]) push(v T, pos int) {
	m.stack = append(m.stack, value[T]{v, pos})
}

// pop removes the top from the stack. The second result is false if the
// stack is empty.
func (m *memory[T]) pop() (value[T], bool) {
	if len(m.stack) == 0 {
		return value[T]{}, false
	}
	r := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = value[T]{}
	m.stack = m.stack[:len(m.stack)-1]
	return r, true
}

// exec applies one postfix token to the stack.
func (m *memory[T]) exec(tok Token) error {
	switch tok.Kind {
	case Operand:
		v, err := m.d.Parse(tok.Text)
		if err != nil {
			return at(err, tok.Pos)
		}
		m.push(v, tok.Pos)
		return nil
	case Percent:
		x, ok := m.pop()
		if !ok {
			return &StackUnderflowError{Col: tok.Pos, Op: tok.Text, Side: Left}
		}
		r, err := m.d.Percent(x.v)
		if err != nil {
			return at(err, tok.Pos)
		}
		m.push(r, tok.Pos)
		return nil
	case Add, Sub, Mul, Div, Pow, Root:
		if len(m.stack) < 2 {
			// Postfix order loses which side the operand was on, but the
			// position of the term that produced it doesn't.
			side := Left
			if len(m.stack) == 1 && m.stack[0].pos < tok.Pos {
				side = Right
			}
			return &StackUnderflowError{Col: tok.Pos, Op: tok.Text, Side: side}
		}
		y, _ := m.pop()
		x, _ := m.pop()
		r, err := m.binary(tok.Kind, x.v, y.v)
		if err != nil {
			return at(err, tok.Pos)
		}
		m.push(r, tok.Pos)
		return nil
	default:
		return &InternalError{Msg: "cannot evaluate token " + tok.String()}
	}
}

func (m *memory[T]) binary(op Kind, x, y T) (T, error) {
	switch op {
	case Add:
		return m.d.Add(x, y)
	case Sub:
		return m.d.Sub(x, y)
	case Mul:
		return m.d.Mul(x, y)
	case Div:
		return m.d.Div(x, y)
	case Pow:
		return m.d.Pow(x, y)
	case Root:
		// x√y = y^(1/x)
		inv, err := m.d.Inv(x)
		if err != nil {
			var u *UnsupportedError
			if errors.As(err, &u) {
				u.Op, u.Reason = "√", "no inverse"
			}
			var zero T
			return zero, err
		}
		return m.d.Pow(y, inv)
	default:
		panic("calc: binary called with " + op.String())
	}
}

// at sets the position of an error from a domain if it doesn't have one.
func at(err error, col int) error {
	switch err := err.(type) {
	case *ParseError:
		if err.Col == 0 {
			err.Col = col
		}
	case *UnsupportedError:
		if err.Col == 0 {
			err.Col = col
		}
	case *OverflowError:
		if err.Col == 0 {
			err.Col = col
		}
	case *DomainError:
		if err.Col == 0 {
			err.Col = col
		}
	}
	return err
}

// Eval evaluates an expression read from src over the domain d. Evaluation
// pulls tokens through the lexer and shunting yard one at a time. On error,
// the result is the zero value of T.
//
// T is not inferred from a concrete domain type, so either pass a d of type
// Domain[T] or give T explicitly, e.g. Eval[float64](src, Reals{}).
func Eval[T any](src io.RuneReader, d Domain[T]) (T, error) {
	var zero T
	l := lex(src)
	y := shunt(l)
	m := memory[T]{d: d}
	for {
		tok, err := y.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return zero, err
		}
		if err := m.exec(tok); err != nil {
			return zero, err
		}
	}
	return m.result(l.col + 1)
}

// result returns the single value left after evaluating an expression that
// ended at column end.
func (m *memory[T]) result(end int) (T, error) {
	var zero T
	switch len(m.stack) {
	case 0:
		return zero, &EmptyExpressionError{Col: end}
	case 1:
		return m.stack[0].v, nil
	default:
		return zero, &MalformedExpressionError{Col: end, Extra: len(m.stack) - 1}
	}
}

// EvalString is a shortcut to evaluate a string expression.
func EvalString[T any](src string, d Domain[T]) (T, error) {
	return Eval(strings.NewReader(src), d)
}
