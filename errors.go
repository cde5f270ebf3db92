package calc

import "strconv"

// ParseError is an error indicating an operand that the evaluation domain
// could not interpret as a value. It implements InputError.
type ParseError struct {
	// Col is the position of the operand.
	Col int
	// Lexeme is the operand text.
	Lexeme string
	// Domain is the name of the domain that rejected the operand.
	Domain string
	// Err is the underlying error, if any.
	Err error
}

func (err *ParseError) Error() string {
	return errpos(err.Col, "cannot parse "+strconv.Quote(err.Lexeme)+" as "+err.Domain)
}

func (err *ParseError) Pos() int {
	return err.Col
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// Side identifies an operand of a binary operator.
type Side int8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// StackUnderflowError is an error indicating an operator with fewer operands
// than it requires. It implements InputError.
type StackUnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator symbol.
	Op string
	// Side is the operand that was missing. Unary operators always report
	// Left.
	Side Side
}

func (err *StackUnderflowError) Error() string {
	return errpos(err.Col, "missing "+err.Side.String()+" operand for "+strconv.Quote(err.Op))
}

func (err *StackUnderflowError) Pos() int {
	return err.Col
}

// UnsupportedError is an error indicating an operation that the evaluation
// domain cannot represent, such as a root of integers. It implements
// InputError.
type UnsupportedError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operation name or symbol.
	Op string
	// Domain is the name of the domain.
	Domain string
	// Reason optionally explains which operands are unsupported.
	Reason string
}

func (err *UnsupportedError) Error() string {
	msg := strconv.Quote(err.Op) + " is not supported for " + err.Domain
	if err.Reason != "" {
		msg += ": " + err.Reason
	}
	return errpos(err.Col, msg)
}

func (err *UnsupportedError) Pos() int {
	return err.Col
}

// OverflowError is an error indicating a result that does not fit in the
// evaluation domain. It implements InputError.
type OverflowError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator symbol.
	Op string
	// X and Y are the formatted operands.
	X, Y string
}

func (err *OverflowError) Error() string {
	return errpos(err.Col, err.X+" "+err.Op+" "+err.Y+" overflows")
}

func (err *OverflowError) Pos() int {
	return err.Col
}

// DomainError is an error returned when an operation is applied to operands
// outside its domain, e.g. division by zero. It implements InputError.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// X is the formatted out-of-domain operand.
	X string
	// Op is the operator symbol.
	Op string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Op != "" {
		r += " of " + err.Op
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the unmatched opening bracket, or empty.
	Left string
	// Right is the unmatched closing bracket, or empty.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an expression that produced no
// value. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position at which the expression ended.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// MalformedExpressionError is an error indicating an expression that left
// more than one value after evaluation. It implements InputError.
type MalformedExpressionError struct {
	// Col is the position at which the expression ended.
	Col int
	// Extra is the number of values beyond the result.
	Extra int
}

func (err *MalformedExpressionError) Error() string {
	return errpos(err.Col, strconv.Itoa(err.Extra)+" value(s) left without an operator")
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// InternalError indicates a bug in the calculator rather than bad input.
type InternalError struct {
	Msg string
}

func (err *InternalError) Error() string {
	return "calc: internal error: " + err.Msg
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*StackUnderflowError)(nil)
	_ InputError = (*UnsupportedError)(nil)
	_ InputError = (*OverflowError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*MalformedExpressionError)(nil)
)
