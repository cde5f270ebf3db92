package calc

import (
	"math"
	"strconv"
)

// Ints is the domain of 64-bit signed integers. Division truncates toward
// zero. Operations report overflow instead of wrapping. Inv and therefore
// roots are unsupported.
type Ints struct{}

var _ Domain[int64] = Ints{}

func (Ints) Name() string { return "int" }

func (d Ints) Parse(s string) (int64, error) {
	r, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ParseError{Lexeme: s, Domain: d.Name(), Err: err}
	}
	return r, nil
}

func (Ints) Add(x, y int64) (int64, error) {
	r := x + y
	if (x > 0 && y > 0 && r < 0) || (x < 0 && y < 0 && r >= 0) {
		return 0, intOverflow("+", x, y)
	}
	return r, nil
}

func (Ints) Sub(x, y int64) (int64, error) {
	r := x - y
	if (y > 0 && r > x) || (y < 0 && r < x) {
		return 0, intOverflow("-", x, y)
	}
	return r, nil
}

func (Ints) Mul(x, y int64) (int64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	r := x * y
	if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, intOverflow("*", x, y)
	}
	return r, nil
}

func (Ints) Div(x, y int64) (int64, error) {
	if y == 0 {
		return 0, &DomainError{X: "0", Op: "/"}
	}
	if x == math.MinInt64 && y == -1 {
		return 0, intOverflow("/", x, y)
	}
	return x / y, nil
}

// Pow computes x^y by repeated squaring. y must be non-negative; 0^0 is 1.
func (d Ints) Pow(x, y int64) (int64, error) {
	if y < 0 {
		return 0, &UnsupportedError{Op: "^", Domain: d.Name(), Reason: "negative exponent " + strconv.FormatInt(y, 10)}
	}
	r := int64(1)
	b := x
	for n := y; n > 0; n >>= 1 {
		var err error
		if n&1 != 0 {
			if r, err = d.Mul(r, b); err != nil {
				return 0, intOverflow("^", x, y)
			}
		}
		if n > 1 {
			if b, err = d.Mul(b, b); err != nil {
				return 0, intOverflow("^", x, y)
			}
		}
	}
	return r, nil
}

// Inv always fails; the reciprocal of an integer is not an integer.
func (d Ints) Inv(x int64) (int64, error) {
	return 0, &UnsupportedError{Op: "inverse", Domain: d.Name()}
}

func (Ints) Percent(x int64) (int64, error) {
	return x / 100, nil
}

func (Ints) Format(x int64) string {
	return strconv.FormatInt(x, 10)
}

func intOverflow(op string, x, y int64) error {
	return &OverflowError{Op: op, X: strconv.FormatInt(x, 10), Y: strconv.FormatInt(y, 10)}
}
