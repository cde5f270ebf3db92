package calc

import (
	"errors"
	"math"
	"strconv"
)

// Reals is the domain of float64 values. Results follow IEEE 754 except that
// the indeterminate forms 0/0 and ∞/∞ are errors. Operands may be the named
// constants pi (or π), tau (or τ), and e, or inf. NaN is not an operand.
type Reals struct{}

var _ Domain[float64] = Reals{}

func (Reals) Name() string { return "real" }

func (d Reals) Parse(s string) (float64, error) {
	if c, ok := constant(s); ok {
		return c, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat returns ±Inf along with ErrRange for overflow. Keep
		// that, like big.Float parsing would.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return r, nil
		}
		return 0, &ParseError{Lexeme: s, Domain: d.Name(), Err: err}
	}
	if math.IsNaN(r) {
		return 0, &ParseError{Lexeme: s, Domain: d.Name(), Err: errNaN}
	}
	return r, nil
}

var errNaN = errors.New("NaN is not a number")

func (Reals) Add(x, y float64) (float64, error) { return x + y, nil }
func (Reals) Sub(x, y float64) (float64, error) { return x - y, nil }
func (Reals) Mul(x, y float64) (float64, error) { return x * y, nil }

func (d Reals) Div(x, y float64) (float64, error) {
	// Guard against invalid divisions, 0/0 or inf/inf.
	if x == 0 && y == 0 || math.IsInf(x, 0) && math.IsInf(y, 0) {
		return 0, &DomainError{X: d.Format(y), Op: "/"}
	}
	return x / y, nil
}

func (d Reals) Pow(x, y float64) (float64, error) {
	r := math.Pow(x, y)
	if math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y) {
		// Negative base with a non-integer exponent.
		return 0, &DomainError{X: d.Format(x), Op: "^"}
	}
	return r, nil
}

func (d Reals) Inv(x float64) (float64, error) {
	return d.Div(1, x)
}

func (Reals) Percent(x float64) (float64, error) { return x / 100, nil }

// Format formats x in the shortest representation that parses back to x,
// using an exponent only for very large or small magnitudes.
func (Reals) Format(x float64) string {
	return formatFloat(x)
}

func formatFloat(x float64) string {
	if a := math.Abs(x); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
