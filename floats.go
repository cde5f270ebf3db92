package calc

import (
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Floats is the domain of arbitrary-precision binary floating-point numbers.
// Prec is the precision of results in bits; zero means DefaultPrec. Operands
// may be the named constants of Reals, computed to the domain's precision.
//
// Values are never modified after they are returned, so they may be shared.
type Floats struct {
	Prec uint
}

var _ Domain[*big.Float] = Floats{}

func (Floats) Name() string { return "float" }

func (d Floats) prec() uint {
	if d.Prec == 0 {
		return DefaultPrec
	}
	return d.Prec
}

func (d Floats) alloc() *big.Float {
	return new(big.Float).SetPrec(d.prec())
}

func (d Floats) Parse(s string) (*big.Float, error) {
	switch s {
	case "pi", "π":
		return bigfloat.Pi(d.alloc()), nil
	case "tau", "τ":
		r := bigfloat.Pi(d.alloc())
		return r.Mul(r, big.NewFloat(2)), nil
	case "e":
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(d.alloc(), &one), nil
	}
	r, _, err := d.alloc().Parse(s, 0)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		r = d.alloc().SetInf(false)
	default:
		return nil, &ParseError{Lexeme: s, Domain: d.Name(), Err: err}
	}
	return r, nil
}

// guard calls f and converts a big.ErrNaN panic into a DomainError on x.
func (d Floats) guard(op string, x *big.Float, f func() *big.Float) (r *big.Float, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if _, ok := v.(big.ErrNaN); !ok {
			panic(v)
		}
		r, err = nil, &DomainError{X: d.Format(x), Op: op}
	}()
	return f(), nil
}

func (d Floats) Add(x, y *big.Float) (*big.Float, error) {
	return d.guard("+", y, func() *big.Float { return d.alloc().Add(x, y) })
}

func (d Floats) Sub(x, y *big.Float) (*big.Float, error) {
	return d.guard("-", y, func() *big.Float { return d.alloc().Sub(x, y) })
}

func (d Floats) Mul(x, y *big.Float) (*big.Float, error) {
	return d.guard("*", y, func() *big.Float { return d.alloc().Mul(x, y) })
}

func (d Floats) Div(x, y *big.Float) (*big.Float, error) {
	return d.guard("/", y, func() *big.Float { return d.alloc().Quo(x, y) })
}

// maxIntPow is the largest integer exponent computed by repeated squaring.
const maxIntPow = 1 << 16

// Pow computes x^y. Integer exponents are exact up to the precision of the
// domain and allow negative bases. Other exponents require x >= 0.
func (d Floats) Pow(x, y *big.Float) (*big.Float, error) {
	if y.Sign() == 0 {
		return d.alloc().SetInt64(1), nil
	}
	if x.IsInf() || y.IsInf() {
		// bigfloat doesn't handle infinities; float64 has the same range of
		// special cases.
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		return d.guard("^", x, func() *big.Float { return d.alloc().SetFloat64(math.Pow(xf, yf)) })
	}
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact && -maxIntPow <= n && n <= maxIntPow {
			return d.ipow(x, n)
		}
	}
	switch x.Sign() {
	case 0:
		if y.Sign() < 0 {
			return nil, &DomainError{X: d.Format(x), Op: "^"}
		}
		return d.alloc(), nil
	case -1:
		if !y.IsInt() {
			return nil, &DomainError{X: d.Format(x), Op: "^"}
		}
		// Huge integer exponent. The sign depends only on its parity.
		ax := d.alloc().Abs(x)
		r, err := d.guard("^", x, func() *big.Float { return bigfloat.Pow(d.alloc(), ax, y) })
		if err != nil {
			return nil, err
		}
		yi, _ := y.Int(nil)
		if yi.Bit(0) == 1 {
			r.Neg(r)
		}
		return r, nil
	}
	return d.guard("^", x, func() *big.Float { return bigfloat.Pow(d.alloc(), x, y) })
}

// ipow computes x^n by repeated squaring.
func (d Floats) ipow(x *big.Float, n int64) (*big.Float, error) {
	neg := n < 0
	if neg {
		n = -n
	}
	r := d.alloc().SetInt64(1)
	b := d.alloc().Set(x)
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			r.Mul(r, b)
		}
		if n > 1 {
			b.Mul(b, b)
		}
	}
	if neg {
		return d.Inv(r)
	}
	return r, nil
}

func (d Floats) Inv(x *big.Float) (*big.Float, error) {
	if x.Sign() == 0 {
		return nil, &DomainError{X: d.Format(x), Op: "inverse"}
	}
	return d.alloc().Quo(big.NewFloat(1), x), nil
}

func (d Floats) Percent(x *big.Float) (*big.Float, error) {
	return d.alloc().Quo(x, big.NewFloat(100)), nil
}

// Format formats x with the fewest decimal digits that identify it at its
// precision.
func (Floats) Format(x *big.Float) string {
	return x.Text('g', -1)
}
