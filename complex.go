package calc

import (
	"math"
	"math/cmplx"
	"strings"
)

// Complex is a complex number with float64 components.
type Complex struct {
	Real, Imag float64
}

// String formats z as e.g. "1 + 2i", "3 - i", "-2i", "i", or "0". A zero real
// part is omitted unless both parts are zero, and a unit imaginary part has
// no coefficient.
func (z Complex) String() string {
	var b strings.Builder
	hasReal := z.Real != 0
	if hasReal {
		b.WriteString(formatFloat(z.Real))
	}
	if z.Imag == 0 {
		if !hasReal {
			b.WriteByte('0')
		}
		return b.String()
	}
	switch {
	case hasReal && z.Imag > 0:
		b.WriteString(" + ")
	case hasReal:
		b.WriteString(" - ")
	case z.Imag < 0:
		b.WriteByte('-')
	}
	if a := math.Abs(z.Imag); a != 1 {
		b.WriteString(formatFloat(a))
	}
	b.WriteByte('i')
	return b.String()
}

func (z Complex) c128() complex128 {
	return complex(z.Real, z.Imag)
}

func fromC128(c complex128) Complex {
	return Complex{real(c), imag(c)}
}

// Complexes is the domain of complex numbers. Operands are real literals, the
// named constants of Reals, and i, the imaginary unit. Juxtaposition builds
// imaginary literals: 2i is 2 * i.
type Complexes struct{}

var _ Domain[Complex] = Complexes{}

func (Complexes) Name() string { return "complex" }

func (d Complexes) Parse(s string) (Complex, error) {
	if s == "i" {
		return Complex{0, 1}, nil
	}
	r, err := Reals{}.Parse(s)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Domain = d.Name()
		}
		return Complex{}, err
	}
	return Complex{Real: r}, nil
}

func (Complexes) Add(x, y Complex) (Complex, error) {
	return Complex{x.Real + y.Real, x.Imag + y.Imag}, nil
}

func (Complexes) Sub(x, y Complex) (Complex, error) {
	return Complex{x.Real - y.Real, x.Imag - y.Imag}, nil
}

func (Complexes) Mul(x, y Complex) (Complex, error) {
	// (a + bi)(c + di) = ac - bd + (bc + ad)i
	a, b, c, d := x.Real, x.Imag, y.Real, y.Imag
	return Complex{a*c - b*d, b*c + a*d}, nil
}

func (Complexes) Div(x, y Complex) (Complex, error) {
	// (a + bi)/(c + di) = (ac + bd)/(c² + d²) + (bc - ad)/(c² + d²)i
	a, b, c, d := x.Real, x.Imag, y.Real, y.Imag
	m := c*c + d*d
	if m == 0 {
		return Complex{}, &DomainError{X: y.String(), Op: "/"}
	}
	return Complex{(a*c + b*d) / m, (b*c - a*d) / m}, nil
}

// Pow computes the principal value of x^y, exp(y log x).
func (Complexes) Pow(x, y Complex) (Complex, error) {
	return fromC128(cmplx.Pow(x.c128(), y.c128())), nil
}

func (d Complexes) Inv(x Complex) (Complex, error) {
	return d.Div(Complex{Real: 1}, x)
}

func (d Complexes) Percent(x Complex) (Complex, error) {
	return d.Div(x, Complex{Real: 100})
}

func (Complexes) Format(x Complex) string {
	return x.String()
}
