package calc

import (
	"errors"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Domain is the set of arithmetic capabilities the evaluator needs from a
// numeric type T. Operations return errors rather than panicking when the
// result is not representable; the evaluator fills in positions.
//
// Root is not part of the capability set. The a-th root of b is always
// evaluated as Pow(b, Inv(a)).
type Domain[T any] interface {
	// Name is a short name for the domain used in error messages.
	Name() string
	// Parse resolves an operand lexeme, including named constants.
	Parse(lexeme string) (T, error)

	Add(x, y T) (T, error)
	Sub(x, y T) (T, error)
	Mul(x, y T) (T, error)
	Div(x, y T) (T, error)
	// Pow raises x to the power y.
	Pow(x, y T) (T, error)
	// Inv is the reciprocal 1/x.
	Inv(x T) (T, error)
	// Percent is x/100.
	Percent(x T) (T, error)

	// Format formats a value for display.
	Format(x T) string
}

// Calculator evaluates expressions over a domain chosen at run time.
type Calculator interface {
	// Domain returns the name of the domain.
	Domain() string
	// Calculate evaluates an expression and formats its result.
	Calculate(src string) (string, error)
}

type calculator[T any] struct {
	d Domain[T]
}

func (c calculator[T]) Domain() string {
	return c.d.Name()
}

func (c calculator[T]) Calculate(src string) (string, error) {
	r, err := EvalString(src, c.d)
	if err != nil {
		return "", err
	}
	return c.d.Format(r), nil
}

// NewCalculator creates a Calculator for a domain. Go cannot infer T from the
// methods of d, so it must usually be given explicitly:
//
//	c := calc.NewCalculator[int64](calc.Ints{})
func NewCalculator[T any](d Domain[T]) Calculator {
	return calculator[T]{d}
}

// DefaultPrec is the precision in bits of the float domain when none is
// given.
const DefaultPrec = 64

var domains = map[string]func(prec uint) Calculator{
	"int":     func(uint) Calculator { return NewCalculator[int64](Ints{}) },
	"real":    func(uint) Calculator { return NewCalculator[float64](Reals{}) },
	"complex": func(uint) Calculator { return NewCalculator[Complex](Complexes{}) },
	"float": func(prec uint) Calculator {
		if prec == 0 {
			prec = DefaultPrec
		}
		return NewCalculator[*big.Float](Floats{Prec: prec})
	},
}

// ErrUnknownDomain is returned by Lookup for domain names it doesn't know.
var ErrUnknownDomain = errors.New("unknown domain")

// Lookup returns a Calculator for a domain by name: "int", "real",
// "complex", or "float". prec is the precision in bits for the float domain
// and is ignored by the others; zero means DefaultPrec.
func Lookup(name string, prec uint) (Calculator, error) {
	f := domains[strings.ToLower(name)]
	if f == nil {
		return nil, &lookupError{name}
	}
	return f(prec), nil
}

// DomainNames lists the names accepted by Lookup.
func DomainNames() []string {
	v := make([]string, 0, len(domains))
	for k := range domains {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

type lookupError struct {
	name string
}

func (err *lookupError) Error() string {
	return "unknown domain " + err.name + " (want one of " + strings.Join(DomainNames(), ", ") + ")"
}

func (err *lookupError) Unwrap() error {
	return ErrUnknownDomain
}

// constant looks up a named constant shared by the real-valued domains. The
// second result is false if name is not a constant.
func constant(name string) (float64, bool) {
	switch name {
	case "pi", "π":
		return math.Pi, true
	case "tau", "τ":
		return 2 * math.Pi, true
	case "e":
		return math.E, true
	default:
		return 0, false
	}
}
