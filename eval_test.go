package calc_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEvalInts(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    int64
	}{
		{"num", "1", 1},
		{"add", "1+2", 3},
		{"sub", "5-3", 2},
		{"mul", "3*6", 18},
		{"mul-x", "3x6", 18},
		{"negative", "2-3", -1},
		{"div", "7/2", 3},
		{"div-left", "100/10/5", 2},
		{"sub-left", "10-4-3", 3},
		{"unnecessary-brackets", "1+(3*2)", 7},
		{"brackets-change-prec", "(1+3)*2", 8},
		{"two-brackets", "(1+3)*(5-2)", 12},
		{"pow", "2^10", 1024},
		{"pow-left", "2^3^2", 64},
		{"pow-zero", "0^0", 1},
		{"pow-prec", "3*2^4", 48},
		{"juxtaposed", "3 4", 12},
		{"juxtaposed-groups", "(2)3(4)", 24},
		{"juxtaposed-pair", "(3)(4)", 12},
		{"juxtaposed-bracket", "2(1+1)", 4},
		{"juxtaposed-after-div", "8/2 4", 1},
		{"juxtaposed-after-pow", "2^3 4", 4096},
		{"percent", "250%", 2},
		{"percent-truncates", "95%", 0},
		{"spaces", " 1 + 2 * 3 ", 7},
		{"max", "9223372036854775807", math.MaxInt64},
		{"pow-max", "2^62", 1 << 62},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString[int64](c.src, calc.Ints{})
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("evaluating %q: want %d, got %d", c.src, c.r, r)
			}
		})
	}
}

func TestEvalReals(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1.5", 1.5},
		{"div", "7/2", 3.5},
		{"pi", "pi", math.Pi},
		{"pi-rune", "π", math.Pi},
		{"tau", "tau", 2 * math.Pi},
		{"e", "e", math.E},
		{"juxtaposed-pi", "2pi", 2 * math.Pi},
		{"juxtaposed-spaced", "2 pi", 2 * math.Pi},
		{"sqrt", "2√16", 4},
		{"percent", "95%", 0.95},
		{"percent-sum", "50%+50%", 1},
		{"juxtaposed-after-div", "8/2 4", 1},
		{"juxtaposed-percent", "50%2", 1},
		{"exponent", "1e5", 1e5},
		{"exponent-frac", "2.5e3", 2500},
		{"exponent-upper", "1E2+1", 101},
		{"juxtaposed-e", "2e", 2 * math.E},
		{"pow", "2^0.5", math.Sqrt2},
		{"pow-neg-int", "(0-2)^3", -8},
		{"inv-pow", "2^(0-1)", 0.5},
		{"div-zero", "1/0", math.Inf(1)},
		{"inf", "inf", math.Inf(1)},
		{"overflow-literal", "1" + strings.Repeat("0", 400), math.Inf(1)},
		{"redundant-pow", "(2^4)*2", 32},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString[float64](c.src, calc.Reals{})
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalCubeRoot(t *testing.T) {
	r, err := calc.EvalString[float64]("3√27", calc.Reals{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-3) > 1e-12 {
		t.Errorf("3√27 gave %g", r)
	}
}

func TestEvalComplex(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    calc.Complex
	}{
		{"i", "i", calc.Complex{Real: 0, Imag: 1}},
		{"real", "2.5", calc.Complex{Real: 2.5}},
		{"imaginary-literal", "2i", calc.Complex{Imag: 2}},
		{"sum", "1+2i", calc.Complex{Real: 1, Imag: 2}},
		{"square", "i*i", calc.Complex{Real: -1}},
		{"conjugates", "(1+i)*(1-i)", calc.Complex{Real: 2}},
		{"inverse", "1/i", calc.Complex{Imag: -1}},
		{"div", "(1+2i)/(3+4i)", calc.Complex{Real: 0.44, Imag: 0.08}},
		{"percent", "50i%", calc.Complex{Imag: 0.5}},
		{"juxtaposed-pi", "2pi", calc.Complex{Real: 2 * math.Pi}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString[calc.Complex](c.src, calc.Complexes{})
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if math.Abs(r.Real-c.r.Real) > 1e-15 || math.Abs(r.Imag-c.r.Imag) > 1e-15 {
				t.Errorf("evaluating %q: want %v, got %v", c.src, c.r, r)
			}
		})
	}
}

func TestEvalComplexPow(t *testing.T) {
	cases := []struct {
		src string
		r   calc.Complex
	}{
		{"i^2", calc.Complex{Real: -1}},
		{"e^(i pi)", calc.Complex{Real: -1}},
		{"2√(0-4)", calc.Complex{Imag: 2}},
		{"2^3", calc.Complex{Real: 8}},
	}
	for _, c := range cases {
		r, err := calc.EvalString[calc.Complex](c.src, calc.Complexes{})
		if err != nil {
			t.Errorf("evaluating %q: %v", c.src, err)
			continue
		}
		if math.Abs(r.Real-c.r.Real) > 1e-12 || math.Abs(r.Imag-c.r.Imag) > 1e-12 {
			t.Errorf("evaluating %q: want %v, got %v", c.src, c.r, r)
		}
	}
}

func TestEvalFloats(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
		tol  float64
	}{
		{"div", "7/2", 3.5, 0},
		{"pow-int", "2^10", 1024, 0},
		{"pow-neg-base", "(0-2)^3", -8, 0},
		{"pow-neg-exp", "2^(0-2)", 0.25, 0},
		{"pow-zero", "0^0", 1, 0},
		{"pow-frac", "2^0.5", math.Sqrt2, 1e-14},
		{"sqrt", "2√16", 4, 1e-14},
		{"cbrt", "3√27", 3, 1e-14},
		{"percent", "95%", 0.95, 1e-14},
		{"pi", "pi", math.Pi, 1e-14},
		{"tau", "tau", 2 * math.Pi, 1e-14},
		{"e", "e", math.E, 1e-14},
		{"juxtaposed-pi", "2pi", 2 * math.Pi, 1e-14},
		{"inf", "inf", math.Inf(1), 0},
		{"exponent", "1e5", 1e5, 0},
		{"exponent-frac", "2.5e3", 2500, 0},
		{"juxtaposed-e", "2e", 2 * math.E, 1e-14},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString[*big.Float](c.src, calc.Floats{Prec: 64})
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			f, _ := r.Float64()
			if c.tol == 0 && f != c.r || math.Abs(f-c.r) > c.tol {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalFloatsPrec(t *testing.T) {
	r, err := calc.EvalString[*big.Float]("pi", calc.Floats{Prec: 256})
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 256 {
		t.Errorf("wrong precision %d", r.Prec())
	}
	r, err = calc.EvalString[*big.Float]("1+1", calc.Floats{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != calc.DefaultPrec {
		t.Errorf("wrong default precision %d", r.Prec())
	}
}

// TestEvalPrecedenceRedundant checks that brackets around a term which
// already binds correctly change nothing in any domain.
func TestEvalPrecedenceRedundant(t *testing.T) {
	pairs := [][2]string{
		{"3*(2^4)", "3*2^4"},
		{"(2^4)*2", "2^4*2"},
		{"1+(2*3)", "1+2*3"},
		{"(8/2)/2", "8/2/2"},
	}
	calcs := make([]calc.Calculator, 0, len(calc.DomainNames()))
	for _, name := range calc.DomainNames() {
		c, err := calc.Lookup(name, 0)
		if err != nil {
			t.Fatal(err)
		}
		calcs = append(calcs, c)
	}
	for _, c := range calcs {
		for _, p := range pairs {
			a, err := c.Calculate(p[0])
			if err != nil {
				t.Errorf("%s: %q: %v", c.Domain(), p[0], err)
				continue
			}
			b, err := c.Calculate(p[1])
			if err != nil {
				t.Errorf("%s: %q: %v", c.Domain(), p[1], err)
				continue
			}
			if a != b {
				t.Errorf("%s: %q = %s but %q = %s", c.Domain(), p[0], a, p[1], b)
			}
		}
	}
}

func TestEvalUnderflow(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
		side calc.Side
	}{
		{"missing-rhs", "1+", 2, calc.Right},
		{"missing-lhs", "+1", 1, calc.Left},
		{"missing-both", "*", 1, calc.Left},
		{"missing-rhs-group", "(1+2)-", 6, calc.Right},
		{"missing-lhs-group", "/(1+2)", 1, calc.Left},
		{"root-missing-lhs", "√16", 1, calc.Left},
		{"percent", "%", 1, calc.Left},
		{"after-product", "2*3+", 4, calc.Right},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.EvalString[float64](c.src, calc.Reals{})
			var u *calc.StackUnderflowError
			if !errors.As(err, &u) {
				t.Fatalf("evaluating %q gave %v, not StackUnderflowError", c.src, err)
			}
			if u.Col != c.col || u.Side != c.side {
				t.Errorf("evaluating %q: want missing %v at %d, got %v at %d", c.src, c.side, c.col, u.Side, u.Col)
			}
			if !strings.Contains(err.Error(), c.side.String()) {
				t.Errorf("%q doesn't mention %v", err.Error(), c.side)
			}
		})
	}
}

func TestEvalParseError(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		lexeme string
		col    int
		eval   func(string) error
	}{
		{"int-name", "1+abc", "abc", 3, evalErr[int64](calc.Ints{})},
		{"int-const", "2pi", "pi", 2, evalErr[int64](calc.Ints{})},
		{"int-frac", "1.5", "1.5", 1, evalErr[int64](calc.Ints{})},
		{"int-exponent", "2+1e5", "1e5", 3, evalErr[int64](calc.Ints{})},
		{"int-huge", "9223372036854775808", "9223372036854775808", 1, evalErr[int64](calc.Ints{})},
		{"real-name", "2*abc", "abc", 3, evalErr[float64](calc.Reals{})},
		{"real-dots", "1..2", "1..2", 1, evalErr[float64](calc.Reals{})},
		{"real-i", "i", "i", 1, evalErr[float64](calc.Reals{})},
		{"real-nan", "1+nan", "nan", 3, evalErr[float64](calc.Reals{})},
		{"real-nan-upper", "NaN", "NaN", 1, evalErr[float64](calc.Reals{})},
		{"complex-nan", "2 nan", "nan", 3, evalErr[calc.Complex](calc.Complexes{})},
		{"complex-name", "q", "q", 1, evalErr[calc.Complex](calc.Complexes{})},
		{"float-name", "3 zz", "zz", 3, evalErr[*big.Float](calc.Floats{})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.eval(c.src)
			var p *calc.ParseError
			if !errors.As(err, &p) {
				t.Fatalf("evaluating %q gave %v, not ParseError", c.src, err)
			}
			if p.Lexeme != c.lexeme || p.Col != c.col {
				t.Errorf("evaluating %q: want %q at %d, got %q at %d", c.src, c.lexeme, c.col, p.Lexeme, p.Col)
			}
			if !strings.Contains(err.Error(), c.lexeme) {
				t.Errorf("%q doesn't mention %q", err.Error(), c.lexeme)
			}
		})
	}
}

func evalErr[T any](d calc.Domain[T]) func(string) error {
	return func(src string) error {
		_, err := calc.EvalString(src, d)
		return err
	}
}

func TestEvalOpError(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		target interface{}
		eval   func(string) error
	}{
		{"int-root", "2√16", new(*calc.UnsupportedError), evalErr[int64](calc.Ints{})},
		{"int-neg-exp", "2^(0-1)", new(*calc.UnsupportedError), evalErr[int64](calc.Ints{})},
		{"int-add-overflow", "9223372036854775807+1", new(*calc.OverflowError), evalErr[int64](calc.Ints{})},
		{"int-sub-overflow", "0-9223372036854775807-2", new(*calc.OverflowError), evalErr[int64](calc.Ints{})},
		{"int-mul-overflow", "4294967296*4294967296", new(*calc.OverflowError), evalErr[int64](calc.Ints{})},
		{"int-pow-overflow", "2^63", new(*calc.OverflowError), evalErr[int64](calc.Ints{})},
		{"int-pow-overflow-large", "10^100", new(*calc.OverflowError), evalErr[int64](calc.Ints{})},
		{"int-div-zero", "1/0", new(*calc.DomainError), evalErr[int64](calc.Ints{})},
		{"real-zero-zero", "0/0", new(*calc.DomainError), evalErr[float64](calc.Reals{})},
		{"real-inf-inf", "inf/inf", new(*calc.DomainError), evalErr[float64](calc.Reals{})},
		{"real-neg-frac-pow", "(0-1)^0.5", new(*calc.DomainError), evalErr[float64](calc.Reals{})},
		{"complex-div-zero", "i/0", new(*calc.DomainError), evalErr[calc.Complex](calc.Complexes{})},
		{"float-zero-zero", "0/0", new(*calc.DomainError), evalErr[*big.Float](calc.Floats{})},
		{"float-inf-minus-inf", "inf-inf", new(*calc.DomainError), evalErr[*big.Float](calc.Floats{})},
		{"float-neg-frac-pow", "(0-1)^0.5", new(*calc.DomainError), evalErr[*big.Float](calc.Floats{})},
		{"float-zero-root", "0√2", new(*calc.DomainError), evalErr[*big.Float](calc.Floats{})},
		{"empty", "", new(*calc.EmptyExpressionError), evalErr[int64](calc.Ints{})},
		{"empty-spaces", "   ", new(*calc.EmptyExpressionError), evalErr[int64](calc.Ints{})},
		{"empty-group", "()", new(*calc.EmptyExpressionError), evalErr[int64](calc.Ints{})},
		{"unmatched-close", "1+2)", new(*calc.BracketError), evalErr[int64](calc.Ints{})},
		{"unmatched-open", "(1+2", new(*calc.BracketError), evalErr[int64](calc.Ints{})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.eval(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			if !errors.As(err, c.target) {
				t.Errorf("evaluating %q gave %#v, not %T", c.src, err, c.target)
			}
			var ie calc.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%#v is not an InputError", err)
			} else if ie.Pos() <= 0 {
				t.Errorf("%#v has no position", err)
			}
		})
	}
}

func TestEvalIntRootMessage(t *testing.T) {
	_, err := calc.EvalString[int64]("2√16", calc.Ints{})
	var u *calc.UnsupportedError
	if !errors.As(err, &u) {
		t.Fatalf("wrong error %v", err)
	}
	if u.Op != "√" || u.Domain != "int" || u.Col != 2 {
		t.Errorf("wrong error fields %+v", u)
	}
}

func TestCalculator(t *testing.T) {
	cases := []struct {
		domain string
		src    string
		r      string
	}{
		{"int", "7/2", "3"},
		{"INT", "2^10", "1024"},
		{"real", "7/2", "3.5"},
		{"real", "2√16", "4"},
		{"real", "95%", "0.95"},
		{"real", "10^21", "1e+21"},
		{"complex", "i", "i"},
		{"complex", "0-i", "-i"},
		{"complex", "i*i", "-1"},
		{"complex", "3-2i", "3 - 2i"},
		{"complex", "0", "0"},
		{"float", "7/2", "3.5"},
		{"float", "2^10", "1024"},
	}
	for _, c := range cases {
		calculator, err := calc.Lookup(c.domain, 0)
		if err != nil {
			t.Errorf("looking up %q: %v", c.domain, err)
			continue
		}
		r, err := calculator.Calculate(c.src)
		if err != nil {
			t.Errorf("%s: evaluating %q: %v", c.domain, c.src, err)
			continue
		}
		if r != c.r {
			t.Errorf("%s: evaluating %q: want %s, got %s", c.domain, c.src, c.r, r)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := calc.Lookup("quaternion", 0)
	if !errors.Is(err, calc.ErrUnknownDomain) {
		t.Errorf("wrong error %v", err)
	}
	for _, name := range calc.DomainNames() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("%q doesn't list %q", err.Error(), name)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("ints", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calc.EvalString[int64]("(1+3)*(5-2)^2", calc.Ints{})
		}
	})
	b.Run("reals", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calc.EvalString[float64]("2pi(1+3)*(5-2)^2", calc.Reals{})
		}
	})
	b.Run("floats", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			calc.EvalString[*big.Float]("2pi(1+3)*(5-2)^2", calc.Floats{Prec: 128})
		}
	})
}

func Example() {
	for _, src := range []string{"1+2*3", "(1+3)*2", "2^3^2", "7/2", "2√16", "95%"} {
		r, err := calc.EvalString[float64](src, calc.Reals{})
		if err != nil {
			fmt.Println(src, "error:", err)
			continue
		}
		fmt.Println(src, "=", r)
	}

	// Output:
	// 1+2*3 = 7
	// (1+3)*2 = 8
	// 2^3^2 = 64
	// 7/2 = 3.5
	// 2√16 = 4
	// 95% = 0.95
}

func ExampleLookup() {
	c, err := calc.Lookup("complex", 0)
	if err != nil {
		panic(err)
	}
	r, err := c.Calculate("(1+2i)(1-2i)")
	fmt.Println(r, err)
	_, err = c.Calculate("1+")
	fmt.Println(err)

	// Output:
	// 5 <nil>
	// 2: missing right operand for "+"
}
