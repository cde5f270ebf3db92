package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexeme of an expression. Operand tokens carry the raw
// text of a number or named constant; it is resolved to a value only during
// evaluation.
type Token struct {
	// Kind is the role of the token.
	Kind Kind
	// Text is the lexeme. For operators, it is the canonical symbol.
	Text string
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// Kind is the kind of a token.
type Kind int8

const (
	KindNone Kind = iota
	// Operand is a number or named constant.
	Operand
	// Add is +.
	Add
	// Sub is -.
	Sub
	// Mul is *, ×, x, or X. Implicit multiplication also produces Mul.
	Mul
	// Div is / or ÷.
	Div
	// Pow is ^.
	Pow
	// Root is √. a√b is the a-th root of b.
	Root
	// Percent is %, a postfix operator.
	Percent
	// Open is (.
	Open
	// Close is ).
	Close
)

var kindNames = [...]string{
	KindNone: "None",
	Operand:  "Operand",
	Add:      "Add",
	Sub:      "Sub",
	Mul:      "Mul",
	Div:      "Div",
	Pow:      "Pow",
	Root:     "Root",
	Percent:  "Percent",
	Open:     "Open",
	Close:    "Close",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Operators contains the runes which are lexed as operators and brackets.
// Each of them ends any operand being scanned.
const Operators = "+-*xX×/÷^√%()"

// symbol gets the operator kind and canonical text for an operator rune. The
// kind is KindNone if r is not an operator.
func symbol(r rune) (Kind, string) {
	switch r {
	case '+':
		return Add, "+"
	case '-':
		return Sub, "-"
	case '*', 'x', 'X', '×':
		return Mul, "*"
	case '/', '÷':
		return Div, "/"
	case '^':
		return Pow, "^"
	case '√':
		return Root, "√"
	case '%':
		return Percent, "%"
	case '(':
		return Open, "("
	case ')':
		return Close, ")"
	default:
		return KindNone, ""
	}
}

type lexer struct {
	src io.RuneReader
	// buf accumulates operand text.
	buf strings.Builder
	// start is the column of the first rune in buf.
	start int
	// num is whether buf holds a number rather than a name.
	num bool
	// exp is whether the number in buf has an exponent.
	exp bool
	// back is a rune read ahead and returned to the input, valid if unread.
	back   rune
	unread bool
	// err is a read error found while looking ahead, returned by the next
	// read.
	err error
	// col is the column of the last rune read.
	col int
	// q holds tokens produced but not yet returned. At most two are pending:
	// a flushed operand and the operator that ended it.
	q   [2]Token
	nq  int
	eof bool
}

func lex(src io.RuneReader) *lexer {
	return &lexer{src: src}
}

// next scans the next token from the input. After the last token, the result
// is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	for l.nq == 0 {
		if l.eof {
			return Token{}, io.EOF
		}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				l.flush()
				continue
			}
			return Token{}, err
		}
		if (r == 'e' || r == 'E') && l.num && !l.exp && l.buf.Len() != 0 {
			// An exponent marker belongs to the number only if a digit
			// follows; otherwise 2e is 2 * e.
			ok, err := l.scanExp(r)
			if err != nil {
				return Token{}, err
			}
			if ok {
				continue
			}
		}
		if unicode.IsSpace(r) {
			l.flush()
			continue
		}
		if k, s := symbol(r); k != KindNone {
			l.flush()
			l.emit(Token{Kind: k, Text: s, Pos: l.col})
			continue
		}
		// Numbers and names are separate operands even when adjacent, so
		// that 2pi is 2 * pi.
		num := isNumeric(r)
		if l.buf.Len() != 0 && num != l.num {
			l.flush()
		}
		if l.buf.Len() == 0 {
			l.start = l.col
			l.num = num
			l.exp = false
		}
		l.buf.WriteRune(r)
	}
	tok := l.q[0]
	l.q[0] = l.q[1]
	l.q[1] = Token{}
	l.nq--
	return tok, nil
}

func (l *lexer) readRune() (rune, error) {
	if l.unread {
		l.unread = false
		l.col++
		return l.back, nil
	}
	if l.err != nil {
		return 0, l.err
	}
	r, _, err := l.src.ReadRune()
	if err != nil {
		return 0, err
	}
	l.col++
	return r, nil
}

func (l *lexer) unreadRune(r rune) {
	l.back, l.unread = r, true
	l.col--
}

// scanExp tries to continue the number in buf with the exponent marker e. It
// reports whether it did so.
func (l *lexer) scanExp(e rune) (bool, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.err = err
			return false, nil
		}
		return false, err
	}
	if '0' <= r && r <= '9' {
		l.buf.WriteRune(e)
		l.buf.WriteRune(r)
		l.exp = true
		return true, nil
	}
	l.unreadRune(r)
	return false, nil
}

// flush emits the accumulated operand, if any.
func (l *lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.emit(Token{Kind: Operand, Text: l.buf.String(), Pos: l.start})
	l.buf.Reset()
}

func isNumeric(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

func (l *lexer) emit(tok Token) {
	if l.nq == len(l.q) {
		panic("calc: lexer queue overflow")
	}
	l.q[l.nq] = tok
	l.nq++
}

// Tokenize lexes an entire expression.
func Tokenize(src string) []Token {
	var toks []Token
	l := lex(strings.NewReader(src))
	for {
		tok, err := l.next()
		if err != nil {
			// strings.Reader only fails with io.EOF.
			return toks
		}
		toks = append(toks, tok)
	}
}
