// Package calc evaluates arithmetic expressions over pluggable numeric
// domains: 64-bit integers, float64 reals, complex numbers, and
// arbitrary-precision floats.
//
// Expressions use + - * / ^ with the usual precedence, grouped with
// parentheses. x and × also multiply, and ÷ also divides. "a√b" is the a-th
// root of b, binding like ^, and "n%" is n/100. All operators are
// left-associative, so "2^3^2" is 64. Adjacent terms multiply: "2pi",
// "3 4", and "(2)3(4)" are all products. An implicit product is resolved
// only when a later operator displaces it, so "8/2 4" is 8/(2*4). Numbers may
// have a decimal exponent, as in "2.5e3".
//
// Evaluation is a pipeline of pull-driven stages. A lexer produces tokens, a
// shunting yard reorders them into postfix order, and a stack machine reduces
// the postfix stream to a value using a Domain. Nothing is retained between
// evaluations.
package calc
