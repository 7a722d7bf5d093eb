// Package xmatch matches two algebraic expressions structurally.
//
// Matching aligns the binary operator trees of two expressions and yields the
// set of corresponding sub-expression pairs, which an outer unifier can use to
// decide whether one expression is an instance of the other. Two policies are
// provided: ShallowMatch treats a matched power as one indivisible pair, while
// DeepMatch splits a matched power into base and exponent correspondences.
//
// The syntax of expressions is intended to be similar to math you'd write in
// your notes, with maybe a few more spaces. "a**2 + b" and "a^2+b" parse to
// the same tree, and "2 x y" is a multiplication of three terms. Expressions
// are compared syntactically, never semantically: "a+b" and "b+a" do not
// match, and no arithmetic is ever performed.
package xmatch
