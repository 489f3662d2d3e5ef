// Package expand translates compact descriptions of parser-combinator
// trees (a sequence of steps, ordered alternatives, or labeled alternatives
// mapped to values) into the equivalent nested composition of [comb]
// primitives.
//
// # Atoms
//
// Each element of a sequence or select description is an [Atom], created by
// exactly one of three constructors:
//
//   - [Expression] wraps an already-built parser, used verbatim.
//   - [Ref] names a parser bound in a [Scope].
//   - [Literal] holds a token matched exactly via [comb.Exact].
//
// Classification is the caller's responsibility; no inference is performed
// and no shape is ever reinterpreted. In particular a name is always a
// reference, never a literal token, even when the same spelling would be a
// valid token — wrap the token with [Literal] to match it as text.
//
// # Expansion
//
// [Sequence], [Choice], and [Select] each fold their elements right to left
// into nested two-argument primitive calls, preserving left-to-right
// ordering semantics:
//
//	seq, err := expand.Sequence([]expand.Atom{
//	    expand.Literal("1"),
//	    expand.Literal("+"),
//	    expand.Literal("2"),
//	})
//	// seq ≅ comb.Seq2(comb.Exact("1"), comb.Seq2(comb.Exact("+"), comb.Exact("2")))
//
// Expansion is a pure, synchronous transformation: it reads its arguments,
// allocates a parser tree, and consumes no input. Every entry point is safe
// for concurrent use.
package expand
