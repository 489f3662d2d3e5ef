// Package comb provides the parser-combinator runtime that the expand
// package composes: an immutable cursor over rune input, a generic [Parser]
// type, and the primitive constructors [Exact], [Seq2], [Alt2], [Map], and
// [Many].
//
// # Model
//
// A parser is a function from an [Input] cursor to a value, the remaining
// input, and an error. Parsers never mutate shared state: advancing returns
// a new cursor, and a failed parser hands back the cursor it was given, so
// [Alt2] retries its second alternative from the exact position where the
// first was attempted.
//
// # Composition
//
//	sum := comb.Map(
//	    comb.Seq2(comb.Exact("1"), comb.Seq2(comb.Exact("+"), comb.Exact("2"))),
//	    func(p comb.Pair[string, comb.Pair[string, string]]) int { return 3 },
//	)
//
// Sequencing produces right-nested [Pair] values; [Flatten] recovers the
// flat left-to-right result list from the erased form.
package comb
