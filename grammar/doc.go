// Package grammar loads declarative grammar files and links them into
// parsers using the expand package, so the expansion entry points are
// usable without writing Go.
//
// A grammar file is a YAML document naming rules:
//
//	start: expr
//	rules:
//	  digit:
//	    select:
//	      - {match: "1", value: 1}
//	      - {match: "2", value: 2}
//	      - {match: "3", value: 3}
//	  expr:
//	    sequence:
//	      atoms: [digit, "+", digit]
//	      map: "values[0] + values[2]"
//
// Every rule body is one of sequence, choice, select, match, or many.
// Atoms inside rule bodies are classified purely by shape: an unquoted
// identifier scalar references another rule, any other scalar is a literal
// token, and a mapping is an inline anonymous rule. Quoting is what tells a
// name from text; see [AtomSpec].
//
// Sequence transforms are [github.com/expr-lang/expr] programs evaluated
// against the matched values on each successful parse.
package grammar
