package expand

import (
	"log/slog"

	"github.com/cedarparse/cedar/comb"
)

// minElements is the smallest element count any expansion accepts: a single
// element needs no sequencing or alternation, so supplying one (or none) is
// a usage error.
const minElements = 2

// Sequence folds two or more atoms into right-nested ordered-pair
// sequencing. On success the produced parser yields the right-nested
// [comb.Pair] of each step's result: for atoms a, b, c the value has the
// shape (ra, (rb, rc)).
//
// [WithTransform] wraps the fold in [comb.Map], so the transform receives
// the full nested value, is evaluated only when the whole sequence
// succeeds, and is evaluated once per successful attempt.
//
// Supplying fewer than two atoms returns [ErrArity] before any parser is
// produced.
func Sequence(atoms []Atom, opts ...Option) (comb.Parser[any], error) {
	cfg := makeConfig(opts...)

	if len(atoms) < minElements {
		return nil, ErrArity.With(
			slog.String("expansion", "sequence"),
			slog.Int("need", minElements),
			slog.Int("have", len(atoms)),
		)
	}

	cfg.logger.Trace(
		"expand sequence",
		slog.Int("atoms", len(atoms)),
		slog.Bool("transform", cfg.transform != nil),
	)

	p := foldSequence(atoms, cfg.scope)

	if cfg.transform != nil {
		p = comb.Map(p, cfg.transform)
	}

	return p, nil
}

// foldSequence right-folds normalized atoms with [comb.Seq2]. The last atom
// is the fold's base case: its normalized parser stands alone.
func foldSequence(atoms []Atom, scope Scope) comb.Parser[any] {
	head := normalize(atoms[0], scope)

	if len(atoms) == 1 {
		return head
	}

	return comb.Erase(comb.Seq2(head, foldSequence(atoms[1:], scope)))
}

// Choice folds two or more parser expressions into right-nested ordered
// alternation. The elements are taken as written; no atom classification
// is applied. Alternatives are attempted strictly left to right; the first
// success wins and later alternatives are never consulted. The right-nested
// shape never changes that preference order.
//
// Supplying fewer than two parsers returns [ErrArity].
func Choice(parsers []comb.Parser[any], opts ...Option) (comb.Parser[any], error) {
	cfg := makeConfig(opts...)

	if len(parsers) < minElements {
		return nil, ErrArity.With(
			slog.String("expansion", "choice"),
			slog.Int("need", minElements),
			slog.Int("have", len(parsers)),
		)
	}

	cfg.logger.Trace(
		"expand choice",
		slog.Int("alternatives", len(parsers)),
	)

	return foldChoice(parsers), nil
}

// foldChoice right-folds parsers with [comb.Alt2]. The two-element list is
// the base case.
func foldChoice(parsers []comb.Parser[any]) comb.Parser[any] {
	if len(parsers) == minElements {
		return comb.Alt2(parsers[0], parsers[1])
	}

	return comb.Alt2(parsers[0], foldChoice(parsers[1:]))
}

// Branch pairs an atom with the constant value its successful match
// produces in a [Select] expansion.
type Branch struct {
	Atom  Atom
	Value any
}

// Select builds, for each branch, a parser that matches the branch's atom
// and replaces the matched result with the branch's value, then folds the
// labeled parsers with the same right-nested alternation as [Choice].
// Branch atoms are normalized uniformly: a literal, a reference, and an
// expression all label the same way.
//
// Supplying fewer than two branches returns [ErrArity].
func Select(branches []Branch, opts ...Option) (comb.Parser[any], error) {
	cfg := makeConfig(opts...)

	if len(branches) < minElements {
		return nil, ErrArity.With(
			slog.String("expansion", "select"),
			slog.Int("need", minElements),
			slog.Int("have", len(branches)),
		)
	}

	cfg.logger.Trace(
		"expand select",
		slog.Int("branches", len(branches)),
	)

	labeled := make([]comb.Parser[any], len(branches))

	for i, branch := range branches {
		value := branch.Value
		labeled[i] = comb.Map(
			normalize(branch.Atom, cfg.scope),
			func(any) any { return value },
		)
	}

	return foldChoice(labeled), nil
}
