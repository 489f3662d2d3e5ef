package expand

import (
	"log/slog"

	"github.com/cedarparse/cedar/comb"
)

// Kind discriminates the three atom shapes.
type Kind int

const (
	// KindLiteral marks an atom holding a token to match exactly.
	// It is the zero value, so the zero Atom is an empty literal.
	KindLiteral Kind = iota

	// KindRef marks an atom naming a parser bound in the enclosing Scope.
	KindRef

	// KindExpression marks an atom holding an arbitrary parser expression,
	// used verbatim.
	KindExpression
)

// String returns a string representation of the atom kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"

	case KindRef:
		return "Ref"

	case KindExpression:
		return "Expression"

	default:
		return "Unknown"
	}
}

// Atom is one syntactic unit of a sequence or select description. Exactly
// one of the three shapes applies, chosen by the constructor used.
type Atom struct {
	kind  Kind
	expr  comb.Parser[any]
	name  string
	token string
}

// Expression wraps an already-built parser expression, used verbatim.
// The caller asserts that p behaves as a parser; nothing is checked here.
func Expression(p comb.Parser[any]) Atom {
	return Atom{kind: KindExpression, expr: p}
}

// Ref names a parser bound in the [Scope] the expansion runs under. The
// name is not validated during expansion; a name no scope binds fails at
// parse time with [ErrUnboundRef].
func Ref(name string) Atom {
	return Atom{kind: KindRef, name: name}
}

// Literal holds a token that the expanded parser matches exactly.
func Literal(token string) Atom {
	return Atom{kind: KindLiteral, token: token}
}

// Kind returns the atom's shape.
func (a Atom) Kind() Kind { return a.kind }

// Name returns the bound name for [KindRef] atoms, and "" otherwise.
func (a Atom) Name() string { return a.name }

// Token returns the literal token for [KindLiteral] atoms, and ""
// otherwise.
func (a Atom) Token() string { return a.token }

// Scope maps bound names to parser values. Ref atoms resolve against it
// when the produced parser runs, not when it is built, so rules may refer
// to one another — and to themselves — regardless of definition order.
type Scope map[string]comb.Parser[any]

// Normalize produces the parser expression an atom denotes:
// an Expression atom yields its parser unchanged, a Ref atom yields a
// lookup of its name in the scope, and a Literal atom yields
// [comb.Exact] applied to its token.
//
// Normalize is total over atoms and performs no validation; a Ref whose
// name the scope does not bind produces a parser that fails with
// [ErrUnboundRef] when run.
func Normalize(a Atom, opts ...Option) comb.Parser[any] {
	cfg := makeConfig(opts...)

	return normalize(a, cfg.scope)
}

func normalize(a Atom, scope Scope) comb.Parser[any] {
	switch a.kind {
	case KindExpression:
		return a.expr

	case KindRef:
		name := a.name

		return func(in comb.Input) (any, comb.Input, error) {
			p, ok := scope[name]
			if !ok {
				return nil, in, ErrUnboundRef.With(slog.String("name", name))
			}

			return p(in)
		}

	default:
		return comb.Erase(comb.Exact(a.token))
	}
}
