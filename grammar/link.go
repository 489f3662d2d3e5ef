package grammar

import (
	"log/slog"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/cedarparse/cedar/comb"
	"github.com/cedarparse/cedar/expand"
	"github.com/cedarparse/cedar/log"
)

// linkConfig holds Link options.
type linkConfig struct {
	logger log.Logger
}

// Option configures linking.
type Option func(*linkConfig)

// WithLogger sets the structured logger for trace-level linking and
// expansion logging. The zero value logger is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *linkConfig) {
		c.logger = logger
	}
}

// Linked is the result of linking a grammar file: every rule compiled into
// a parser bound in a shared scope, plus the start rule's parser.
type Linked struct {
	Scope     expand.Scope
	Start     comb.Parser[any]
	StartName string
}

// Link compiles every rule into a parser bound in a shared [expand.Scope]
// and returns the scope together with the start parser.
//
// Rule references resolve through the scope when a parser runs, so rule
// order is unrestricted and rules may be recursive. Link still walks every
// reference up front and rejects names that no rule defines, so a dangling
// reference is caught here rather than mid-parse; unknown names are
// reported with close-match suggestions.
func (f *File) Link(opts ...Option) (*Linked, error) {
	var cfg linkConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if len(f.Rules) == 0 {
		return nil, ErrNoRules
	}

	names := slices.Sorted(func(yield func(string) bool) {
		for name := range f.Rules {
			if !yield(name) {
				return
			}
		}
	})

	for _, name := range names {
		rule := f.Rules[name]
		if err := checkRule(name, &rule, names); err != nil {
			return nil, err
		}
	}

	scope := expand.Scope{}

	for _, name := range names {
		rule := f.Rules[name]

		p, err := compileRule(name, &rule, scope, cfg.logger)
		if err != nil {
			return nil, err
		}

		scope[name] = p

		cfg.logger.Trace("rule linked", slog.String("rule", name))
	}

	start := f.Start
	if start == "" {
		if len(names) != 1 {
			return nil, ErrNoStart.With(slog.Int("rules", len(names)))
		}

		start = names[0]
	}

	sp, ok := scope[start]
	if !ok {
		return nil, ErrUnknownRule.With(
			slog.String("name", start),
			slog.Any("did_you_mean", suggest(start, names)),
		)
	}

	cfg.logger.Debug(
		"grammar linked",
		slog.Int("rules", len(names)),
		slog.String("start", start),
	)

	return &Linked{Scope: scope, Start: sp, StartName: start}, nil
}

// checkRule validates a rule's shape and verifies that every rule name it
// references is defined.
func checkRule(name string, r *Rule, names []string) error {
	if r.kindCount() != 1 {
		return ErrRuleKind.With(slog.String("rule", name))
	}

	var atoms []AtomSpec

	switch {
	case r.Sequence != nil:
		atoms = r.Sequence.Atoms

	case r.Choice != nil:
		atoms = r.Choice

	case r.Select != nil:
		for _, branch := range r.Select {
			atoms = append(atoms, branch.Match)
		}

	case r.Many != nil:
		atoms = []AtomSpec{*r.Many}
	}

	for _, atom := range atoms {
		if err := checkAtom(name, &atom, names); err != nil {
			return err
		}
	}

	return nil
}

// checkAtom verifies one atom: references must name a defined rule, and
// inline rules are checked recursively.
func checkAtom(rule string, a *AtomSpec, names []string) error {
	switch a.kind {
	case atomRef:
		if !slices.Contains(names, a.ref) {
			return ErrUnknownRule.With(
				slog.String("rule", rule),
				slog.String("name", a.ref),
				slog.Any("did_you_mean", suggest(a.ref, names)),
			)
		}

	case atomInline:
		return checkRule(rule, a.inline, names)

	case atomNone:
		return ErrAtomShape.With(slog.String("rule", rule))
	}

	return nil
}

// compileRule expands one rule body into a parser.
func compileRule(
	name string,
	r *Rule,
	scope expand.Scope,
	logger log.Logger,
) (comb.Parser[any], error) {
	switch {
	case r.Sequence != nil:
		return compileSequence(name, r.Sequence, scope, logger)

	case r.Choice != nil:
		parsers := make([]comb.Parser[any], len(r.Choice))

		for i, spec := range r.Choice {
			p, err := atomParser(name, &spec, scope, logger)
			if err != nil {
				return nil, err
			}

			parsers[i] = p
		}

		p, err := expand.Choice(parsers, expand.WithLogger(logger))
		if err != nil {
			return nil, ErrExpandRule.Wrap(err).With(slog.String("rule", name))
		}

		return p, nil

	case r.Select != nil:
		branches := make([]expand.Branch, len(r.Select))

		for i, branch := range r.Select {
			atom, err := convertAtom(name, &branch.Match, scope, logger)
			if err != nil {
				return nil, err
			}

			branches[i] = expand.Branch{Atom: atom, Value: branch.Value}
		}

		p, err := expand.Select(
			branches,
			expand.WithScope(scope),
			expand.WithLogger(logger),
		)
		if err != nil {
			return nil, ErrExpandRule.Wrap(err).With(slog.String("rule", name))
		}

		return p, nil

	case r.Match != nil:
		return comb.Erase(comb.Exact(*r.Match)), nil

	case r.Many != nil:
		p, err := atomParser(name, r.Many, scope, logger)
		if err != nil {
			return nil, err
		}

		return comb.Erase(comb.Many(p)), nil

	default:
		return nil, ErrRuleKind.With(slog.String("rule", name))
	}
}

// compileSequence expands a sequence rule, attaching its transform when one
// is given.
func compileSequence(
	name string,
	seq *SequenceRule,
	scope expand.Scope,
	logger log.Logger,
) (comb.Parser[any], error) {
	atoms := make([]expand.Atom, len(seq.Atoms))

	for i, spec := range seq.Atoms {
		atom, err := convertAtom(name, &spec, scope, logger)
		if err != nil {
			return nil, err
		}

		atoms[i] = atom
	}

	p, err := expand.Sequence(
		atoms,
		expand.WithScope(scope),
		expand.WithLogger(logger),
	)
	if err != nil {
		return nil, ErrExpandRule.Wrap(err).With(slog.String("rule", name))
	}

	if seq.Map == "" {
		return p, nil
	}

	prog, err := compileTransform(seq.Map)
	if err != nil {
		return nil, ErrTransformCompile.Wrap(err).With(
			slog.String("rule", name),
			slog.String("map", seq.Map),
		)
	}

	// The transform can fail at runtime, which comb.Map cannot express, so
	// the sequence is wrapped directly. Evaluation still happens only after
	// the sequence succeeds, once per successful attempt.
	return func(in comb.Input) (any, comb.Input, error) {
		val, rest, err := p(in)
		if err != nil {
			return nil, in, err
		}

		out, err := runTransform(prog, val)
		if err != nil {
			return nil, in, ErrTransform.Wrap(err).With(slog.String("rule", name))
		}

		return out, rest, nil
	}, nil
}

// convertAtom maps a decoded atom spec onto an expansion atom. Inline rules
// compile to parsers wrapped as expression atoms.
func convertAtom(
	rule string,
	a *AtomSpec,
	scope expand.Scope,
	logger log.Logger,
) (expand.Atom, error) {
	switch a.kind {
	case atomRef:
		return expand.Ref(a.ref), nil

	case atomLiteral:
		return expand.Literal(a.lit), nil

	case atomInline:
		p, err := compileRule(rule, a.inline, scope, logger)
		if err != nil {
			return expand.Atom{}, err
		}

		return expand.Expression(p), nil

	default:
		return expand.Atom{}, ErrAtomShape.With(slog.String("rule", rule))
	}
}

// atomParser normalizes one atom against the shared scope.
func atomParser(
	rule string,
	a *AtomSpec,
	scope expand.Scope,
	logger log.Logger,
) (comb.Parser[any], error) {
	atom, err := convertAtom(rule, a, scope, logger)
	if err != nil {
		return nil, err
	}

	return expand.Normalize(atom, expand.WithScope(scope)), nil
}

// maxSuggestions bounds how many close matches an unknown-rule error
// carries.
const maxSuggestions = 3

// suggest returns up to maxSuggestions rule names fuzzy-matching name.
func suggest(name string, names []string) []string {
	matches := fuzzy.Find(name, names)

	out := make([]string, 0, maxSuggestions)

	for i, m := range matches {
		if i == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
