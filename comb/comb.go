package comb

// Parser consumes input and produces a value of type T together with the
// remaining input. On failure it returns a non-nil error and the input it
// was given, unchanged.
type Parser[T any] func(in Input) (T, Input, error)

// Parse runs the parser against source from the beginning.
func (p Parser[T]) Parse(source string) (T, Input, error) {
	return p(NewInput(source))
}

// Pair is the ordered result of running two parsers in sequence.
// Sequences of more than two parsers nest in Tail, so the result of a
// three-step sequence has the shape Pair{r1, Pair{r2, r3}}.
type Pair[A, B any] struct {
	Head A
	Tail B
}

// Exact returns a parser that succeeds iff the next runes of input equal
// token, consuming them. On failure nothing is consumed.
func Exact(token string) Parser[string] {
	want := len([]rune(token))

	return func(in Input) (string, Input, error) {
		if got := in.peek(want); got != token {
			return "", in, &ParseError{
				Pos:      in.Pos(),
				Expected: token,
				Actual:   got,
			}
		}

		return token, in.advance(want), nil
	}
}

// Seq2 runs p, then q on the remainder, and succeeds with the ordered pair
// of their results iff both succeed in order. The failure of either step is
// returned unchanged.
func Seq2[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return func(in Input) (Pair[A, B], Input, error) {
		head, next, err := p(in)
		if err != nil {
			return Pair[A, B]{}, in, err
		}

		tail, rest, err := q(next)
		if err != nil {
			return Pair[A, B]{}, in, err
		}

		return Pair[A, B]{Head: head, Tail: tail}, rest, nil
	}
}

// Alt2 tries p and, if p fails, tries q on the original input. p is always
// attempted before q, and the first success wins.
func Alt2[A any](p, q Parser[A]) Parser[A] {
	return func(in Input) (A, Input, error) {
		val, rest, err := p(in)
		if err == nil {
			return val, rest, nil
		}

		return q(in)
	}
}

// Map runs p and, on success, applies f to its result. f is evaluated only
// after p succeeds, and only once per successful attempt. Failures
// propagate unchanged.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (B, Input, error) {
		val, rest, err := p(in)
		if err != nil {
			var zero B

			return zero, in, err
		}

		return f(val), rest, nil
	}
}

// Many applies p zero or more times, collecting the results in order. It
// stops at the first failure, or when p succeeds without consuming input.
// Many itself never fails.
func Many[A any](p Parser[A]) Parser[[]A] {
	return func(in Input) ([]A, Input, error) {
		var out []A

		cur := in

		for {
			val, rest, err := p(cur)
			if err != nil {
				return out, cur, nil
			}

			if rest.Pos() == cur.Pos() {
				return out, rest, nil
			}

			out = append(out, val)
			cur = rest
		}
	}
}

// Erase adapts a typed parser into the erased form the expansion layer
// composes. Failure leaves the input untouched, as with every parser.
func Erase[T any](p Parser[T]) Parser[any] {
	return func(in Input) (any, Input, error) {
		val, rest, err := p(in)
		if err != nil {
			return nil, in, err
		}

		return val, rest, nil
	}
}

// Flatten expands right-nested erased Pair values into a flat left-to-right
// slice. Any value that is not a Pair[any, any] flattens to itself.
func Flatten(v any) []any {
	pair, ok := v.(Pair[any, any])
	if !ok {
		return []any{v}
	}

	return append(Flatten(pair.Head), Flatten(pair.Tail)...)
}
