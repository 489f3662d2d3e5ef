package comb

// Input is an immutable cursor over a source string. Advancing returns a
// new cursor; the original remains valid, which is what lets alternation
// retry a later alternative from the same position.
type Input struct {
	src []rune
	pos int
}

// NewInput creates a cursor positioned at the start of source.
func NewInput(source string) Input {
	return Input{src: []rune(source)}
}

// Pos returns the rune offset of the cursor from the start of the source.
func (in Input) Pos() int { return in.pos }

// Len returns the number of unconsumed runes.
func (in Input) Len() int { return len(in.src) - in.pos }

// Empty reports whether the cursor has reached the end of the source.
func (in Input) Empty() bool { return in.pos >= len(in.src) }

// Remaining returns the unconsumed portion of the source.
func (in Input) Remaining() string { return string(in.src[in.pos:]) }

// advance returns a copy of the cursor moved n runes forward.
func (in Input) advance(n int) Input {
	in.pos += n

	return in
}

// peek returns up to n runes at the cursor without consuming them.
func (in Input) peek(n int) string {
	end := in.pos + n
	if end > len(in.src) {
		end = len(in.src)
	}

	return string(in.src[in.pos:end])
}
