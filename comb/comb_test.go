package comb

import (
	"errors"
	"testing"
)

func TestExact(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		input    string
		wantErr  bool
		wantRest string
	}{
		{
			name:     "single rune match",
			token:    "B",
			input:    "B",
			wantRest: "",
		},
		{
			name:     "match leaves remainder",
			token:    "ab",
			input:    "abc",
			wantRest: "c",
		},
		{
			name:     "multi rune token",
			token:    "Luke",
			input:    "Luke",
			wantRest: "",
		},
		{
			name:    "mismatch",
			token:   "A",
			input:   "B",
			wantErr: true,
		},
		{
			name:    "input too short",
			token:   "abc",
			input:   "ab",
			wantErr: true,
		},
		{
			name:    "empty input",
			token:   "x",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, rest, err := Exact(tt.token).Parse(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got value %q", val)
				}

				if rest.Pos() != 0 {
					t.Errorf("failure consumed input: pos %d", rest.Pos())
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if val != tt.token {
				t.Errorf("expected value %q, got %q", tt.token, val)
			}

			if rest.Remaining() != tt.wantRest {
				t.Errorf("expected rest %q, got %q", tt.wantRest, rest.Remaining())
			}
		})
	}
}

func TestExact_ErrorDetail(t *testing.T) {
	_, _, err := Exact("+").Parse("1+2")

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if pe.Pos != 0 {
		t.Errorf("expected pos 0, got %d", pe.Pos)
	}

	if pe.Expected != "+" {
		t.Errorf("expected %q, got %q", "+", pe.Expected)
	}

	if pe.Actual != "1" {
		t.Errorf("expected actual %q, got %q", "1", pe.Actual)
	}
}

func TestSeq2(t *testing.T) {
	p := Seq2(Exact("1"), Seq2(Exact("+"), Exact("2")))

	val, rest, err := p.Parse("1+2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val.Head != "1" || val.Tail.Head != "+" || val.Tail.Tail != "2" {
		t.Errorf("unexpected pair shape: %#v", val)
	}

	if !rest.Empty() {
		t.Errorf("expected full consumption, remaining %q", rest.Remaining())
	}
}

func TestSeq2_FailureRestoresInput(t *testing.T) {
	p := Seq2(Exact("a"), Exact("b"))

	// Second step fails after the first consumed input. The caller-visible
	// cursor must be restored to the original position.
	_, rest, err := p.Parse("ac")
	if err == nil {
		t.Fatal("expected error")
	}

	if rest.Pos() != 0 {
		t.Errorf("expected restored cursor, got pos %d", rest.Pos())
	}
}

func TestAlt2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "first alternative", input: "A", want: "A"},
		{name: "second alternative", input: "B", want: "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, rest, err := Alt2(Exact("A"), Exact("B")).Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if val != tt.want {
				t.Errorf("expected %q, got %q", tt.want, val)
			}

			if rest.Len() != 0 {
				t.Errorf("expected one unit consumed, remaining %q", rest.Remaining())
			}
		})
	}
}

func TestAlt2_OrderAndShortCircuit(t *testing.T) {
	var attempts []string

	probe := func(name, token string) Parser[string] {
		return func(in Input) (string, Input, error) {
			attempts = append(attempts, name)

			return Exact(token)(in)
		}
	}

	// Both alternatives accept "x"; the first must win and the second must
	// never run.
	val, _, err := Alt2(probe("p", "x"), probe("q", "x")).Parse("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != "x" {
		t.Errorf("expected %q, got %q", "x", val)
	}

	if len(attempts) != 1 || attempts[0] != "p" {
		t.Errorf("expected only p attempted, got %v", attempts)
	}

	// On failure of the first, the second retries from the original input.
	attempts = nil

	_, _, err = Alt2(probe("p", "a"), probe("q", "x")).Parse("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(attempts) != 2 || attempts[0] != "p" || attempts[1] != "q" {
		t.Errorf("expected p then q, got %v", attempts)
	}
}

func TestMap(t *testing.T) {
	calls := 0

	p := Map(Exact("1"), func(s string) int {
		calls++

		return len(s)
	})

	val, _, err := p.Parse("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 1 {
		t.Errorf("expected 1, got %d", val)
	}

	if calls != 1 {
		t.Errorf("expected one transform call, got %d", calls)
	}

	// The transform must not run when the underlying parser fails.
	_, _, err = p.Parse("2")
	if err == nil {
		t.Fatal("expected error")
	}

	if calls != 1 {
		t.Errorf("transform ran on failure: %d calls", calls)
	}
}

func TestMany(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int
		wantRest string
	}{
		{name: "zero matches", input: "xyz", want: 0, wantRest: "xyz"},
		{name: "several matches", input: "aaab", want: 3, wantRest: "b"},
		{name: "consumes all", input: "aa", want: 2, wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, rest, err := Many(Exact("a")).Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(vals) != tt.want {
				t.Errorf("expected %d matches, got %d", tt.want, len(vals))
			}

			if rest.Remaining() != tt.wantRest {
				t.Errorf("expected rest %q, got %q", tt.wantRest, rest.Remaining())
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	nested := any(Pair[any, any]{
		Head: "1",
		Tail: Pair[any, any]{Head: "+", Tail: "2"},
	})

	flat := Flatten(nested)
	if len(flat) != 3 {
		t.Fatalf("expected 3 values, got %d: %v", len(flat), flat)
	}

	for i, want := range []string{"1", "+", "2"} {
		if flat[i] != want {
			t.Errorf("index %d: expected %q, got %v", i, want, flat[i])
		}
	}

	// A non-pair flattens to itself.
	flat = Flatten("x")
	if len(flat) != 1 || flat[0] != "x" {
		t.Errorf("expected singleton, got %v", flat)
	}
}
