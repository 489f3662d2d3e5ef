package grammar

import (
	"errors"
	"testing"

	"github.com/cedarparse/cedar/expand"
)

func mustLink(t *testing.T, source string) *Linked {
	t.Helper()

	f, err := Decode([]byte(source))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	linked, err := f.Link()
	if err != nil {
		t.Fatalf("link error: %v", err)
	}

	return linked
}

func TestDecode_AtomClassification(t *testing.T) {
	f, err := Decode([]byte(`
rules:
  expr:
    sequence:
      atoms: [digit, "+", {match: plus}, 7]
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	atoms := f.Rules["expr"].Sequence.Atoms
	if len(atoms) != 4 {
		t.Fatalf("expected 4 atoms, got %d", len(atoms))
	}

	if name, ok := atoms[0].Ref(); !ok || name != "digit" {
		t.Errorf("atom 0: expected ref to digit, got %+v", atoms[0])
	}

	if lit, ok := atoms[1].Literal(); !ok || lit != "+" {
		t.Errorf("atom 1: expected literal +, got %+v", atoms[1])
	}

	if rule, ok := atoms[2].Inline(); !ok || rule.Match == nil || *rule.Match != "plus" {
		t.Errorf("atom 2: expected inline match rule, got %+v", atoms[2])
	}

	// An unquoted scalar decodes to its source text as a literal.
	if lit, ok := atoms[3].Literal(); !ok || lit != "7" {
		t.Errorf("atom 3: expected literal 7, got %+v", atoms[3])
	}
}

func TestDecode_QuotingDisambiguates(t *testing.T) {
	// Unquoted plus names a rule; quoted "plus" is the token itself.
	f, err := Decode([]byte(`
rules:
  r:
    choice: [plus, "plus", 'plus']
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	atoms := f.Rules["r"].Choice

	if name, ok := atoms[0].Ref(); !ok || name != "plus" {
		t.Errorf("expected unquoted identifier to be a reference: %+v", atoms[0])
	}

	if lit, ok := atoms[1].Literal(); !ok || lit != "plus" {
		t.Errorf("expected double-quoted scalar to be a literal: %+v", atoms[1])
	}

	if lit, ok := atoms[2].Literal(); !ok || lit != "plus" {
		t.Errorf("expected single-quoted scalar to be a literal: %+v", atoms[2])
	}
}

func TestLink_SelectMany(t *testing.T) {
	linked := mustLink(t, `
start: letters
rules:
  letter:
    select:
      - {match: "A", value: LetterA}
      - {match: "B", value: LetterB}
      - {match: "C", value: LetterC}
      - {match: "D", value: LetterD}
  letters:
    many: letter
`)

	val, rest, err := linked.Start.Parse("ADBC")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !rest.Empty() {
		t.Errorf("expected full consumption, remaining %q", rest.Remaining())
	}

	vals, ok := val.([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", val)
	}

	want := []string{"LetterA", "LetterD", "LetterB", "LetterC"}
	if len(vals) != len(want) {
		t.Fatalf("expected %d values, got %v", len(want), vals)
	}

	for i, w := range want {
		if vals[i] != w {
			t.Errorf("index %d: expected %q, got %v", i, w, vals[i])
		}
	}
}

func TestLink_SequenceTransform(t *testing.T) {
	linked := mustLink(t, `
start: sum
rules:
  digit:
    select:
      - {match: "1", value: 1}
      - {match: "2", value: 2}
      - {match: "3", value: 3}
  sum:
    sequence:
      atoms: [digit, "+", digit]
      map: "values[0] + values[2]"
`)

	val, rest, err := linked.Start.Parse("1+2")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !rest.Empty() {
		t.Errorf("expected no unconsumed input, remaining %q", rest.Remaining())
	}

	if val != 3 {
		t.Errorf("expected 3, got %v (%T)", val, val)
	}
}

func TestLink_ChoiceOrder(t *testing.T) {
	// Both alternatives match "ab"; the first listed must win.
	linked := mustLink(t, `
start: r
rules:
  r:
    choice: [{match: "ab"}, {match: "a"}]
`)

	val, rest, err := linked.Start.Parse("ab")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if val != "ab" {
		t.Errorf("expected first alternative, got %v", val)
	}

	if !rest.Empty() {
		t.Errorf("expected full consumption, remaining %q", rest.Remaining())
	}
}

func TestLink_Recursion(t *testing.T) {
	// nest : "(" nest ")" | "x" — rules may reference themselves.
	linked := mustLink(t, `
start: nest
rules:
  nest:
    choice:
      - sequence:
          atoms: ["(", nest, ")"]
      - {match: "x"}
`)

	for _, input := range []string{"x", "(x)", "((x))"} {
		_, rest, err := linked.Start.Parse(input)
		if err != nil {
			t.Errorf("input %q: parse error: %v", input, err)

			continue
		}

		if !rest.Empty() {
			t.Errorf("input %q: remaining %q", input, rest.Remaining())
		}
	}

	if _, _, err := linked.Start.Parse("(x"); err == nil {
		t.Error("expected failure on unbalanced input")
	}
}

func TestLink_UnknownReference(t *testing.T) {
	f, err := Decode([]byte(`
start: expr
rules:
  digit:
    select:
      - {match: "1", value: 1}
      - {match: "2", value: 2}
  expr:
    sequence:
      atoms: [digti, {match: "+"}, digit]
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	_, err = f.Link()
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}

func TestLink_StaticArity(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name: "single branch select",
			source: `
rules:
  r:
    select:
      - {match: "a", value: 1}
`,
		},
		{
			name: "single atom sequence",
			source: `
rules:
  r:
    sequence:
      atoms: ["a"]
`,
		},
		{
			name: "single alternative choice",
			source: `
rules:
  r:
    choice: ["a"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode([]byte(tt.source))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}

			_, err = f.Link()
			if !errors.Is(err, ErrExpandRule) {
				t.Fatalf("expected ErrExpandRule, got %v", err)
			}

			if !errors.Is(err, expand.ErrArity) {
				t.Errorf("expected wrapped expand.ErrArity, got %v", err)
			}
		})
	}
}

func TestLink_RuleKind(t *testing.T) {
	f, err := Decode([]byte(`
rules:
  r:
    match: "a"
    many: r
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if _, err = f.Link(); !errors.Is(err, ErrRuleKind) {
		t.Fatalf("expected ErrRuleKind, got %v", err)
	}
}

func TestLink_StartInference(t *testing.T) {
	linked := mustLink(t, `
rules:
  only:
    match: "a"
`)

	if linked.StartName != "only" {
		t.Errorf("expected inferred start %q, got %q", "only", linked.StartName)
	}

	f, err := Decode([]byte(`
rules:
  a: {match: "a"}
  b: {match: "b"}
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if _, err = f.Link(); !errors.Is(err, ErrNoStart) {
		t.Errorf("expected ErrNoStart with multiple rules, got %v", err)
	}
}

func TestLink_NoRules(t *testing.T) {
	f, err := Decode([]byte(`start: r`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if _, err = f.Link(); !errors.Is(err, ErrNoRules) {
		t.Errorf("expected ErrNoRules, got %v", err)
	}
}

func TestLink_TransformError(t *testing.T) {
	// Compile error is caught at link time.
	f, err := Decode([]byte(`
rules:
  r:
    sequence:
      atoms: ["a", "b"]
      map: "values["
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if _, err = f.Link(); !errors.Is(err, ErrTransformCompile) {
		t.Fatalf("expected ErrTransformCompile, got %v", err)
	}

	// A program that fails at run time surfaces as a parse-time error.
	linked := mustLink(t, `
rules:
  r:
    sequence:
      atoms: ["a", "b"]
      map: "values[9]"
`)

	if _, _, err := linked.Start.Parse("ab"); !errors.Is(err, ErrTransform) {
		t.Errorf("expected ErrTransform, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"digit", "expr", "letters"}

	got := suggest("digt", names)
	if len(got) == 0 || got[0] != "digit" {
		t.Errorf("expected digit suggested first, got %v", got)
	}
}
