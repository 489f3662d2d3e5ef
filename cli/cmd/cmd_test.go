package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testGrammar = `
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
`

func writeGrammar(t *testing.T, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "grammar.yaml")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCheckRun(t *testing.T) {
	cmd := Check{Grammar: writeGrammar(t, testGrammar)}
	if err := cmd.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestCheckRunInvalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unknown_reference", `
rules:
  sum:
    sequence:
      atoms: [digit, digit]
`},
		{"ambiguous_start", `
rules:
  a: {match: "a"}
  b: {match: "b"}
`},
		{"not_yaml", `:{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Check{Grammar: writeGrammar(t, tt.source)}
			if err := cmd.Run(context.Background()); err == nil {
				t.Error("Run() = nil, want error")
			}
		})
	}
}

func TestMatchRunRuleNotFound(t *testing.T) {
	cmd := Match{
		Grammar: writeGrammar(t, testGrammar),
		Input:   "1+2",
		Rule:    "nope",
	}

	err := cmd.Run(context.Background())
	if !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("Run() = %v, want ErrRuleNotFound", err)
	}
}

func TestMatchRunNoMatch(t *testing.T) {
	cmd := Match{
		Grammar: writeGrammar(t, testGrammar),
		Input:   "4+5",
	}

	err := cmd.Run(context.Background())
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Run() = %v, want ErrNoMatch", err)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello\n"},
		{"int", 3, "3\n"},
		{"slice", []any{"a", "b"}, "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			if err := render(&b, tt.value); err != nil {
				t.Fatalf("render(%v) error: %v", tt.value, err)
			}

			if b.String() != tt.want {
				t.Errorf("render(%v) = %q, want %q", tt.value, b.String(), tt.want)
			}
		})
	}
}
