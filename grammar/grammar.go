package grammar

import (
	"fmt"
	"os"
	"unicode"

	"github.com/goccy/go-yaml"
)

// File is the top-level document of a grammar file.
//
//	start: expr
//	rules:
//	  digit:
//	    select:
//	      - {match: "1", value: 1}
//	      - {match: "2", value: 2}
//	  expr:
//	    sequence:
//	      atoms: [digit, "+", digit]
//	      map: "values[0] + values[2]"
type File struct {
	// Start names the rule that Link exposes as the entry parser. It may be
	// omitted when the grammar has exactly one rule.
	Start string `yaml:"start"`

	// Rules maps rule names to their bodies.
	Rules map[string]Rule `yaml:"rules"`
}

// Rule is one named rule body. Exactly one of the kind fields must be set.
type Rule struct {
	// Sequence matches its atoms in order.
	Sequence *SequenceRule `yaml:"sequence,omitempty"`

	// Choice tries its atoms in order; first match wins.
	Choice []AtomSpec `yaml:"choice,omitempty"`

	// Select tries its branches in order and yields the value of the first
	// branch whose atom matches.
	Select []SelectBranch `yaml:"select,omitempty"`

	// Match matches a single literal token.
	Match *string `yaml:"match,omitempty"`

	// Many matches its atom zero or more times, collecting the results.
	Many *AtomSpec `yaml:"many,omitempty"`
}

// kindCount returns how many of the rule kind fields are set.
func (r *Rule) kindCount() int {
	count := 0

	if r.Sequence != nil {
		count++
	}

	if r.Choice != nil {
		count++
	}

	if r.Select != nil {
		count++
	}

	if r.Match != nil {
		count++
	}

	if r.Many != nil {
		count++
	}

	return count
}

// SequenceRule is the body of a sequence rule: two or more ordered atoms
// plus an optional transform program mapping the matched values.
type SequenceRule struct {
	Atoms []AtomSpec `yaml:"atoms"`

	// Map is an expr program evaluated against the matched values on every
	// successful parse. It sees "values", the results flattened left to
	// right, and "pair", the raw right-nested pair.
	Map string `yaml:"map,omitempty"`
}

// SelectBranch maps a matched atom to a constant value.
type SelectBranch struct {
	Match AtomSpec `yaml:"match"`
	Value any      `yaml:"value"`
}

// atomKind discriminates the decoded shape of an AtomSpec.
type atomKind int

const (
	atomNone atomKind = iota
	atomRef
	atomLiteral
	atomInline
)

// AtomSpec is one atom in a rule body, classified purely by shape when the
// document is decoded:
//
//   - an unquoted scalar that looks like an identifier is a reference to
//     another rule
//   - any other scalar is a literal token
//   - a mapping is an inline anonymous rule
//
// Quoting is what distinguishes a name from text: digit is a reference,
// "digit" is the five-character token. An unquoted identifier is always a
// reference, even when a rule of that name does not exist.
type AtomSpec struct {
	kind   atomKind
	ref    string
	lit    string
	inline *Rule
}

// Ref returns the referenced rule name and whether this atom is a
// reference.
func (a *AtomSpec) Ref() (string, bool) { return a.ref, a.kind == atomRef }

// Literal returns the literal token and whether this atom is a literal.
func (a *AtomSpec) Literal() (string, bool) { return a.lit, a.kind == atomLiteral }

// Inline returns the inline rule and whether this atom is an inline rule.
func (a *AtomSpec) Inline() (*Rule, bool) { return a.inline, a.kind == atomInline }

// UnmarshalYAML implements yaml decoding with the shape classification
// described on AtomSpec. It takes the raw node bytes so quoted and unquoted
// scalars can be told apart.
func (a *AtomSpec) UnmarshalYAML(data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return ErrAtomShape.Wrap(err)
	}

	switch s := v.(type) {
	case map[string]any:
		var rule Rule
		if err := yaml.Unmarshal(data, &rule); err != nil {
			return ErrAtomShape.Wrap(err)
		}

		if rule.kindCount() != 1 {
			return ErrRuleKind
		}

		a.kind = atomInline
		a.inline = &rule

	case string:
		if !quoted(data) && isIdentifier(s) {
			a.kind = atomRef
			a.ref = s
		} else {
			a.kind = atomLiteral
			a.lit = s
		}

	case nil:
		return ErrAtomShape

	default:
		// Non-string scalars like 1 or true match their source text.
		a.kind = atomLiteral
		a.lit = fmt.Sprint(s)
	}

	return nil
}

// quoted reports whether the raw scalar bytes carry YAML quoting.
func quoted(data []byte) bool {
	return len(data) > 0 && (data[0] == '"' || data[0] == '\'')
}

// isIdentifier reports whether s is identifier-shaped: a letter or
// underscore followed by letters, digits, or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// Decode parses a grammar document from YAML source.
func Decode(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return &f, nil
}

// Load reads and decodes a grammar file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return Decode(data)
}
