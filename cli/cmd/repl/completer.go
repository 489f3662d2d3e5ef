package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"rule", "rules", "help", "clear", "quit"}

// isWordBoundary reports whether the rune is a word delimiter for completion
// purposes. Rule names are plain identifiers, so only whitespace delimits.
func isWordBoundary(r rune) bool {
	return r == ' ' || r == '\t'
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a space, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// completions computes fuzzy completion candidates for command-mode input.
// The first word completes against command names; arguments to the rule
// command complete against the grammar's rule names. An empty word yields
// the full candidate list unranked.
func completions(
	input string,
	cursor int,
	names []string,
) (fuzzy.Matches, int, int) {
	word, start, end := wordBounds(input, cursor)

	var candidates []string

	switch {
	case start == 0:
		candidates = ctrlCommands
	case isRuleArgument(input[:start]):
		candidates = names
	default:
		return nil, start, end
	}

	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

// isRuleArgument reports whether the text preceding the current word is the
// rule command (or its alias), meaning the word completes as a rule name.
func isRuleArgument(prefix string) bool {
	fields := strings.Fields(prefix)
	if len(fields) != 1 {
		return false
	}

	return fields[0] == "rule" || fields[0] == "r"
}

// renderCandidateBar renders a horizontal bar of completion candidates,
// highlighting the selected one while tab-cycling, truncated to fit width.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	tabActive bool,
	width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if tabActive && i == selected {
			b.WriteString(selectedStyle.Render(match.Str))
		} else {
			b.WriteString(suggestionStyle.Render(match.Str))
		}

		if b.Len() >= width {
			break
		}
	}

	return b.String()
}
