package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cedarparse/cedar/comb"
	"github.com/cedarparse/cedar/grammar"
	"github.com/cedarparse/cedar/log"
)

// Match parses input text with a grammar rule and prints the result.
type Match struct {
	Grammar string `arg:""            type:"existingfile" help:"Grammar file to parse with."`
	Input   string `arg:"" optional:""                    help:"Input text, or \"-\" to read stdin."`

	Rule string `short:"r" help:"Rule to match with (default: grammar's start rule)."`
	Rest bool   `          help:"Print unconsumed input after the match."`
}

func (c *Match) Run(ctx context.Context) error {
	file, err := grammar.Load(c.Grammar)
	if err != nil {
		return err
	}

	linked, err := file.Link(grammar.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	parser, name := linked.Start, linked.StartName
	if c.Rule != "" {
		p, ok := linked.Scope[c.Rule]
		if !ok {
			return ErrRuleNotFound.With(slog.String("rule", c.Rule))
		}

		parser, name = p, c.Rule
	}

	source, err := c.source()
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	value, rest, err := parser.Parse(source)
	if err != nil {
		return ErrNoMatch.Wrap(err).With(slog.String("rule", name))
	}

	log.DebugContext(ctx, "matched",
		slog.String("rule", name),
		slog.Int("consumed", rest.Pos()),
		slog.Int("remaining", rest.Len()),
	)

	if err := render(os.Stdout, value); err != nil {
		return err
	}

	if c.Rest {
		fmt.Fprintln(os.Stdout, rest.Remaining())
	}

	return nil
}

// source returns the text to parse: the input argument verbatim, or all of
// stdin when the argument is "-" or omitted.
func (c *Match) source() (string, error) {
	if c.Input != "" && c.Input != "-" {
		return c.Input, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(data), "\n"), nil
}

// render prints a parse result. Strings print verbatim; structured values
// print as YAML so nested pairs and transform output stay readable.
func render(w io.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(w, v)

		return err
	case comb.Pair[any, any]:
		return render(w, comb.Flatten(v))
	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err
	}
}
