package cmd

import (
	"context"
	"log/slog"

	"github.com/cedarparse/cedar/grammar"
	"github.com/cedarparse/cedar/log"
)

// Check validates a grammar file by decoding and linking it without parsing
// any input.
type Check struct {
	Grammar string `arg:"" type:"existingfile" help:"Grammar file to validate."`
}

func (c *Check) Run(ctx context.Context) error {
	file, err := grammar.Load(c.Grammar)
	if err != nil {
		return err
	}

	linked, err := file.Link(grammar.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "grammar ok",
		slog.String("path", c.Grammar),
		slog.Int("rules", len(linked.Scope)),
		slog.String("start", linked.StartName),
	)

	return nil
}
