package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/cedarparse/cedar/cli/cmd"
	"github.com/cedarparse/cedar/cli/cmd/repl"
	"github.com/cedarparse/cedar/pkg"
)

// CLI is the top-level command-line interface for cedar.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Check   cmd.Check   `cmd:"" help:"Validate a grammar file"`
	Match   cmd.Match   `cmd:"" default:"withargs" help:"Match input against a grammar"`
	Repl    repl.Repl   `cmd:""                    help:"Interactively match lines against a grammar"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

// Run executes the cedar CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon
// completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Vars{}.CloneWith(cli.Log.vars()).CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	stop := cli.Pprof.start(ctx)
	defer stop()

	return ktx.Run()
}
