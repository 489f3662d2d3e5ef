//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// pprofConfig is empty without build tag pprof. Its flag group is omitted
// from the command line entirely.
type pprofConfig struct{}

func (*pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (*pprofConfig) group() kong.Group { return kong.Group{} }

func (*pprofConfig) start(context.Context) func() { return func() {} }
