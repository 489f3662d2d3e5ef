//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cedarparse/cedar/log"
	"github.com/cedarparse/cedar/pkg"
	"github.com/cedarparse/cedar/profile"
)

type pprofConfig struct {
	Mode string `default:"cpu"              enum:"${pprofModeEnum}" help:"Set profiling mode (${pprofModeEnum})."`
	Dir  string `default:"${pprofModeDir}"  type:"path"             help:"Set output directory for profiling data."`
}

func (*pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofModeDir":  filepath.Join(os.TempDir(), pkg.Name, profile.Tag),
	}
}

func (*pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = profile.Tag
	group.Title = "Profiling options"

	return group
}

func (f *pprofConfig) start(ctx context.Context) func() {
	var config profile.Config = func() (string, string, bool) {
		return "", "", false
	}

	for _, opt := range []func(profile.Config) profile.Config{
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(log.Default().Level() > log.LevelDebug),
	} {
		config = opt(config)
	}

	log.DebugContext(ctx, "profiler started",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	return config.Start().Stop
}
