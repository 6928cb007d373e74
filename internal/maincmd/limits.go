package maincmd

import (
	"github.com/caarlos0/env/v6"

	"github.com/ponos-lang/ponos/lang/vm"
)

// RuntimeLimits overlays vm.Limits with environment-variable configuration
// (SPEC_FULL.md §11), mirroring the teacher's Thread.MaxSteps/
// MaxCallStackDepth fields but sourced from the process environment
// instead of being hardcoded, the way a mainer-style CLI typically layers
// env-driven config over its flags.
type RuntimeLimits struct {
	MaxSteps        int64 `env:"PONOS_MAX_STEPS" envDefault:"0"`
	MaxCallDepth    int   `env:"PONOS_MAX_CALL_DEPTH" envDefault:"0"`
	MaxCompareDepth int   `env:"PONOS_MAX_COMPARE_DEPTH" envDefault:"0"`
}

func loadRuntimeLimits() (vm.Limits, error) {
	var rl RuntimeLimits
	if err := env.Parse(&rl); err != nil {
		return vm.Limits{}, err
	}
	return vm.Limits{
		MaxSteps:        rl.MaxSteps,
		MaxCallDepth:    rl.MaxCallDepth,
		MaxCompareDepth: rl.MaxCompareDepth,
	}, nil
}
