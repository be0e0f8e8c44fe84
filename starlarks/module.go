package starlarks

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/cmds"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/vars"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}

// MaxSteps bounds a single evaluation, zero for no bound.
type MaxSteps uint64

var maxStepsFlag = cmds.Var[uint64]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[uint64](loader, "max_steps"),
	))
}

func (Module) Adapter(
	maxSteps MaxSteps,
	logger logs.Logger,
) *Adapter {
	return &Adapter{
		MaxSteps: uint64(maxSteps),
		Logger:   logger,
	}
}

func (Module) SheetsAdapter(
	adapter *Adapter,
) sheets.Adapter {
	return adapter
}
