package sheets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type NewSheet func() *Sheet

func (Module) NewSheet(
	adapter Adapter,
	logger logs.Logger,
	newSpan logs.NewSpan,
	mode modes.Mode,
) NewSheet {
	return func() *Sheet {
		return New(adapter, Options{
			Logger:          logger,
			NewSpan:         newSpan,
			CheckInvariants: mode.CheckInvariants(),
		})
	}
}
