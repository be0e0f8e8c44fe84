package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
