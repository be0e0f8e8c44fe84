package stores

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/cmds"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/vars"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}

// Path is the store location, empty for no store.
type Path string

var pathFlag = cmds.Var[string]("-db")

func (Module) Path(
	loader configs.Loader,
) Path {
	return Path(vars.FirstNonZero(
		*pathFlag,
		configs.First[string](loader, "store"),
	))
}
