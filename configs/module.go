package configs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

//go:embed schema.cue
var Schema string

var filenames = []string{
	"gamesheet.cue",
	".gamesheet.cue",
}

// SearchPaths returns the existing config files, most specific first:
// working directory, user config dir, then /etc.
func SearchPaths() (paths []string) {
	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) Loader(
	logger logs.Logger,
) Loader {
	paths := SearchPaths()
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return NewLoader(paths, Schema)
}
