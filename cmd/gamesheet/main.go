package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/cmds"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/loaders"
	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/modes"
	"github.com/reusee/gamesheet/procs"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/starlarks"
	"github.com/reusee/gamesheet/stores"
)

func main() {
	cmds.Execute(os.Args[1:])
	if len(actions) == 0 {
		cmds.GlobalExecutor.PrintUsage()
		return
	}
	ctx := context.Background()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		newSheet sheets.NewSheet,
		adapter *starlarks.Adapter,
		load loaders.Load,
		loader configs.Loader,
		storePath stores.Path,
		tap starlarks.Tap,
		logger logs.Logger,
	) {
		locations := *sheetFlag
		if len(locations) == 0 {
			layers, err := configs.Layered[[]string](loader, "sheets")
			ce(err)
			locations = slices.Concat(layers...)
		}
		doc, err := loaders.LoadAll(ctx, load, locations)
		ce(err)

		var store stores.Store
		if storePath != "" {
			store, err = stores.Open(string(storePath))
			ce(err)
		}

		s, err := newSession(ctx, newSheet(), adapter, doc, store, logger)
		ce(err)
		defer s.Close()
		s.tap = tap

		if err := procs.Drive(s, procs.Proc[*session](actions)); err != nil {
			s.Close()
			ce(err)
		}
	})
}

func ce(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
