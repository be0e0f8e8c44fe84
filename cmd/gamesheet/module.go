package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/loaders"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/starlarks"
	"github.com/reusee/gamesheet/stores"
)

type Module struct {
	dscope.Module
	Sheets    sheets.Module
	Starlarks starlarks.Module
	Loaders   loaders.Module
	Stores    stores.Module
}
