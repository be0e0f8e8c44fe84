package loaders

import (
	"slices"

	"github.com/reusee/gamesheet/sheets"
	"github.com/samber/lo"
)

// PreludeCompiler turns prelude source into prelude functions.
type PreludeCompiler interface {
	CompilePrelude(filename string, source string, prelude *sheets.Prelude) error
}

const preludeFilename = "prelude"

// Apply compiles the prelude into the sheet, removes the names listed as
// removed, creates missing entries and updates the source of existing ones.
// Entries whose source is unchanged keep their cached values unless the
// prelude changed.
func (d *Document) Apply(sheet *sheets.Sheet, compiler PreludeCompiler) error {
	if d.Prelude != "" {
		if err := compiler.CompilePrelude(preludeFilename, d.Prelude, sheet.Prelude()); err != nil {
			return err
		}
		sheet.InvalidateAll()
	}

	for _, name := range d.Removed {
		if _, ok := d.Entries[name]; ok || !sheet.Has(name) {
			continue
		}
		if err := sheet.Remove(name); err != nil {
			return err
		}
	}

	names := lo.Keys(d.Entries)
	slices.Sort(names)
	for _, name := range names {
		source := d.Entries[name]
		if !sheet.Has(name) {
			if err := sheet.Create(name, source); err != nil {
				return err
			}
			continue
		}
		current, err := sheet.Source(name)
		if err != nil {
			return err
		}
		if current == source {
			continue
		}
		if err := sheet.SetSource(name, source); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot captures the current sources of a sheet.
func Snapshot(sheet *sheets.Sheet, prelude string) (*Document, error) {
	doc := &Document{
		Prelude: prelude,
		Entries: make(map[string]string),
	}
	for _, name := range sheet.Names() {
		source, err := sheet.Source(name)
		if err != nil {
			return nil, err
		}
		doc.Entries[name] = source
	}
	return doc, nil
}
