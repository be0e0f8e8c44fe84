package loaders

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Document is the on-disk form of a sheet: a prelude program and a
// mapping from entry names to script sources. Removed lists names that an
// overlay deletes from the documents beneath it.
type Document struct {
	Prelude string            `json:"prelude,omitempty" yaml:"prelude,omitempty" toml:"prelude,omitempty"`
	Entries map[string]string `json:"entries" yaml:"entries" toml:"entries"`
	Removed []string          `json:"removed,omitempty" yaml:"removed,omitempty" toml:"removed,omitempty"`
}

// rawDocument is a decoded document before entry values are turned into
// script sources.
type rawDocument struct {
	Prelude string         `json:"prelude" yaml:"prelude" toml:"prelude"`
	Entries map[string]any `json:"entries" yaml:"entries" toml:"entries"`
	Removed []string       `json:"removed" yaml:"removed" toml:"removed"`
}

// Schema validates documents written in CUE or JSON.
const Schema = `
prelude?: string
entries: [string]: _
removed?: [...string]
`

type Format string

const (
	FormatCUE  Format = "cue"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func FormatOf(filename string) (Format, error) {
	// remote locations may carry a query
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".cue":
		return FormatCUE, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml", ".gamesheet":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	ret := &Document{
		Prelude: d.Prelude,
		Entries: make(map[string]string, len(d.Entries)),
	}
	for name, source := range d.Entries {
		ret.Entries[name] = source
	}
	ret.Removed = slices.Clone(d.Removed)
	return ret
}
