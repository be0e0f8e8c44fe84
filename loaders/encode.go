package loaders

import (
	"encoding/json"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes a document back in the given format.
func Encode(f Format, doc *Document) ([]byte, error) {
	if doc.Entries == nil {
		doc = doc.Clone()
	}
	switch f {

	case FormatYAML:
		return yaml.Marshal(doc)

	case FormatTOML:
		return toml.Marshal(doc)

	case FormatJSON:
		bs, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(bs, '\n'), nil

	case FormatCUE:
		value := cuecontext.New().Encode(doc)
		if err := value.Err(); err != nil {
			return nil, err
		}
		return format.Node(value.Syntax())

	}
	return nil, ErrUnknownFormat
}
