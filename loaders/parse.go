package loaders

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/starlarks"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown document format")
	ErrBadDocument   = errors.New("bad document")
)

// Parse decodes a document. The format is chosen by the file extension.
// String entry values are script sources, other values are literals.
func Parse(filename string, content []byte) (*Document, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}

	var raw rawDocument
	switch format {

	case FormatCUE, FormatJSON:
		value, err := configs.Compile(filename, content, Schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadDocument, filename, err)
		}
		if err := value.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadDocument, filename, err)
		}

	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadDocument, filename, err)
		}

	case FormatTOML:
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadDocument, filename, err)
		}

	}

	doc := &Document{
		Prelude: raw.Prelude,
		Entries: make(map[string]string, len(raw.Entries)),
		Removed: raw.Removed,
	}
	for name, value := range raw.Entries {
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty entry name", ErrBadDocument, filename)
		}
		if source, ok := value.(string); ok {
			doc.Entries[name] = source
			continue
		}
		source, err := starlarks.Literal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %s: %w", ErrBadDocument, filename, name, err)
		}
		doc.Entries[name] = source
	}

	return doc, nil
}

func ParseFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content)
}
