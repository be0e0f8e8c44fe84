package loaders

import (
	"context"

	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/logs"
	"github.com/reusee/gamesheet/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
}

// Load reads a document from a local path or an http(s) URL.
type Load func(ctx context.Context, location string) (*Document, error)

func (Module) Load(
	client nets.HTTPClient,
	logger logs.Logger,
) Load {
	return func(ctx context.Context, location string) (*Document, error) {
		var doc *Document
		var err error
		if isRemote(location) {
			var content []byte
			content, err = Fetch(ctx, client, location)
			if err != nil {
				return nil, err
			}
			doc, err = Parse(location, content)
		} else {
			doc, err = ParseFile(location)
		}
		if err != nil {
			return nil, err
		}
		logger.DebugContext(ctx, "document loaded",
			"location", location,
			"entries", len(doc.Entries),
		)
		return doc, nil
	}
}

// LoadAll loads and merges documents in order.
func LoadAll(ctx context.Context, load Load, locations []string) (*Document, error) {
	docs := make([]*Document, 0, len(locations))
	for _, location := range locations {
		doc, err := load(ctx, location)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...), nil
}
