package loaders

import "strings"

// Merge layers documents. Entries of later documents override earlier ones
// of the same name, and names a later document lists as removed are dropped
// from earlier ones. Preludes are concatenated in order.
func Merge(docs ...*Document) *Document {
	ret := &Document{
		Entries: make(map[string]string),
	}
	var preludes []string
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if strings.TrimSpace(doc.Prelude) != "" {
			preludes = append(preludes, strings.TrimRight(doc.Prelude, "\n"))
		}
		for _, name := range doc.Removed {
			delete(ret.Entries, name)
		}
		for name, source := range doc.Entries {
			ret.Entries[name] = source
		}
	}
	if len(preludes) > 0 {
		ret.Prelude = strings.Join(preludes, "\n") + "\n"
	}
	return ret
}
