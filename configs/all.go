package configs

import (
	"fmt"
	"slices"
)

// Layered decodes the value at path from every config file that sets it.
// The result is ordered least specific first, so later elements override
// earlier ones.
func Layered[T any](loader Loader, path string) ([]T, error) {
	var ret []T
	for value, err := range loader.IterCueValues(path) {
		if err != nil {
			return nil, err
		}
		var v T
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ret = append(ret, v)
	}
	slices.Reverse(ret)
	return ret, nil
}
