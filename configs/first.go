package configs

import (
	"errors"
	"fmt"
)

// First returns the value at path from the most specific config file that
// sets it, or the zero value. Malformed config panics.
func First[T any](loader Loader, path string) T {
	var value T
	err := loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		return value
	}
	if err != nil {
		panic(fmt.Errorf("config %s: %w", path, err))
	}
	return value
}
