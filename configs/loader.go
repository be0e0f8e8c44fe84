package configs

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("value not found")

// Loader looks up values in a list of CUE files, first file first.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}
				value, err := Compile(filePath, content, schemaSrc)
				if err != nil {
					return nil, err
				}
				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}
			return
		}),
	}
}

// Compile compiles CUE (or JSON) content and, if schemaSrc is not empty,
// validates it against the closed schema.
func Compile(filename string, content []byte, schemaSrc string) (cue.Value, error) {
	ctx := cuecontext.New()

	value := ctx.CompileBytes(
		content,
		cue.Filename(filename),
	)
	if err := value.Err(); err != nil {
		return value, err
	}

	if schemaSrc != "" {
		schema := ctx.CompileString("close({" + schemaSrc + "})")
		if err := schema.Err(); err != nil {
			return value, fmt.Errorf("schema: %w", err)
		}
		value = schema.Unify(value)
		if err := value.Validate(cue.Concrete(true)); err != nil {
			return value, err
		}
	}

	return value, nil
}

type rootInfo struct {
	value cue.Value
	path  string
}

func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if err := value.Err(); err == nil && value.Exists() {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if err := value.Err(); err == nil && value.Exists() {
			if err := value.Decode(target); err != nil {
				return fmt.Errorf("%s: %s: %w", info.path, path, err)
			}
			return nil
		}
	}

	return ErrValueNotFound
}
