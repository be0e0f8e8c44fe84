package logs

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}

// files that are not terminals get JSON records
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
