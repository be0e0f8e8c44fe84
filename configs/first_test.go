package configs

import (
	"testing"

	"cuelang.org/go/cue"
)

func cueTestPath(path string) cue.Path {
	return cue.ParsePath(path)
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test2.cue",
		"testdata/test.cue",
	}, Schema)

	str := First[string](loader, "store")
	if str != "foo" {
		t.Fatalf("got %v", str)
	}

	steps := First[uint64](loader, "max_steps")
	if steps != 1000 {
		t.Fatalf("got %v", steps)
	}

	proxy := First[string](loader, "proxy_addr")
	if proxy != "" {
		t.Fatalf("got %v", proxy)
	}

}
