package starlarks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/dscope"
	"github.com/reusee/gamesheet/configs"
	"github.com/reusee/gamesheet/modes"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/values"
	"go.starlark.net/starlark"
)

func evaluate(t *testing.T, adapter *Adapter, source string, lookup sheets.Lookup, prelude *sheets.Prelude) (values.Value, error) {
	t.Helper()
	script, err := adapter.Parse("test", source)
	if err != nil {
		t.Fatal(err)
	}
	return adapter.Evaluate(context.Background(), script, lookup, prelude)
}

func TestParseModes(t *testing.T) {
	script, err := compile("e", `g("a") + max(1, 2) + helper(x)`)
	if err != nil {
		t.Fatal(err)
	}
	// universe names are not free
	if diff := cmp.Diff([]string{"g", "helper", "x"}, script.Free()); diff != "" {
		t.Fatal(diff)
	}

	script, err = compile("p", "def f():\n    return g('a')\nvalue = f()\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"g"}, script.Free()); diff != "" {
		t.Fatal(diff)
	}

	_, err = compile("bad", "1 +")
	if !errors.Is(err, sheets.ErrParse) {
		t.Fatalf("got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	adapter := new(Adapter)
	var reads []string
	lookup := func(name string) (values.Value, error) {
		reads = append(reads, name)
		switch name {
		case "a":
			return values.Number(2), nil
		case "list":
			return values.Sequence{values.Number(1), values.Number(2)}, nil
		}
		return nil, &sheets.NameError{
			Op:   "read",
			Name: name,
			Kind: sheets.ErrUnknownEntry,
		}
	}

	v, err := evaluate(t, adapter, `g("a") * 3`, lookup, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(6)) {
		t.Fatalf("got %v", v)
	}

	v, err = evaluate(t, adapter, `math.floor(g("a") / 4)`, lookup, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(0)) {
		t.Fatalf("got %v", v)
	}

	v, err = evaluate(t, adapter, `len(g("list"))`, lookup, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(2)) {
		t.Fatalf("got %v", v)
	}

	// values from other entries are frozen
	_, err = evaluate(t, adapter, "l = g(\"list\")\nl.append(3)\n", lookup, nil)
	if err == nil || !strings.Contains(err.Error(), "frozen") {
		t.Fatalf("got %v", err)
	}

	_, err = evaluate(t, adapter, `g("nope")`, lookup, nil)
	if !errors.Is(err, sheets.ErrUnknownEntry) {
		t.Fatalf("got %v", err)
	}

	if diff := cmp.Diff([]string{"a", "a", "list", "list", "nope"}, reads); diff != "" {
		t.Fatal(diff)
	}
}

func TestEvaluateWithoutSheet(t *testing.T) {
	_, err := evaluate(t, new(Adapter), `g("a")`, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "no sheet bound") {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownFunctionStub(t *testing.T) {
	adapter := new(Adapter)
	v, err := evaluate(t, adapter, `missing if False else 1`, nil, sheets.NewPrelude())
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(1)) {
		t.Fatalf("got %v", v)
	}
	_, err = evaluate(t, adapter, `missing(1)`, nil, nil)
	if !errors.Is(err, sheets.ErrUnknownFunction) {
		t.Fatalf("got %v", err)
	}
}

func TestMaxSteps(t *testing.T) {
	adapter := &Adapter{
		MaxSteps: 1000,
	}
	_, err := evaluate(t, adapter, "while True:\n    pass\n", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	v, err := evaluate(t, adapter, `sum_to(10)`, nil, func() *sheets.Prelude {
		prelude := sheets.NewPrelude()
		if err := adapter.CompilePrelude("prelude", `
def sum_to(n):
    total = 0
    for i in range(n + 1):
        total += i
    return total
`, prelude); err != nil {
			t.Fatal(err)
		}
		return prelude
	}())
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(55)) {
		t.Fatalf("got %v", v)
	}
}

func TestCompilePrelude(t *testing.T) {
	adapter := new(Adapter)
	prelude := sheets.NewPrelude()
	err := adapter.CompilePrelude("prelude", `
RATE = 3
def scale(x):
    return x * RATE
`, prelude)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"RATE", "scale"}, prelude.Names()); diff != "" {
		t.Fatal(diff)
	}
	v, err := evaluate(t, adapter, `scale(RATE)`, nil, prelude)
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Number(9)) {
		t.Fatalf("got %v", v)
	}

	err = adapter.CompilePrelude("bad", "def (", prelude)
	if !errors.Is(err, sheets.ErrParse) {
		t.Fatalf("got %v", err)
	}
	err = adapter.CompilePrelude("bad", "x = 1 // 0", prelude)
	if !errors.Is(err, sheets.ErrRuntime) {
		t.Fatalf("got %v", err)
	}
	err = adapter.CompilePrelude("bad", "x = undefined_name", prelude)
	if !errors.Is(err, sheets.ErrParse) {
		t.Fatalf("got %v", err)
	}
}

func TestGoPreludeFunction(t *testing.T) {
	adapter := new(Adapter)
	prelude := sheets.NewPrelude()
	called := false
	prelude.Define("mark", func() {
		called = true
	})
	v, err := evaluate(t, adapter, "mark()\nvalue = 1\n", nil, prelude)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("not called")
	}
	if !values.Equal(v, values.Number(1)) {
		t.Fatalf("got %v", v)
	}
}

func TestCancel(t *testing.T) {
	adapter := new(Adapter)
	script, err := adapter.Parse("spin", "while True:\n    pass\n")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	prelude := sheets.NewPrelude()
	go cancel()
	_, err = adapter.Evaluate(ctx, script, nil, prelude)
	if err == nil || !strings.Contains(err.Error(), "cancel") {
		t.Fatalf("got %v", err)
	}
}

func TestModule(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"../configs/testdata/test.cue"}, configs.Schema)
		},
	).Call(func(
		adapter *Adapter,
		sheetsAdapter sheets.Adapter,
	) {
		if adapter.MaxSteps != 1000 {
			t.Fatalf("got %v", adapter.MaxSteps)
		}
		if sheetsAdapter != sheets.Adapter(adapter) {
			t.Fatal()
		}
	})
}

func TestTap(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
	).Call(func(
		tap Tap,
	) {
		sheet := sheets.New(new(Adapter), sheets.Options{})
		if err := sheet.Create("a", "1"); err != nil {
			t.Fatal(err)
		}
		tap(t.Context(), sheet)
	})
}

func TestTapGlobals(t *testing.T) {
	adapter := new(Adapter)
	sheet := sheets.New(adapter, sheets.Options{
		CheckInvariants: true,
	})
	if err := adapter.CompilePrelude("prelude", "def twice(x):\n    return x * 2\n", sheet.Prelude()); err != nil {
		t.Fatal(err)
	}
	globals := TapGlobals(sheet)
	for _, name := range []string{"g", "math", "twice", "set", "remove", "source", "names", "deps", "dependents"} {
		if !globals.Has(name) {
			t.Fatalf("missing %s", name)
		}
	}

	var lookup sheets.Lookup = func(name string) (values.Value, error) {
		return sheet.Read(context.Background(), name)
	}
	thread := &starlark.Thread{Name: "test"}
	thread.SetLocal(lookupKey, lookup)
	_, err := starlark.ExecFileOptions(fileOptions, thread, "tap", `
set("a", "1")
set("b", 'twice(g("a"))')
if g("b") != 2:
    fail("b")
set("a", "5")
if g("b") != 10:
    fail("b after set")
if names() != ["a", "b"]:
    fail("names")
if deps("b") != ["a"]:
    fail("deps")
if dependents("a") != ["b"]:
    fail("dependents")
if source("a") != "5":
    fail("source")
remove("b")
`, globals)
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Has("b") {
		t.Fatal("not removed")
	}
}
