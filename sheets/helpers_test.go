package sheets_test

import (
	"context"
	"testing"

	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/starlarks"
	"github.com/reusee/gamesheet/values"
)

// countingAdapter counts parses and evaluations per entry.
type countingAdapter struct {
	inner       *starlarks.Adapter
	parses      map[string]int
	evaluations map[string]int
}

type countedScript struct {
	name   string
	script sheets.Script
}

func newCountingAdapter() *countingAdapter {
	return &countingAdapter{
		inner:       new(starlarks.Adapter),
		parses:      make(map[string]int),
		evaluations: make(map[string]int),
	}
}

func (c *countingAdapter) Parse(name string, source string) (sheets.Script, error) {
	c.parses[name]++
	script, err := c.inner.Parse(name, source)
	if err != nil {
		return nil, err
	}
	return countedScript{
		name:   name,
		script: script,
	}, nil
}

func (c *countingAdapter) Evaluate(ctx context.Context, script sheets.Script, lookup sheets.Lookup, prelude *sheets.Prelude) (values.Value, error) {
	s := script.(countedScript)
	c.evaluations[s.name]++
	return c.inner.Evaluate(ctx, s.script, lookup, prelude)
}

func newTestSheet(t *testing.T, entries map[string]string) (*sheets.Sheet, *countingAdapter) {
	adapter := newCountingAdapter()
	sheet := sheets.New(adapter, sheets.Options{
		CheckInvariants: true,
	})
	for name, source := range entries {
		if err := sheet.Create(name, source); err != nil {
			t.Fatal(err)
		}
	}
	return sheet, adapter
}

func mustRead(t *testing.T, sheet *sheets.Sheet, name string) values.Value {
	t.Helper()
	value, err := sheet.Read(context.Background(), name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return value
}

func expectValue(t *testing.T, sheet *sheets.Sheet, name string, expected values.Value) {
	t.Helper()
	if got := mustRead(t, sheet, name); !values.Equal(got, expected) {
		t.Fatalf("%s: got %v, expected %v", name, got, expected)
	}
}

func expectStatus(t *testing.T, sheet *sheets.Sheet, name string, expected sheets.Status) {
	t.Helper()
	status, err := sheet.Status(name)
	if err != nil {
		t.Fatal(err)
	}
	if status != expected {
		t.Fatalf("%s: got %v, expected %v", name, status, expected)
	}
}
