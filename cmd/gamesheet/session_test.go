package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reusee/gamesheet/loaders"
	"github.com/reusee/gamesheet/sheets"
	"github.com/reusee/gamesheet/starlarks"
	"github.com/reusee/gamesheet/stores"
)

func newTestSession(t *testing.T, store stores.Store) (*session, *bytes.Buffer) {
	adapter := new(starlarks.Adapter)
	sheet := sheets.New(adapter, sheets.Options{
		CheckInvariants: true,
	})
	doc := &loaders.Document{
		Prelude: "def double(x):\n    return x * 2\n",
		Entries: map[string]string{
			"a": `g("b") + 1`,
			"b": `double(g("c"))`,
			"c": "5",
		},
	}
	s, err := newSession(context.Background(), sheet, adapter, doc, store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	s.out = buf
	return s, buf
}

func TestSessionGetSet(t *testing.T) {
	store := stores.NewMemory()
	s, buf := newTestSession(t, store)

	if err := s.get("a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "11\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	if err := s.set("c", "10"); err != nil {
		t.Fatal(err)
	}
	if err := s.get("a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "21\n" {
		t.Fatalf("got %q", got)
	}

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Entries["c"] != "10" {
		t.Fatalf("got %v", doc.Entries)
	}
}

func TestSessionOverlay(t *testing.T) {
	store := stores.NewMemory()
	ctx := context.Background()
	if err := store.PutEntry(ctx, "c", "50"); err != nil {
		t.Fatal(err)
	}
	s, buf := newTestSession(t, store)
	if err := s.get("a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "101\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSessionCreateRemove(t *testing.T) {
	store := stores.NewMemory()
	s, buf := newTestSession(t, store)

	if err := s.create("d", `g("a") * 10`); err != nil {
		t.Fatal(err)
	}
	if err := s.create("d", "1"); !errors.Is(err, sheets.ErrDuplicateName) {
		t.Fatalf("got %v", err)
	}
	if err := s.get("d"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "110\n" {
		t.Fatalf("got %q", got)
	}

	if err := s.remove("d"); err != nil {
		t.Fatal(err)
	}
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Entries["d"]; ok {
		t.Fatalf("got %v", doc.Entries)
	}
	if err := s.get("d"); !errors.Is(err, sheets.ErrUnknownEntry) {
		t.Fatalf("got %v", err)
	}
}

func TestSessionEdges(t *testing.T) {
	s, buf := newTestSession(t, nil)

	if err := s.dependencies("a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	if err := s.dependents("c"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	if err := s.names(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\nc\n" {
		t.Fatalf("got %q", got)
	}

	if err := s.dependencies("nope"); !errors.Is(err, sheets.ErrUnknownEntry) {
		t.Fatalf("got %v", err)
	}
}

func TestSessionDump(t *testing.T) {
	s, buf := newTestSession(t, nil)
	if err := s.create("bad", `g("missing")`); err != nil {
		t.Fatal(err)
	}
	if err := s.dump(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %q", lines)
	}
	if lines[0] != "a\t=\t11" {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "bad\t!\t") {
		t.Fatalf("got %q", lines[2])
	}
}

func TestSessionExport(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if err := s.set("c", "7"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := s.export(path); err != nil {
		t.Fatal(err)
	}
	doc, err := loaders.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Entries["c"] != "7" {
		t.Fatalf("got %v", doc.Entries)
	}
	if !strings.Contains(doc.Prelude, "def double") {
		t.Fatalf("got %v", doc.Prelude)
	}
}

func TestSessionRemoveSurvivesRestart(t *testing.T) {
	store := stores.NewMemory()
	s, buf := newTestSession(t, store)
	if err := s.remove("a"); err != nil {
		t.Fatal(err)
	}

	// the documents still carry a, the store overlay drops it
	s, buf = newTestSession(t, store)
	if err := s.names(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "b\nc\n" {
		t.Fatalf("got %q", got)
	}

	// created again, it survives too
	if err := s.create("a", "1"); err != nil {
		t.Fatal(err)
	}
	s, buf = newTestSession(t, store)
	if err := s.get("a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSessionExportStore(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if err := s.set("c", "7"); err != nil {
		t.Fatal(err)
	}
	if err := s.remove("a"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.db")
	if err := s.export(path); err != nil {
		t.Fatal(err)
	}

	store, err := stores.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{
		"b": `double(g("c"))`,
		"c": "7",
	}, doc.Entries); diff != "" {
		t.Fatal(diff)
	}
	if !strings.Contains(doc.Prelude, "def double") {
		t.Fatalf("got %v", doc.Prelude)
	}
}
