package main

import (
	"github.com/reusee/gamesheet/cmds"
	"github.com/reusee/gamesheet/procs"
)

type action = procs.Func[*session]

var (
	actions procs.Procs[*session]

	sheetFlag = cmds.Collect[string]("-sheet")
)

func enqueue(fn action) {
	actions = append(actions, fn)
}

func init() {
	cmds.Define("get", cmds.Func(func(name string) {
		enqueue(func(s *session) error {
			return s.get(name)
		})
	}).Args("name").Desc("evaluate an entry"))

	cmds.Define("set", cmds.Func(func(name string, source string) {
		enqueue(func(s *session) error {
			return s.set(name, source)
		})
	}).Args("name", "source").Desc("replace the source of an entry"))

	cmds.Define("create", cmds.Func(func(name string, source string) {
		enqueue(func(s *session) error {
			return s.create(name, source)
		})
	}).Args("name", "source").Desc("add an entry"))

	cmds.Define("rm", cmds.Func(func(name string) {
		enqueue(func(s *session) error {
			return s.remove(name)
		})
	}).Args("name").Desc("remove an entry").Alias("remove"))

	cmds.Define("names", cmds.Func(func() {
		enqueue(func(s *session) error {
			return s.names()
		})
	}).Desc("list entry names").Alias("ls"))

	cmds.Define("deps", cmds.Func(func(name string) {
		enqueue(func(s *session) error {
			return s.dependencies(name)
		})
	}).Args("name").Desc("list the entries an entry reads"))

	cmds.Define("dependents", cmds.Func(func(name string) {
		enqueue(func(s *session) error {
			return s.dependents(name)
		})
	}).Args("name").Desc("list the entries reading an entry"))

	cmds.Define("dump", cmds.Func(func() {
		enqueue(func(s *session) error {
			return s.dump()
		})
	}).Desc("evaluate and print every entry"))

	cmds.Define("export", cmds.Func(func(path string) {
		enqueue(func(s *session) error {
			return s.export(path)
		})
	}).Args("path").Desc("write the sheet sources to a document or store file"))

	cmds.Define("repl", cmds.Func(func() {
		enqueue(func(s *session) error {
			s.tap(s.ctx, s.sheet)
			return nil
		})
	}).Desc("interactive session"))
}
