package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeUsage(w, p.commands, 0)
}

func writeUsage(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share the same *Command, print once under the primary name
	printed := make(map[*Command]bool)
	names := lo.Keys(commands)
	slices.Sort(names)
	for _, name := range names {
		command := commands[name]
		if command == nil || printed[command] {
			continue
		}
		if slices.Contains(command.Aliases, name) {
			continue
		}
		printed[command] = true

		line := strings.Repeat("  ", depth) + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Func.IsValid() {
			for i := range command.Func.Type().NumIn() {
				arg := command.Func.Type().In(i).String()
				if i < len(command.ArgNames) {
					arg = command.ArgNames[i]
				}
				line += " <" + arg + ">"
			}
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)

		if len(command.Subs) > 0 {
			writeUsage(w, command.Subs, depth+1)
		}
	}
}
