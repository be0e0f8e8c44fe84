package sheets

// dependentsOf returns the reverse edges of name, which live on the entry
// or, for names without an entry, in the pending index.
func (s *Sheet) dependentsOf(name string, create bool) nameSet {
	if entry, ok := s.entries[name]; ok {
		return entry.dependents
	}
	set, ok := s.pending[name]
	if !ok && create {
		set = make(nameSet)
		s.pending[name] = set
	}
	return set
}

func (s *Sheet) link(from string, to string) {
	s.dependentsOf(to, true)[from] = struct{}{}
}

func (s *Sheet) unlink(from string, to string) {
	if entry, ok := s.entries[to]; ok {
		delete(entry.dependents, from)
		return
	}
	if set, ok := s.pending[to]; ok {
		delete(set, from)
		if len(set) == 0 {
			delete(s.pending, to)
		}
	}
}

// relink replaces the dependencies of entry with observed, keeping the
// reverse edges in step.
func (s *Sheet) relink(entry *Entry, observed nameSet) {
	for name := range entry.dependencies {
		if _, ok := observed[name]; !ok {
			s.unlink(entry.name, name)
		}
	}
	for name := range observed {
		if _, ok := entry.dependencies[name]; !ok {
			s.link(entry.name, name)
		}
	}
	entry.dependencies = observed
}

// invalidate marks roots and everything transitively depending on them as
// Stale. Each name is visited once per call. It returns the number of
// names visited.
func (s *Sheet) invalidate(roots ...string) int {
	visited := make(nameSet, len(roots))
	queue := make([]string, 0, len(roots))
	for _, name := range roots {
		if _, ok := visited[name]; ok {
			continue
		}
		visited[name] = struct{}{}
		queue = append(queue, name)
	}

	reset := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		var next nameSet
		if entry, ok := s.entries[name]; ok {
			if entry.status != Stale {
				entry.reset()
				reset++
			}
			next = entry.dependents
		} else {
			next = s.pending[name]
		}

		for dependent := range next {
			if _, ok := visited[dependent]; ok {
				continue
			}
			visited[dependent] = struct{}{}
			queue = append(queue, dependent)
		}
	}

	if reset > 0 {
		s.logger.Debug("invalidated",
			"roots", roots,
			"visited", len(visited),
			"reset", reset,
		)
	}
	return len(visited)
}

// Invalidate drops the cached outcome of the named entries and of
// everything depending on them. It returns the number of names visited.
func (s *Sheet) Invalidate(names ...string) int {
	n := s.invalidate(names...)
	s.verify()
	return n
}

func (s *Sheet) InvalidateAll() int {
	return s.Invalidate(s.Names()...)
}
