package sheets

import (
	"errors"
	"fmt"
)

func (s *Sheet) verify() {
	if !s.check || len(s.computing) > 0 {
		return
	}
	if err := s.Verify(); err != nil {
		panic(err)
	}
}

// Verify checks that dependency and dependent edges mirror each other and
// that no entry exposes an outcome its status does not allow.
func (s *Sheet) Verify() error {
	var errs []error

	for name, entry := range s.entries {
		if entry.name != name {
			errs = append(errs, fmt.Errorf("entry %s stored as %s", entry.name, name))
		}

		for dep := range entry.dependencies {
			if _, ok := s.dependentsOf(dep, false)[name]; !ok {
				errs = append(errs, fmt.Errorf("%s reads %s but is not among its dependents", name, dep))
			}
		}

		for dependent := range entry.dependents {
			other, ok := s.entries[dependent]
			if !ok {
				errs = append(errs, fmt.Errorf("dependent %s of %s does not exist", dependent, name))
				continue
			}
			if _, ok := other.dependencies[name]; !ok {
				errs = append(errs, fmt.Errorf("%s is a dependent of %s but does not read it", dependent, name))
			}
		}

		switch entry.status {
		case Stale, Computing:
			if entry.cached != nil || entry.cachedErr != nil {
				errs = append(errs, fmt.Errorf("%s entry %s holds a cached outcome", entry.status, name))
			}
		case Clean:
			if entry.cached == nil || entry.cachedErr != nil {
				errs = append(errs, fmt.Errorf("clean entry %s without a value", name))
			}
		case Errored:
			if entry.cached != nil || entry.cachedErr == nil {
				errs = append(errs, fmt.Errorf("errored entry %s without an error", name))
			}
		}
	}

	for name, set := range s.pending {
		if _, ok := s.entries[name]; ok {
			errs = append(errs, fmt.Errorf("pending dependents recorded for existing entry %s", name))
		}
		for dependent := range set {
			other, ok := s.entries[dependent]
			if !ok {
				errs = append(errs, fmt.Errorf("pending dependent %s of %s does not exist", dependent, name))
				continue
			}
			if _, ok := other.dependencies[name]; !ok {
				errs = append(errs, fmt.Errorf("%s is pending on %s but does not read it", dependent, name))
			}
		}
	}

	return errors.Join(errs...)
}
