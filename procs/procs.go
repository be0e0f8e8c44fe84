package procs

// Proc is one step of a process. Run returns the step to run next, or nil
// when the process is done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Func is a step that finishes after one call.
type Func[C any] func(ctx C) error

var _ Proc[any] = Func[any](nil)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return nil, f(ctx)
}

// Procs runs its elements in order.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	proc, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		if len(p) == 1 {
			return nil, nil
		}
		return p[1:], nil
	}
	next := make(Procs[C], len(p))
	copy(next, p)
	next[0] = proc
	return next, nil
}

// Drive runs proc until it is done or fails.
func Drive[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		next, err := proc.Run(ctx)
		if err != nil {
			return err
		}
		proc = next
	}
	return nil
}
