package syncs

import "context"

type Semaphore chan bool

func NewSemaphore(n int) Semaphore {
	return make(chan bool, n)
}

func (s Semaphore) Acquire() {
	s <- true
}

// AcquireContext blocks until a slot is free or ctx is done.
func (s Semaphore) AcquireContext(ctx context.Context) error {
	select {
	case s <- true:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphore) TryAcquire() bool {
	select {
	case s <- true:
		return true
	default:
		return false
	}
}

func (s Semaphore) Release() {
	<-s
}
