package sheets

import (
	"context"

	"github.com/reusee/gamesheet/syncs"
	"github.com/reusee/gamesheet/values"
)

// Guarded serializes every operation on a Sheet, for hosts that share one
// sheet between goroutines. Scripts read through the lookup callback, not
// through Guarded, so recursion never re-enters the lock.
type Guarded struct {
	sem   syncs.Semaphore
	sheet *Sheet
}

func NewGuarded(sheet *Sheet) *Guarded {
	return &Guarded{
		sem:   syncs.NewSemaphore(1),
		sheet: sheet,
	}
}

// Do runs fn with exclusive access to the sheet.
func (g *Guarded) Do(ctx context.Context, fn func(*Sheet) error) error {
	if err := g.sem.AcquireContext(ctx); err != nil {
		return err
	}
	defer g.sem.Release()
	return fn(g.sheet)
}

func (g *Guarded) Read(ctx context.Context, name string) (ret values.Value, err error) {
	err = g.Do(ctx, func(sheet *Sheet) error {
		ret, err = sheet.Read(ctx, name)
		return err
	})
	return
}

func (g *Guarded) Create(ctx context.Context, name string, source string) error {
	return g.Do(ctx, func(sheet *Sheet) error {
		return sheet.Create(name, source)
	})
}

func (g *Guarded) SetSource(ctx context.Context, name string, source string) error {
	return g.Do(ctx, func(sheet *Sheet) error {
		return sheet.SetSource(name, source)
	})
}

func (g *Guarded) Remove(ctx context.Context, name string) error {
	return g.Do(ctx, func(sheet *Sheet) error {
		return sheet.Remove(name)
	})
}

func (g *Guarded) Names(ctx context.Context) (ret []string, err error) {
	err = g.Do(ctx, func(sheet *Sheet) error {
		ret = sheet.Names()
		return nil
	})
	return
}
