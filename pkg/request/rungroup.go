package request

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RunGroupConcurrencyLimit is the default number of performers a RunGroup runs at once.
const RunGroupConcurrencyLimit = 32

// RunGroup is a batch of performers executed together, fail-fast.
//
// Performers registered by Add are held back until RunAndWait is called.
// Once one of them fails, the group context is canceled:
// held-back performers never reach the transport and RunAndWait returns that error.
//
// See WaitGroup for performers started right away and for collecting every error.
type RunGroup struct {
	ctx     context.Context
	release chan struct{}
	group   *errgroup.Group
	slots   *semaphore.Weighted
}

// NewRunGroup creates a RunGroup limited by RunGroupConcurrencyLimit.
func NewRunGroup(ctx context.Context) *RunGroup {
	return RunGroupWithLimit(ctx, RunGroupConcurrencyLimit)
}

// RunGroupWithLimit creates a RunGroup running at most limit performers at once.
func RunGroupWithLimit(ctx context.Context, limit int64) *RunGroup {
	group, groupCtx := errgroup.WithContext(ctx)
	return &RunGroup{ctx: groupCtx, release: make(chan struct{}), group: group, slots: semaphore.NewWeighted(limit)}
}

// Add registers the performer.
// It may be called from a listener of a running performer, RunAndWait then waits for it too.
func (g *RunGroup) Add(performer Performer) {
	g.group.Go(func() error {
		<-g.release
		return g.run(performer)
	})
}

// RunAndWait releases all registered performers and returns the first error, if any.
func (g *RunGroup) RunAndWait() error {
	close(g.release)
	return g.group.Wait()
}

func (g *RunGroup) run(performer Performer) error {
	// Acquire fails when the group is already canceled
	if err := g.slots.Acquire(g.ctx, 1); err != nil {
		return err
	}
	defer g.slots.Release(1)
	return performer.PerformOrErr(g.ctx)
}
