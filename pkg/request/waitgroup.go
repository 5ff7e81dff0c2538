package request

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// WaitGroupConcurrencyLimit is the maximum number of concurrent requests in one WaitGroup.
const WaitGroupConcurrencyLimit = 8

// Performer is a Request or a group of requests.
type Performer interface {
	PerformOrErr(ctx context.Context) error
}

// WaitGroup allows performing requests concurrently using Perform method
// and wait until all requests are completed using the Wait method.
//
// The request starts immediately after calling the Perform method.
// If an error occurs, performing will not stop, all requests will be performed.
// Wait method at the end returns all errors that have occurred, if any.
//
// If you need to schedule requests and perform them later,
// or if you want to stop at the first error, use RunGroup instead.
type WaitGroup struct {
	ctx context.Context
	wg  *sync.WaitGroup     // wait for all
	sem *semaphore.Weighted // limit concurrency

	lock *sync.Mutex // for err
	err  *multierror.Error
}

// NewWaitGroup creates new WaitGroup.
func NewWaitGroup(ctx context.Context) *WaitGroup {
	return NewWaitGroupWithLimit(ctx, WaitGroupConcurrencyLimit)
}

// NewWaitGroupWithLimit creates new WaitGroup with given concurrent requests limit.
func NewWaitGroupWithLimit(ctx context.Context, limit int64) *WaitGroup {
	return &WaitGroup{ctx: ctx, wg: &sync.WaitGroup{}, sem: semaphore.NewWeighted(limit), lock: &sync.Mutex{}}
}

// Wait for all requests to complete. All errors that have occurred will be returned.
func (g *WaitGroup) Wait() error {
	g.wg.Wait()

	g.lock.Lock()
	defer g.lock.Unlock()

	// If there is only one error, then unwrap multierror
	if g.err != nil && len(g.err.Errors) == 1 {
		return g.err.Errors[0]
	}
	return g.err.ErrorOrNil()
}

// Perform a concurrent request.
func (g *WaitGroup) Perform(request Performer) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		// Limit number of concurrent requests
		if err := g.sem.Acquire(g.ctx, 1); err != nil {
			// Ctx is done, return
			g.appendErr(err)
			return
		}
		defer g.sem.Release(1)

		if err := request.PerformOrErr(g.ctx); err != nil {
			g.appendErr(err)
		}
	}()
}

func (g *WaitGroup) appendErr(err error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.err = multierror.Append(g.err, err)
}

// ParallelRequests performs all requests concurrently as one Performer.
type ParallelRequests []Performer

// Parallel wraps parallel requests to one Performer interface.
func Parallel(requests ...Performer) ParallelRequests {
	return requests
}

func (v ParallelRequests) PerformOrErr(ctx context.Context) error {
	wg := NewWaitGroup(ctx)
	for _, r := range v {
		wg.Perform(r)
	}
	return wg.Wait()
}
