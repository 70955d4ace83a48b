// Package syncerr runs groups of tasks and reports their failures as
// wrappederror trees.
//
// A CoordinatedGroup stops at the first failure: it cancels the shared
// context and Wait returns that error. A ParallelGroup lets every task
// run to completion and Wait returns a single node whose causes are the
// failures of all tasks, in the order the tasks were started.
//
// Either group may name its tasks. A failed named task's error is
// wrapped in a TaskFailed node holding the name under the "task" key.
package syncerr

import (
	"context"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/secureworks/wrappederror"
)

// KeyTask holds the name of a failed task.
const KeyTask = "task"

var (
	// TaskFailed classifies the error returned by a named task.
	TaskFailed = wrappederror.NewType("TaskFailed", "task failed")

	// GroupFailed is the default classification of a ParallelGroup with
	// failed tasks.
	GroupFailed = wrappederror.NewType("GroupFailed", "one or more tasks failed")
)

// nameTask wraps a failed task's error in a new TaskFailed node. The
// error returned by the task is never written to: tasks may share it.
// A typed nil error is a success.
func nameTask(err error, name []string) error {
	if isNil(err) {
		return nil
	}
	if len(name) == 0 || name[0] == "" {
		return err
	}
	return wrappederror.WrapNew(err, TaskFailed, map[string]interface{}{KeyTask: name[0]})
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	switch v := reflect.ValueOf(err); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// CoordinatedGroup is a collection of goroutines working on subtasks
// of a common task. The first task to fail cancels the context returned
// by NewCoordinatedGroup, and its error is the one returned by Wait.
//
// A zero CoordinatedGroup is valid, has no limit on the number of
// active goroutines, and does not cancel on error.
type CoordinatedGroup struct {
	once sync.Once
	g    *errgroup.Group
}

// NewCoordinatedGroup returns a new CoordinatedGroup and an associated
// context derived from ctx. The derived context is canceled the first
// time a task fails or the first time Wait returns, whichever comes
// first.
func NewCoordinatedGroup(ctx context.Context) (*CoordinatedGroup, context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	return &CoordinatedGroup{g: g}, ctx
}

func (cg *CoordinatedGroup) group() *errgroup.Group {
	cg.once.Do(func() {
		if cg.g == nil {
			cg.g = new(errgroup.Group)
		}
	})
	return cg.g
}

// SetLimit limits the number of active goroutines in the group to at
// most n. A negative value indicates no limit. It must not be called
// while tasks are running.
func (cg *CoordinatedGroup) SetLimit(n int) {
	cg.group().SetLimit(n)
}

// Go calls fn in a new goroutine, blocking while the group is at its
// limit. If a name is given and fn fails, its error is wrapped in a
// TaskFailed node carrying the name.
func (cg *CoordinatedGroup) Go(fn func() error, name ...string) {
	cg.group().Go(func() error {
		return nameTask(fn(), name)
	})
}

// Wait blocks until every task started with Go has returned, then
// returns the first error, if any.
func (cg *CoordinatedGroup) Wait() error {
	return cg.group().Wait()
}

// ParallelGroup is a collection of goroutines working on independent
// tasks. Every task runs to completion; Wait gathers their failures
// into one node. A zero ParallelGroup is ready to use.
type ParallelGroup struct {
	// Type classifies the node returned by Wait. GroupFailed is used if
	// it is nil.
	Type *wrappederror.ErrorType

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Go calls fn in a new goroutine. If a name is given and fn fails, its
// error is wrapped in a TaskFailed node carrying the name.
func (pg *ParallelGroup) Go(fn func() error, name ...string) {
	pg.mu.Lock()
	slot := len(pg.errs)
	pg.errs = append(pg.errs, nil)
	pg.mu.Unlock()

	pg.wg.Add(1)
	go func() {
		defer pg.wg.Done()
		err := nameTask(fn(), name)

		pg.mu.Lock()
		pg.errs[slot] = err
		pg.mu.Unlock()
	}()
}

// Wait blocks until every task started with Go has returned. It returns
// nil if none failed, and otherwise the node built by
// WaitForWrappedError.
func (pg *ParallelGroup) Wait() error {
	if w := pg.WaitForWrappedError(); w != nil {
		return w
	}
	return nil
}

// WaitForWrappedError is Wait returning the node itself: its causes are
// the errors of the failed tasks, ordered by the calls to Go that
// started them. Returns nil if no task failed.
func (pg *ParallelGroup) WaitForWrappedError() *wrappederror.WrappedError {
	pg.wg.Wait()

	pg.mu.Lock()
	var failed []error
	for _, err := range pg.errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	pg.mu.Unlock()

	if len(failed) == 0 {
		return nil
	}
	typ := pg.Type
	if typ == nil {
		typ = GroupFailed
	}
	return wrappederror.WrapMulti(failed, typ, nil)
}
