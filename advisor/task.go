package advisor

import "context"

// Task is the pending result of an advisor call running in the background.
type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	value  T
	err    error
}

// Go runs f in a new goroutine and returns its Task.
// The context passed to f is cancelled by Cancel or when ctx is.
func Go[T any](ctx context.Context, f func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(t.done)
		defer cancel()
		t.value, t.err = f(ctx)
	}()
	return t
}

// Done is closed once the result is available.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task completes and returns its result.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.value, t.err
}

// Cancel cancels the context of the running function.
func (t *Task[T]) Cancel() { t.cancel() }
