package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner output's Write
// fails. Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// Async decouples note production from rendering via a buffered channel.
// Per-note waveform synthesis is the expensive step of a WAV run, so the
// parse loop writes into the channel and a background goroutine drains
// it to the wrapped renderer. Note order is preserved. Errors from the
// inner output are passed to errFunc rather than propagated.
type Async struct {
	inner     output.Output
	ch        chan model.MappedNote
	done      chan struct{}
	errFunc   func(error)
	bufSize   int
	closeOnce sync.Once
}

// New wraps an output.Output in an async channel-based writer.
// The background drain goroutine starts immediately.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:   inner,
		bufSize: defaultBufferSize,
		errFunc: func(err error) { slog.Warn("async output write error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.MappedNote, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write sends the note into the channel, blocking for backpressure when
// the buffer is full. Notes are never dropped: a gap in the sequence
// would silently shift every later start time at the renderer.
func (a *Async) Write(_ context.Context, note model.MappedNote) error {
	a.ch <- note
	return nil
}

// Close closes the channel, waits for the drain goroutine to finish
// (with a timeout), then closes the inner output.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			slog.Warn("async output drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain reads notes from the channel and writes them to the inner output.
func (a *Async) drain() {
	defer close(a.done)
	for note := range a.ch {
		if err := a.inner.Write(context.Background(), note); err != nil {
			a.errFunc(err)
		}
	}
}
