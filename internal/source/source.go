// Package source abstracts where log events come from, so the pipeline
// can be driven by files, followed files, or in-memory fixtures
// uniformly.
package source

import (
	"context"

	"github.com/crimson-sun/aulos/internal/model"
)

// Source produces an ordered, finite-or-cancelled stream of canonical
// log events. The channel is closed when the source is exhausted.
type Source interface {
	Events(ctx context.Context) (<-chan model.LogEvent, error)
}

// Slice is an in-memory Source, used by tests and the public API.
type Slice []model.LogEvent

// Events sends the fixture events in order and closes the channel.
func (s Slice) Events(ctx context.Context) (<-chan model.LogEvent, error) {
	ch := make(chan model.LogEvent)
	go func() {
		defer close(ch)
		for _, ev := range s {
			select {
			case <-ctx.Done():
				return
			case ch <- ev:
			}
		}
	}()
	return ch, nil
}
