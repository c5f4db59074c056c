package output

import (
	"context"

	"github.com/crimson-sun/aulos/internal/model"
)

// Output defines the interface for note-sequence destinations. Notes
// arrive in start-time order, one per processed event; renderers that
// need the whole sequence (WAV, MIDI) accumulate and flush on Close.
type Output interface {
	Write(ctx context.Context, note model.MappedNote) error
	Close() error
}
