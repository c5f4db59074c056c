package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/output"
)

// Multi fans out notes to multiple output.Output implementations, so one
// run can produce e.g. a MIDI file and a WAV file together. If one
// output fails, the remaining outputs still receive the note.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the note to every wrapped output. Errors are collected
// but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, note model.MappedNote) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, note); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
