// Package pipeline connects a log source, the mapping engine, and a
// note renderer into one run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/crimson-sun/aulos/internal/engine"
	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/output"
	"github.com/crimson-sun/aulos/internal/source"
)

// Pipeline drives events from a source through the engine to an output.
type Pipeline struct {
	source source.Source
	engine *engine.Engine
	output output.Output
}

// New creates a Pipeline from the given components.
func New(src source.Source, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{source: src, engine: eng, output: out}
}

// Run consumes the source to exhaustion, mapping each event to a note
// and writing it to the output. Blocks until the source closes or the
// context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	ch, err := p.source.Events(ctx)
	if err != nil {
		return fmt.Errorf("pipeline source: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			note := p.engine.Process(ev)
			if err := p.output.Write(ctx, note); err != nil {
				return fmt.Errorf("pipeline output: %w", err)
			}
		}
	}
}

// Stats returns the engine's run snapshot.
func (p *Pipeline) Stats() model.Stats {
	return p.engine.Stats()
}

// Close shuts down the output, flushing file renderers.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
