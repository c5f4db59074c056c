package engine

import (
	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/engine/sequencer"
	"github.com/crimson-sun/aulos/internal/model"
)

// Engine orchestrates the map → sequence pipeline for one run.
type Engine struct {
	mapper *mapper.Mapper
	seq    *sequencer.Sequencer
}

// New creates an Engine from the given components.
func New(m *mapper.Mapper, s *sequencer.Sequencer) *Engine {
	return &Engine{mapper: m, seq: s}
}

// Process maps a single log event and places it on the sequencer clock.
func (e *Engine) Process(ev model.LogEvent) model.MappedNote {
	return e.seq.Place(e.mapper.Map(ev))
}

// ProcessBatch maps and places a slice of events in order.
func (e *Engine) ProcessBatch(evs []model.LogEvent) []model.MappedNote {
	notes := make([]model.MappedNote, 0, len(evs))
	for _, ev := range evs {
		notes = append(notes, e.Process(ev))
	}
	return notes
}

// Notes returns the accumulated note sequence.
func (e *Engine) Notes() []model.MappedNote {
	return e.seq.Notes()
}

// Stats returns the sequencer's run snapshot.
func (e *Engine) Stats() model.Stats {
	return e.seq.Stats()
}
