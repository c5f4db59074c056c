// Package sequencer places mapped notes on a monotonically advancing
// logical clock.
package sequencer

import "github.com/crimson-sun/aulos/internal/model"

// DefaultTempo is used when a run doesn't configure one. At 120 BPM the
// clock advances 0.5s per event.
const DefaultTempo = 120.0

// Sequencer owns the clock and the append-only note sequence for one run.
// Not safe for concurrent use; one instance per pipeline.
type Sequencer struct {
	tempo       float64
	increment   float64 // seconds per beat, always > 0
	currentTime float64
	notes       []model.MappedNote
}

// New creates a Sequencer advancing one beat (60/tempo seconds) per event.
// Non-positive tempo falls back to DefaultTempo.
func New(tempo float64) *Sequencer {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	return &Sequencer{
		tempo:     tempo,
		increment: 60.0 / tempo,
	}
}

// Place stamps the note with the current clock, appends it, and advances
// the clock. Returns the stamped note. Start times strictly increase
// because the increment is never zero.
func (s *Sequencer) Place(n model.MappedNote) model.MappedNote {
	n.StartTime = s.currentTime
	s.notes = append(s.notes, n)
	s.currentTime += s.increment
	return n
}

// Notes returns the sequence accumulated so far. The returned slice is the
// live backing array; callers must treat it as read-only.
func (s *Sequencer) Notes() []model.MappedNote {
	return s.notes
}

// Tempo returns the configured tempo in BPM.
func (s *Sequencer) Tempo() float64 {
	return s.tempo
}

// Stats returns a snapshot of the run. TotalDuration is clock time in
// seconds, including the advance past the final note.
func (s *Sequencer) Stats() model.Stats {
	return model.Stats{
		EventCount:    len(s.notes),
		TotalDuration: s.currentTime,
		Tempo:         s.tempo,
	}
}
