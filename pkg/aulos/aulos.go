package aulos

import (
	"context"
	"time"

	"github.com/crimson-sun/aulos/internal/engine"
	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/engine/sequencer"
	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/output"
	"github.com/crimson-sun/aulos/internal/output/midifile"
	"github.com/crimson-sun/aulos/internal/output/wavfile"
	"github.com/crimson-sun/aulos/internal/parser"
	"github.com/crimson-sun/aulos/internal/synth"
)

// Event is one HTTP access-log record.
type Event struct {
	Timestamp    time.Time
	Method       string
	Path         string
	Status       int
	Bytes        int64
	ResponseTime float64 // seconds
}

// Note is the musical representation of one event.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Note struct {
	Pitch     int     `json:"pitch"`      // MIDI note number
	Frequency float64 `json:"frequency"`  // Hz
	Duration  float64 `json:"duration"`   // seconds
	Velocity  int     `json:"velocity"`   // 0-127
	Category  string  `json:"category"`   // success, redirect, ...
	Timbre    string  `json:"timbre"`     // melodic, dissonant, alarm, neutral
	Track     int     `json:"track"`      // 0-3
	StartTime float64 `json:"start_time"` // seconds from sequence start
}

// Stats is a snapshot of one sonification run.
type Stats struct {
	EventCount    int     `json:"event_count"`
	TotalDuration float64 `json:"total_duration_seconds"`
	Tempo         float64 `json:"tempo_bpm"`
}

// Sonifier accumulates events into a time-ordered note sequence.
type Sonifier struct {
	eng        *engine.Engine
	sampleRate int
	envelope   synth.Envelope
}

// New creates a Sonifier. The default tempo is 120 BPM.
func New(opts ...Option) *Sonifier {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := mapper.New()
	if o.scales != nil {
		m = mapper.NewWithScales(o.scales)
	}
	return &Sonifier{
		eng:        engine.New(m, sequencer.New(o.tempo)),
		sampleRate: o.sampleRate,
		envelope:   o.envelope,
	}
}

// Add maps the event, places it on the clock, and returns the note.
func (s *Sonifier) Add(ev Event) Note {
	return noteFromMapped(s.eng.Process(toModel(ev)))
}

// AddBatch maps and places a slice of events in order.
func (s *Sonifier) AddBatch(evs []Event) []Note {
	notes := make([]Note, len(evs))
	for i, ev := range evs {
		notes[i] = s.Add(ev)
	}
	return notes
}

// Notes returns the full sequence accumulated so far.
func (s *Sonifier) Notes() []Note {
	internal := s.eng.Notes()
	notes := make([]Note, len(internal))
	for i, n := range internal {
		notes[i] = noteFromMapped(n)
	}
	return notes
}

// Stats returns the run snapshot.
func (s *Sonifier) Stats() Stats {
	st := s.eng.Stats()
	return Stats{
		EventCount:    st.EventCount,
		TotalDuration: st.TotalDuration,
		Tempo:         st.Tempo,
	}
}

// WriteMIDI renders the accumulated sequence to a multi-track SMF file
// at the Sonifier's tempo.
func (s *Sonifier) WriteMIDI(path string) error {
	return s.render(midifile.New(path, s.eng.Stats().Tempo))
}

// WriteWAV synthesizes the accumulated sequence to a 16-bit mono PCM
// WAV file using the configured sample rate and envelope.
func (s *Sonifier) WriteWAV(path string) error {
	sy := synth.New(
		synth.WithSampleRate(s.sampleRate),
		synth.WithEnvelope(s.envelope),
	)
	return s.render(wavfile.New(path, sy))
}

func (s *Sonifier) render(out output.Output) error {
	ctx := context.Background()
	for _, n := range s.eng.Notes() {
		if err := out.Write(ctx, n); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

// Close marks the run finished. The Sonifier holds no resources of its
// own; Close exists so callers can treat it like other writer-shaped
// values.
func (s *Sonifier) Close() error {
	return nil
}

// ParseLine converts a raw access-log line (nginx combined, Apache
// common, or JSON) into an Event. Returns ok=false for lines in no
// known format.
func ParseLine(line string) (Event, bool) {
	ev, ok := parser.New().Parse(line)
	if !ok {
		return Event{}, false
	}
	return Event{
		Timestamp:    ev.Timestamp,
		Method:       ev.Method,
		Path:         ev.Path,
		Status:       ev.Status,
		Bytes:        ev.Bytes,
		ResponseTime: ev.ResponseTime,
	}, true
}

func toModel(ev Event) model.LogEvent {
	return model.LogEvent{
		Timestamp:    ev.Timestamp,
		Method:       ev.Method,
		Path:         ev.Path,
		Status:       ev.Status,
		Bytes:        ev.Bytes,
		ResponseTime: ev.ResponseTime,
	}
}

func noteFromMapped(n model.MappedNote) Note {
	return Note{
		Pitch:     n.Pitch,
		Frequency: n.Frequency,
		Duration:  n.Duration,
		Velocity:  n.Velocity,
		Category:  n.Category.String(),
		Timbre:    n.Timbre.String(),
		Track:     n.Track,
		StartTime: n.StartTime,
	}
}
