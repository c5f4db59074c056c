// Package midifile renders the note sequence to a standard MIDI file
// with one track per status category.
package midifile

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/model"
)

const (
	numTracks       = 4
	ticksPerQuarter = 960
)

var trackNames = [numTracks]string{"melody", "harmony", "bass", "percussion"}

// Output accumulates notes and writes a 4-track SMF on Close.
type Output struct {
	path  string
	tempo float64
	notes [numTracks][]model.MappedNote
}

// New creates a MIDI file output. The file is written on Close.
func New(path string, tempo float64) *Output {
	return &Output{path: path, tempo: tempo}
}

// Write buffers the note on its category track.
func (o *Output) Write(_ context.Context, note model.MappedNote) error {
	track := note.Track
	if track < 0 || track >= numTracks {
		track = 0
	}
	o.notes[track] = append(o.notes[track], note)
	return nil
}

// Close assembles the SMF and writes it to disk.
func (o *Output) Close() error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	for i := 0; i < numTracks; i++ {
		s.Add(o.buildTrack(i))
	}

	if err := s.WriteFile(o.path); err != nil {
		return fmt.Errorf("midi output: write %s: %w", o.path, err)
	}
	return nil
}

// timedMsg is a channel message at an absolute tick position.
type timedMsg struct {
	tick uint32
	off  bool // note-off sorts before note-on at the same tick
	msg  midi.Message
}

func (o *Output) buildTrack(i int) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(trackNames[i]))
	if i == 0 {
		// Format-1 convention keeps the tempo map in the first track.
		tr.Add(0, smf.MetaTempo(o.tempo))
	}
	tr.Add(0, midi.ProgramChange(uint8(i), mapper.TrackPrograms[i]))

	msgs := make([]timedMsg, 0, 2*len(o.notes[i]))
	for _, n := range o.notes[i] {
		key := clampKey(n.Pitch)
		vel := clampVelocity(n.Velocity)
		on := o.ticksAt(n.StartTime)
		off := o.ticksAt(n.StartTime + n.Duration)
		if off <= on {
			off = on + 1
		}
		msgs = append(msgs,
			timedMsg{tick: on, msg: midi.NoteOn(uint8(i), key, vel)},
			timedMsg{tick: off, off: true, msg: midi.NoteOff(uint8(i), key)},
		)
	}
	sort.SliceStable(msgs, func(a, b int) bool {
		if msgs[a].tick != msgs[b].tick {
			return msgs[a].tick < msgs[b].tick
		}
		return msgs[a].off && !msgs[b].off
	})

	var cursor uint32
	for _, m := range msgs {
		tr.Add(m.tick-cursor, m.msg)
		cursor = m.tick
	}
	tr.Close(0)
	return tr
}

// ticksAt converts sequence time in seconds to MIDI ticks at the
// configured tempo.
func (o *Output) ticksAt(seconds float64) uint32 {
	beats := seconds * o.tempo / 60.0
	return uint32(math.Round(beats * ticksPerQuarter))
}

func clampKey(pitch int) uint8 {
	if pitch < 0 {
		return 0
	}
	if pitch > 127 {
		return 127
	}
	return uint8(pitch)
}

func clampVelocity(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}
