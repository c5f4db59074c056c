package midifile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/crimson-sun/aulos/internal/model"
)

func writeNotes(t *testing.T, notes []model.MappedNote) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.mid")
	o := New(path, 120)
	for _, n := range notes {
		if err := o.Write(context.Background(), n); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestWritesStandardMIDIFile(t *testing.T) {
	path := writeNotes(t, []model.MappedNote{
		{Pitch: 72, Duration: 0.25, Velocity: 80, Track: 0, StartTime: 0},
		{Pitch: 62, Duration: 0.5, Velocity: 60, Track: 1, StartTime: 0.5},
		{Pitch: 48, Duration: 1.0, Velocity: 100, Track: 2, StartTime: 1.0},
		{Pitch: 50, Duration: 0.25, Velocity: 120, Track: 3, StartTime: 1.5},
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "MThd" {
		t.Fatal("output is not a standard MIDI file")
	}

	s, err := smf.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back SMF: %v", err)
	}
	if got := len(s.Tracks); got != 4 {
		t.Fatalf("got %d tracks, want 4", got)
	}
}

func TestTempoMapOnFirstTrackOnly(t *testing.T) {
	path := writeNotes(t, []model.MappedNote{
		{Pitch: 72, Duration: 0.25, Velocity: 80, Track: 0, StartTime: 0},
		{Pitch: 48, Duration: 0.25, Velocity: 120, Track: 3, StartTime: 0.5},
	})

	s, err := smf.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, tr := range s.Tracks {
		var count int
		var bpm float64
		for _, ev := range tr {
			if ev.Message.GetMetaTempo(&bpm) {
				count++
			}
		}
		if i == 0 {
			if count != 1 {
				t.Fatalf("track 0 has %d tempo events, want 1", count)
			}
			if bpm != 120 {
				t.Fatalf("track 0 tempo = %v, want 120", bpm)
			}
		} else if count != 0 {
			t.Fatalf("track %d has %d tempo events, want 0", i, count)
		}
	}
}

func TestEmptySequenceStillWrites(t *testing.T) {
	path := writeNotes(t, nil)
	if _, err := smf.ReadFile(path); err != nil {
		t.Fatalf("empty sequence produced unreadable file: %v", err)
	}
}

func TestOutOfRangeTrackFallsBack(t *testing.T) {
	o := New(filepath.Join(t.TempDir(), "x.mid"), 120)
	if err := o.Write(context.Background(), model.MappedNote{Pitch: 60, Duration: 0.25, Track: 9}); err != nil {
		t.Fatal(err)
	}
	if len(o.notes[0]) != 1 {
		t.Fatal("expected out-of-range track to land on track 0")
	}
}

func TestTicksConversion(t *testing.T) {
	o := New("", 120)
	// At 120 BPM, one second is two beats = 1920 ticks.
	if got := o.ticksAt(1.0); got != 1920 {
		t.Fatalf("ticksAt(1.0) = %d, want 1920", got)
	}
	if got := o.ticksAt(0); got != 0 {
		t.Fatalf("ticksAt(0) = %d, want 0", got)
	}
}

func TestClamps(t *testing.T) {
	if clampKey(-5) != 0 || clampKey(200) != 127 || clampKey(60) != 60 {
		t.Fatal("clampKey out of range")
	}
	if clampVelocity(-1) != 0 || clampVelocity(128) != 127 || clampVelocity(64) != 64 {
		t.Fatal("clampVelocity out of range")
	}
}
