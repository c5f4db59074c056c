package synth

import (
	"math"
	"reflect"
	"testing"

	"github.com/crimson-sun/aulos/internal/model"
)

func TestSineSampleCount(t *testing.T) {
	s := New()
	tests := []struct {
		duration float64
		want     int
	}{
		{1.0, 44100},
		{0.5, 22050},
		{0.1, 4410},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := len(s.Sine(440, tt.duration, 0.5)); got != tt.want {
			t.Errorf("Sine duration %v: %d samples, want %d", tt.duration, got, tt.want)
		}
	}
}

func TestSineRespectsSampleRate(t *testing.T) {
	s := New(WithSampleRate(8000))
	if got := len(s.Sine(440, 0.5, 0.5)); got != 4000 {
		t.Fatalf("got %d samples, want 4000", got)
	}
	if s.SampleRate() != 8000 {
		t.Fatalf("SampleRate() = %d, want 8000", s.SampleRate())
	}
}

func TestSineAmplitudeBounded(t *testing.T) {
	s := New()
	for i, v := range s.Sine(440, 0.1, 0.5) {
		if math.Abs(v) > 0.5 {
			t.Fatalf("sample %d = %v exceeds amplitude 0.5", i, v)
		}
	}
}

func TestSilenceIsZero(t *testing.T) {
	s := New()
	buf := s.Silence(0.1)
	if len(buf) != 4410 {
		t.Fatalf("got %d samples, want 4410", len(buf))
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestNoteLengthFollowsDuration(t *testing.T) {
	s := New()
	n := model.MappedNote{Frequency: 261.63, Duration: 0.25, Timbre: model.Melodic}
	if got := len(s.Note(n)); got != 11025 {
		t.Fatalf("got %d samples, want 11025", got)
	}
}

func TestAlarmNoteReproducible(t *testing.T) {
	n := model.MappedNote{Frequency: 130.81, Duration: 0.1, Timbre: model.Alarm}

	a := New(WithNoiseSeed(7)).Note(n)
	b := New(WithNoiseSeed(7)).Note(n)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different alarm waveforms")
	}
}

func TestTimbresDiffer(t *testing.T) {
	s := New()
	base := model.MappedNote{Frequency: 261.63, Duration: 0.1}

	melodic := base
	melodic.Timbre = model.Melodic
	neutral := base
	neutral.Timbre = model.NeutralTone

	a := s.Note(melodic)
	b := s.Note(neutral)
	if reflect.DeepEqual(a, b) {
		t.Fatal("melodic and neutral timbres produced identical waveforms")
	}

	// Neutral is the quietest timbre.
	if peak(b) >= peak(a) {
		t.Fatalf("neutral peak %v not below melodic peak %v", peak(b), peak(a))
	}
}

func peak(w []float64) float64 {
	var p float64
	for _, v := range w {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}
