// Package synth generates and shapes the sample buffers for the audio
// rendering path. Everything operates on plain float64 slices; container
// encoding lives in the output backends.
package synth

import (
	"math"
	"math/rand"

	"github.com/crimson-sun/aulos/internal/model"
)

// DefaultSampleRate is CD quality.
const DefaultSampleRate = 44100

// Standard deviation of the additive noise mixed into alarm tones.
const alarmNoiseStdDev = 0.2

// Per-timbre base amplitudes and detune factors.
var timbreAmplitude = map[model.Timbre]float64{
	model.Melodic:     0.5,
	model.Dissonant:   0.7,
	model.Alarm:       0.8,
	model.NeutralTone: 0.3,
}

// Synth generates envelope-shaped tones at a fixed sample rate.
// The noise source is seeded at construction so alarm tones are
// reproducible run to run.
type Synth struct {
	sampleRate int
	envelope   Envelope
	noise      *rand.Rand
}

// Option configures a Synth.
type Option func(*Synth)

// WithSampleRate overrides the default 44100 Hz sample rate.
func WithSampleRate(rate int) Option {
	return func(s *Synth) {
		if rate > 0 {
			s.sampleRate = rate
		}
	}
}

// WithEnvelope overrides the default ADSR shape.
func WithEnvelope(e Envelope) Option {
	return func(s *Synth) { s.envelope = e }
}

// WithNoiseSeed reseeds the alarm-noise source.
func WithNoiseSeed(seed int64) Option {
	return func(s *Synth) { s.noise = rand.New(rand.NewSource(seed)) }
}

// New creates a Synth with CD-quality defaults and a fixed noise seed.
func New(opts ...Option) *Synth {
	s := &Synth{
		sampleRate: DefaultSampleRate,
		envelope:   DefaultEnvelope(),
		noise:      rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleRate returns the configured sample rate in Hz.
func (s *Synth) SampleRate() int {
	return s.sampleRate
}

// Sine returns a pure tone: floor(sampleRate × duration) samples at the
// given frequency and amplitude.
func (s *Synth) Sine(freq, duration, amplitude float64) []float64 {
	n := int(float64(s.sampleRate) * duration)
	if n <= 0 {
		return nil
	}
	wave := make([]float64, n)
	step := 2 * math.Pi * freq / float64(s.sampleRate)
	for i := range wave {
		wave[i] = amplitude * math.Sin(step*float64(i))
	}
	return wave
}

// Silence returns a zero buffer covering the given duration.
func (s *Synth) Silence(duration float64) []float64 {
	n := int(float64(s.sampleRate) * duration)
	if n <= 0 {
		return nil
	}
	return make([]float64, n)
}

// Note synthesizes the envelope-shaped tone for a mapped note. The timbre
// picks the base amplitude; Dissonant detunes the frequency down and Alarm
// mixes in gaussian noise before shaping.
func (s *Synth) Note(n model.MappedNote) []float64 {
	freq := n.Frequency
	amp := timbreAmplitude[n.Timbre]
	if amp == 0 {
		amp = timbreAmplitude[model.NeutralTone]
	}
	if n.Timbre == model.Dissonant {
		freq *= 0.8
	}

	wave := s.Sine(freq, n.Duration, amp)
	if n.Timbre == model.Alarm {
		for i := range wave {
			wave[i] += s.noise.NormFloat64() * alarmNoiseStdDev
		}
	}
	return s.envelope.Apply(wave)
}
