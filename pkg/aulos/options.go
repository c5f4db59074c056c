package aulos

import (
	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/synth"
)

// Envelope holds ADSR shaping parameters for the audio path. Attack,
// Decay and Release are fractions of each note's length in [0,1];
// Sustain is the level held between decay and release.
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

type options struct {
	tempo      float64
	sampleRate int
	envelope   synth.Envelope
	scales     mapper.ScaleSet
}

// Option configures a Sonifier.
type Option func(*options)

// WithTempo sets the tempo in BPM. The sequencer clock advances one beat
// (60/tempo seconds) per event. Non-positive values fall back to the
// default 120 BPM.
func WithTempo(bpm float64) Option {
	return func(o *options) {
		o.tempo = bpm
	}
}

// WithSampleRate sets the audio sample rate in Hz used by WriteWAV.
// Non-positive values are ignored. The default is 44100.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		if rate > 0 {
			o.sampleRate = rate
		}
	}
}

// WithEnvelope sets the ADSR envelope used by WriteWAV.
func WithEnvelope(env Envelope) Option {
	return func(o *options) {
		o.envelope = synth.Envelope{
			Attack:  env.Attack,
			Decay:   env.Decay,
			Sustain: env.Sustain,
			Release: env.Release,
		}
	}
}

// WithScale overrides the scale for one category. Offsets are semitones
// from the root pitch; an empty list is ignored.
func WithScale(category string, offsets []int) Option {
	return func(o *options) {
		if len(offsets) == 0 {
			return
		}
		c, ok := model.ParseCategory(category)
		if !ok {
			return
		}
		if o.scales == nil {
			o.scales = mapper.DefaultScales()
		}
		o.scales[c] = append(mapper.Scale(nil), offsets...)
	}
}

// WithScales overrides scales for several categories at once, keyed by
// category name (success, redirect, client_error, server_error, neutral).
func WithScales(scales map[string][]int) Option {
	return func(o *options) {
		for category, offsets := range scales {
			WithScale(category, offsets)(o)
		}
	}
}

func defaultOptions() options {
	return options{
		tempo:      120,
		sampleRate: 44100,
		envelope:   synth.DefaultEnvelope(),
	}
}
