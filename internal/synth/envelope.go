package synth

// Envelope holds ADSR shaping parameters. Attack, Decay and Release are
// fractions of the buffer length in [0,1]; Sustain is the level held
// between decay and release.
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultEnvelope is a gentle shape that removes clicks without
// swallowing short notes.
func DefaultEnvelope() Envelope {
	return Envelope{Attack: 0.1, Decay: 0.1, Sustain: 0.7, Release: 0.2}
}

// Apply returns a new buffer of the same length with the ADSR envelope
// applied sample-by-sample: 0→1 over attack, 1→sustain over decay, flat
// at sustain, sustain→0 over release. Every segment is computed as a
// fraction of the full buffer and clamped to it, so fractions that
// overlap or sum past 1 never index out of range; where the release
// segment overlaps attack or decay, the release ramp wins.
func (e Envelope) Apply(wave []float64) []float64 {
	n := len(wave)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	attack := clampSamples(e.Attack, n)
	decay := min(clampSamples(e.Decay, n), n-attack)
	release := clampSamples(e.Release, n)
	releaseStart := n - release

	for i, s := range wave {
		var gain float64
		switch {
		case i >= releaseStart:
			gain = ramp(i-releaseStart, release, e.Sustain, 0)
		case i < attack:
			gain = ramp(i, attack, 0, 1)
		case i < attack+decay:
			gain = ramp(i-attack, decay, 1, e.Sustain)
		default:
			gain = e.Sustain
		}
		out[i] = s * gain
	}
	return out
}

// clampSamples converts a fraction to a sample count bounded to [0, limit].
func clampSamples(fraction float64, limit int) int {
	if fraction < 0 || limit <= 0 {
		return 0
	}
	s := int(fraction * float64(limit))
	if s > limit {
		return limit
	}
	return s
}

// ramp interpolates linearly from lo to hi over length samples.
func ramp(i, length int, lo, hi float64) float64 {
	if length <= 1 {
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(length-1)
}
