// Package wavfile renders the note sequence to a 16-bit mono PCM WAV
// file: each note's timbre tone is envelope-shaped, notes are separated
// by a short silence gap, and the whole buffer is peak-normalized.
package wavfile

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/synth"
)

const (
	bitDepth   = 16
	pcmFormat  = 1
	gapSeconds = 0.1 // silence between notes
	peakTarget = 32767
)

// Output accumulates synthesized samples and writes the WAV on Close.
type Output struct {
	path    string
	synth   *synth.Synth
	samples []float64
}

// New creates a WAV output rendering through the given synth.
func New(path string, s *synth.Synth) *Output {
	return &Output{path: path, synth: s}
}

// Write synthesizes the note and appends it plus a silence gap.
func (o *Output) Write(_ context.Context, note model.MappedNote) error {
	o.samples = append(o.samples, o.synth.Note(note)...)
	o.samples = append(o.samples, o.synth.Silence(gapSeconds)...)
	return nil
}

// Close normalizes the buffer to 16-bit PCM and writes the file.
// An all-silent buffer is written as-is; normalization never divides
// by a zero peak.
func (o *Output) Close() error {
	f, err := os.Create(o.path)
	if err != nil {
		return fmt.Errorf("wav output: create %s: %w", o.path, err)
	}

	rate := o.synth.SampleRate()
	enc := wav.NewEncoder(f, rate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           quantize(o.samples),
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("wav output: write: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wav output: close encoder: %w", err)
	}
	return f.Close()
}

// quantize peak-normalizes float samples to int16 range.
func quantize(samples []float64) []int {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	out := make([]int, len(samples))
	if peak == 0 {
		return out // silence in, silence out
	}
	scale := peakTarget / peak
	for i, s := range samples {
		out[i] = int(s * scale)
	}
	return out
}
