// Package mapper derives musical parameters from HTTP log event fields.
// Every function here is pure: same input, same output, across calls,
// runs and processes. That property is what makes regression audio
// reproducible, so changes to any mapping are breaking changes.
package mapper

import (
	"hash/fnv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/aulos/internal/model"
)

const (
	basePitch = 60 // middle C

	// Response-time band boundaries. A boundary value belongs to the
	// slower band (closed-open intervals).
	fastBandMs = 100
	slowBandMs = 500

	// Tempo is affine in request rate: 10 req/s ≈ 120 BPM.
	tempoBase    = 60.0
	tempoPerReq  = 6.0
	tempoCeiling = 300.0
)

// band is the response-time bucket shared by the frequency and note
// representations, so both renderers agree at the boundaries.
type band int

const (
	fast band = iota
	medium
	slow
)

var bandFrequency = [3]float64{523.25, 261.63, 130.81} // C5, C4, C3
var bandNote = [3]int{basePitch + 12, basePitch, basePitch - 12}

// Mapper turns log events into notes using an injected scale table.
// Zero shared mutable state; safe for concurrent use.
type Mapper struct {
	scales ScaleSet
}

// New creates a Mapper with the default scale tables.
func New() *Mapper {
	return NewWithScales(DefaultScales())
}

// NewWithScales creates a Mapper using a caller-provided scale table.
// The table is used as-is; callers must not mutate it afterwards.
func NewWithScales(s ScaleSet) *Mapper {
	return &Mapper{scales: s}
}

// CategoryOf buckets an HTTP status code. Total over all ints: anything
// outside the four standard bands is Neutral, never an error.
func CategoryOf(status int) model.Category {
	switch {
	case status >= 200 && status < 300:
		return model.Success
	case status >= 300 && status < 400:
		return model.Redirect
	case status >= 400 && status < 500:
		return model.ClientError
	case status >= 500 && status < 600:
		return model.ServerError
	default:
		return model.Neutral
	}
}

// TempoOf maps a request rate (events per second) to BPM.
// Negative rates clamp to zero; the result is capped at 300 BPM so a
// burst in the log cannot produce an unplayable tempo.
func TempoOf(ratePerSec float64) float64 {
	if ratePerSec < 0 {
		ratePerSec = 0
	}
	bpm := tempoBase + tempoPerReq*ratePerSec
	if bpm > tempoCeiling {
		return tempoCeiling
	}
	return bpm
}

// FrequencyOf maps a response time in seconds to a tone frequency in Hz.
// Fast responses ring high (C5), slow ones low (C3).
func FrequencyOf(responseTime float64) float64 {
	return bandFrequency[bandOf(responseTime)]
}

// NoteOf maps a response time in seconds to a MIDI note number, using the
// same bands as FrequencyOf.
func NoteOf(responseTime float64) int {
	return bandNote[bandOf(responseTime)]
}

func bandOf(responseTime float64) band {
	if responseTime < 0 {
		responseTime = 0
	}
	ms := responseTime * 1000
	switch {
	case ms < fastBandMs:
		return fast
	case ms < slowBandMs:
		return medium
	default:
		return slow
	}
}

// DurationOf maps a payload size to a note length in seconds.
// Bigger responses sustain longer.
func DurationOf(bytes int64) float64 {
	switch {
	case bytes < 1000:
		return 0.25
	case bytes < 10000:
		return 0.5
	default:
		return 1.0
	}
}

// VelocityOf maps a category to MIDI velocity. Redirects whisper,
// server errors shout.
func VelocityOf(c model.Category) int {
	switch c {
	case model.Success:
		return 80
	case model.Redirect:
		return 60
	case model.ClientError:
		return 100
	case model.ServerError:
		return 120
	default:
		return 64
	}
}

// TimbreOf maps a category to a waveform character for the audio path.
func TimbreOf(c model.Category) model.Timbre {
	switch c {
	case model.Success:
		return model.Melodic
	case model.ClientError:
		return model.Dissonant
	case model.ServerError:
		return model.Alarm
	default:
		return model.NeutralTone
	}
}

// TrackOf maps a category to a MIDI track index (0-3).
func TrackOf(c model.Category) int {
	switch c {
	case model.Redirect:
		return 1
	case model.ClientError:
		return 2
	case model.ServerError:
		return 3
	default:
		return 0
	}
}

// PathNote selects a scale degree for a request path. The query string is
// stripped and the path NFC-normalized before hashing with FNV-1a, so the
// same endpoint always lands on the same degree regardless of process,
// run, or unicode encoding of the path.
func (m *Mapper) PathNote(path string, c model.Category) int {
	scale := m.scales.Scale(c)
	clean, _, _ := strings.Cut(path, "?")
	h := fnv.New32a()
	h.Write([]byte(norm.NFC.String(clean)))
	degree := scale[h.Sum32()%uint32(len(scale))]
	return basePitch + degree
}

// Map derives the full musical parameter set for one event. StartTime is
// left zero; the sequencer stamps it. When the log records a response time
// the pitch follows its band, otherwise the path hash picks a degree from
// the category's scale.
func (m *Mapper) Map(ev model.LogEvent) model.MappedNote {
	c := CategoryOf(ev.Status)

	pitch := m.PathNote(ev.Path, c)
	if ev.ResponseTime > 0 {
		pitch = NoteOf(ev.ResponseTime)
	}

	return model.MappedNote{
		Pitch:     pitch,
		Frequency: FrequencyOf(ev.ResponseTime),
		Duration:  DurationOf(max(ev.Bytes, 0)),
		Velocity:  VelocityOf(c),
		Category:  c,
		Timbre:    TimbreOf(c),
		Track:     TrackOf(c),
	}
}
