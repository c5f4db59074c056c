package model

import "encoding/json"

// Category is the qualitative bucket derived from an HTTP status code.
type Category int

const (
	Success     Category = iota // 2xx
	Redirect                    // 3xx
	ClientError                 // 4xx
	ServerError                 // 5xx
	Neutral                     // anything else (1xx, out-of-range, unknown)
)

// String returns the category name used in JSON output and logs.
func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case Redirect:
		return "redirect"
	case ClientError:
		return "client_error"
	case ServerError:
		return "server_error"
	default:
		return "neutral"
	}
}

// ParseCategory maps a category name back to its enum value.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "success":
		return Success, true
	case "redirect":
		return Redirect, true
	case "client_error":
		return ClientError, true
	case "server_error":
		return ServerError, true
	case "neutral":
		return Neutral, true
	default:
		return Neutral, false
	}
}

// MarshalJSON encodes the category as its name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category name; unknown names become Neutral.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseCategory(s)
	*c = parsed
	return nil
}

// Timbre selects the waveform character on the audio rendering path.
type Timbre int

const (
	Melodic     Timbre = iota // plain sine, normal volume
	Dissonant                 // detuned sine, louder
	Alarm                     // sine plus noise, loudest
	NeutralTone               // quiet sine
)

func (t Timbre) String() string {
	switch t {
	case Melodic:
		return "melodic"
	case Dissonant:
		return "dissonant"
	case Alarm:
		return "alarm"
	default:
		return "neutral"
	}
}

// MarshalJSON encodes the timbre as its name.
func (t Timbre) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a timbre name; unknown names become NeutralTone.
func (t *Timbre) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "melodic":
		*t = Melodic
	case "dissonant":
		*t = Dissonant
	case "alarm":
		*t = Alarm
	default:
		*t = NeutralTone
	}
	return nil
}

// MappedNote is the musical representation of one log event. Everything but
// StartTime is derived purely from the event; StartTime is stamped by the
// sequencer clock.
type MappedNote struct {
	Pitch     int      `json:"pitch"`      // MIDI note number, symbolic path
	Frequency float64  `json:"frequency"`  // Hz, audio path; same band as Pitch
	Duration  float64  `json:"duration"`   // seconds
	Velocity  int      `json:"velocity"`   // 0-127
	Category  Category `json:"category"`
	Timbre    Timbre   `json:"timbre"`
	Track     int      `json:"track"`      // 0-3
	StartTime float64  `json:"start_time"` // seconds from sequence start
}

// Amplitude converts Velocity to the [0,1] range used by audio renderers.
func (n MappedNote) Amplitude() float64 {
	return float64(n.Velocity) / 127.0
}

// Stats is a read-only snapshot of one sequencing run.
type Stats struct {
	EventCount    int     `json:"event_count"`
	TotalDuration float64 `json:"total_duration_seconds"`
	Tempo         float64 `json:"tempo_bpm"`
}
