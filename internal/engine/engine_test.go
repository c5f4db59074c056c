package engine

import (
	"reflect"
	"testing"

	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/engine/sequencer"
	"github.com/crimson-sun/aulos/internal/model"
)

func newEngine() *Engine {
	return New(mapper.New(), sequencer.New(120))
}

// Three events covering success, client error, and server error, with
// response times and sizes spanning every mapping band.
func scenarioEvents() []model.LogEvent {
	return []model.LogEvent{
		{Status: 200, Path: "/api/users", ResponseTime: 0.05, Bytes: 500},
		{Status: 404, Path: "/api/missing", ResponseTime: 0.6, Bytes: 20000},
		{Status: 500, Path: "/api/process", ResponseTime: 1.2, Bytes: 100},
	}
}

func TestRoundTripScenario(t *testing.T) {
	eng := newEngine()
	notes := eng.ProcessBatch(scenarioEvents())

	if len(notes) != 3 {
		t.Fatalf("got %d notes, want 3", len(notes))
	}

	// Note 1: success, fast band, short duration.
	if notes[0].Category != model.Success {
		t.Errorf("note 1 category = %v, want success", notes[0].Category)
	}
	if notes[0].Pitch != 72 {
		t.Errorf("note 1 pitch = %d, want fast-band 72", notes[0].Pitch)
	}
	if notes[0].Duration != 0.25 {
		t.Errorf("note 1 duration = %v, want 0.25", notes[0].Duration)
	}

	// Note 2: client error, slow band, long duration.
	if notes[1].Category != model.ClientError {
		t.Errorf("note 2 category = %v, want client_error", notes[1].Category)
	}
	if notes[1].Pitch != 48 {
		t.Errorf("note 2 pitch = %d, want slow-band 48", notes[1].Pitch)
	}
	if notes[1].Duration != 1.0 {
		t.Errorf("note 2 duration = %v, want 1.0", notes[1].Duration)
	}

	// Note 3: server error, slow band, short duration.
	if notes[2].Category != model.ServerError {
		t.Errorf("note 3 category = %v, want server_error", notes[2].Category)
	}
	if notes[2].Pitch != 48 {
		t.Errorf("note 3 pitch = %d, want slow-band 48", notes[2].Pitch)
	}
	if notes[2].Duration != 0.25 {
		t.Errorf("note 3 duration = %v, want 0.25", notes[2].Duration)
	}

	// Monotonically increasing start times.
	for i := 1; i < len(notes); i++ {
		if notes[i].StartTime <= notes[i-1].StartTime {
			t.Fatalf("start times not increasing: %v then %v",
				notes[i-1].StartTime, notes[i].StartTime)
		}
	}

	if st := eng.Stats(); st.EventCount != 3 {
		t.Fatalf("event count = %d, want 3", st.EventCount)
	}
}

func TestProcessDeterministic(t *testing.T) {
	first := newEngine().ProcessBatch(scenarioEvents())
	second := newEngine().ProcessBatch(scenarioEvents())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two identical runs diverged:\n%+v\n%+v", first, second)
	}
}

func TestNotesMatchProcessReturns(t *testing.T) {
	eng := newEngine()
	returned := eng.ProcessBatch(scenarioEvents())

	if !reflect.DeepEqual(returned, eng.Notes()) {
		t.Fatal("Notes() differs from notes returned by ProcessBatch")
	}
}
