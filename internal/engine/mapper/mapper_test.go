package mapper

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/crimson-sun/aulos/internal/model"
)

func TestCategoryOfBands(t *testing.T) {
	tests := []struct {
		status int
		want   model.Category
	}{
		{200, model.Success},
		{204, model.Success},
		{299, model.Success},
		{300, model.Redirect},
		{301, model.Redirect},
		{399, model.Redirect},
		{400, model.ClientError},
		{404, model.ClientError},
		{499, model.ClientError},
		{500, model.ServerError},
		{503, model.ServerError},
		{599, model.ServerError},
		{100, model.Neutral},
		{101, model.Neutral},
		{199, model.Neutral},
		{600, model.Neutral},
		{0, model.Neutral},
		{-1, model.Neutral},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.status); got != tt.want {
			t.Errorf("CategoryOf(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTempoOfAffine(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{0, 60},
		{1, 66},
		{10, 120},
		{-5, 60},  // negative rates clamp to zero
		{100, 300}, // capped at the ceiling
	}
	for _, tt := range tests {
		if got := TempoOf(tt.rate); got != tt.want {
			t.Errorf("TempoOf(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestResponseTimeBands(t *testing.T) {
	tests := []struct {
		name     string
		rt       float64
		wantFreq float64
		wantNote int
	}{
		{"zero", 0, 523.25, 72},
		{"fast", 0.05, 523.25, 72},
		{"just under fast boundary", 0.099, 523.25, 72},
		{"exactly 100ms is medium", 0.1, 261.63, 60},
		{"medium", 0.3, 261.63, 60},
		{"exactly 500ms is slow", 0.5, 130.81, 48},
		{"slow", 1.2, 130.81, 48},
		{"negative clamps to fast", -0.1, 523.25, 72},
	}
	for _, tt := range tests {
		if got := FrequencyOf(tt.rt); got != tt.wantFreq {
			t.Errorf("%s: FrequencyOf(%v) = %v, want %v", tt.name, tt.rt, got, tt.wantFreq)
		}
		if got := NoteOf(tt.rt); got != tt.wantNote {
			t.Errorf("%s: NoteOf(%v) = %d, want %d", tt.name, tt.rt, got, tt.wantNote)
		}
	}
}

func TestDurationOfBands(t *testing.T) {
	tests := []struct {
		bytes int64
		want  float64
	}{
		{0, 0.25},
		{500, 0.25},
		{999, 0.25},
		{1000, 0.5},
		{9999, 0.5},
		{10000, 1.0},
		{5_000_000, 1.0},
	}
	for _, tt := range tests {
		if got := DurationOf(tt.bytes); got != tt.want {
			t.Errorf("DurationOf(%d) = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}

func TestVelocityOfOrdering(t *testing.T) {
	if VelocityOf(model.Redirect) != 60 {
		t.Errorf("redirect velocity = %d, want 60", VelocityOf(model.Redirect))
	}
	if VelocityOf(model.Success) != 80 {
		t.Errorf("success velocity = %d, want 80", VelocityOf(model.Success))
	}
	if VelocityOf(model.ClientError) != 100 {
		t.Errorf("client error velocity = %d, want 100", VelocityOf(model.ClientError))
	}
	if VelocityOf(model.ServerError) != 120 {
		t.Errorf("server error velocity = %d, want 120", VelocityOf(model.ServerError))
	}

	// Redirects are quietest, server errors loudest.
	if !(VelocityOf(model.Redirect) < VelocityOf(model.Success) &&
		VelocityOf(model.Success) < VelocityOf(model.ClientError) &&
		VelocityOf(model.ClientError) < VelocityOf(model.ServerError)) {
		t.Fatal("velocity ordering violated")
	}
}

func TestTimbreAndTrack(t *testing.T) {
	tests := []struct {
		c      model.Category
		timbre model.Timbre
		track  int
	}{
		{model.Success, model.Melodic, 0},
		{model.Redirect, model.NeutralTone, 1},
		{model.ClientError, model.Dissonant, 2},
		{model.ServerError, model.Alarm, 3},
		{model.Neutral, model.NeutralTone, 0},
	}
	for _, tt := range tests {
		if got := TimbreOf(tt.c); got != tt.timbre {
			t.Errorf("TimbreOf(%v) = %v, want %v", tt.c, got, tt.timbre)
		}
		if got := TrackOf(tt.c); got != tt.track {
			t.Errorf("TrackOf(%v) = %d, want %d", tt.c, got, tt.track)
		}
	}
}

func TestPathNoteStable(t *testing.T) {
	m := New()
	first := m.PathNote("/api/users", model.Success)
	for i := 0; i < 100; i++ {
		if got := m.PathNote("/api/users", model.Success); got != first {
			t.Fatalf("PathNote unstable: got %d then %d", first, got)
		}
	}
}

func TestPathNoteIgnoresQueryString(t *testing.T) {
	m := New()
	plain := m.PathNote("/api/users", model.Success)
	query := m.PathNote("/api/users?page=2&sort=desc", model.Success)
	if plain != query {
		t.Fatalf("query string changed note: %d vs %d", plain, query)
	}
}

func TestPathNoteWithinScale(t *testing.T) {
	m := New()
	scale := DefaultScales()[model.Success]
	note := m.PathNote("/any/path/at/all", model.Success)

	found := false
	for _, offset := range scale {
		if note == 60+offset {
			found = true
		}
	}
	if !found {
		t.Fatalf("note %d is not a degree of the success scale", note)
	}
}

func TestPathNoteHighBitHashes(t *testing.T) {
	m := New()
	scale := DefaultScales()[model.Success]

	// Paths hashing above 1<<31 overflow a signed 32-bit int; indexing
	// must stay in range for those too.
	covered := 0
	for i := 0; i < 64; i++ {
		path := fmt.Sprintf("/api/resource/%d", i)
		h := fnv.New32a()
		h.Write([]byte(path))
		if h.Sum32() < 1<<31 {
			continue
		}
		covered++

		note := m.PathNote(path, model.Success)
		found := false
		for _, offset := range scale {
			if note == 60+offset {
				found = true
			}
		}
		if !found {
			t.Fatalf("PathNote(%q) = %d, not a degree of the success scale", path, note)
		}
	}
	if covered == 0 {
		t.Fatal("no test path hashed above 1<<31")
	}
}

func TestMapPrefersResponseTimePitch(t *testing.T) {
	m := New()

	withRT := m.Map(model.LogEvent{Status: 200, Path: "/a", ResponseTime: 0.05})
	if withRT.Pitch != 72 {
		t.Fatalf("expected fast-band pitch 72, got %d", withRT.Pitch)
	}

	withoutRT := m.Map(model.LogEvent{Status: 200, Path: "/a"})
	if withoutRT.Pitch != m.PathNote("/a", model.Success) {
		t.Fatalf("expected path-hash pitch, got %d", withoutRT.Pitch)
	}
}

func TestMapClampsNegativeInputs(t *testing.T) {
	m := New()
	n := m.Map(model.LogEvent{Status: 200, Path: "/a", Bytes: -50, ResponseTime: -1})
	if n.Duration != 0.25 {
		t.Errorf("negative bytes: duration = %v, want 0.25", n.Duration)
	}
	if n.Frequency != 523.25 {
		t.Errorf("negative response time: frequency = %v, want fast band", n.Frequency)
	}
}

func TestMapDeterministic(t *testing.T) {
	m := New()
	ev := model.LogEvent{Status: 404, Path: "/api/missing?q=1", Bytes: 20000, ResponseTime: 0.6}

	first := m.Map(ev)
	for i := 0; i < 10; i++ {
		if got := m.Map(ev); got != first {
			t.Fatalf("Map not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestScaleSetFallback(t *testing.T) {
	s := ScaleSet{model.Neutral: {0, 2, 4}}
	if got := s.Scale(model.ServerError); len(got) != 3 {
		t.Fatalf("expected fallback to neutral scale, got %v", got)
	}

	empty := ScaleSet{}
	if got := empty.Scale(model.Success); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected root-only fallback, got %v", got)
	}
}

func TestDefaultScalesNonEmpty(t *testing.T) {
	s := DefaultScales()
	for _, c := range []model.Category{
		model.Success, model.Redirect, model.ClientError, model.ServerError, model.Neutral,
	} {
		if len(s.Scale(c)) == 0 {
			t.Errorf("category %v has empty scale", c)
		}
	}
}
