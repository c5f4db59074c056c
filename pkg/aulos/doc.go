// Package aulos maps HTTP access-log events to musical notes.
//
// Quick start:
//
//	s := aulos.New(aulos.WithTempo(120))
//	s.Add(aulos.Event{Status: 200, Path: "/api/users", Bytes: 1234})
//	s.Add(aulos.Event{Status: 500, Path: "/api/process", ResponseTime: 1.2})
//
//	for _, n := range s.Notes() {
//	    fmt.Println(n.Pitch, n.StartTime)
//	}
//	s.WriteMIDI("run.mid")
//
// Mapping is deterministic: the same event sequence always yields the
// same notes, across runs and processes. A Sonifier owns one sequence;
// create one per run. Not safe for concurrent use.
package aulos
