package model

import "time"

// LogEvent is the canonical form of one HTTP access-log line.
// Produced once by the parser, then immutable.
type LogEvent struct {
	Timestamp    time.Time
	Method       string  // GET, POST, ...
	Path         string  // request path, may still carry a query string
	Status       int     // HTTP status code
	Bytes        int64   // response body size
	ResponseTime float64 // seconds; 0 when the log format doesn't record it
}
