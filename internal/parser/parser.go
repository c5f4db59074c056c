// Package parser converts raw HTTP access-log lines into canonical
// LogEvent records. Lines that match no known format are skipped;
// downstream packages never see malformed input.
package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/aulos/internal/model"
)

// Nginx combined log format.
var nginxPattern = regexp.MustCompile(
	`^([\d.]+) - (\S+) \[([^\]]+)\] "(\S+) (\S+) (\S+)" (\d{3}) (\d+) "([^"]*)" "([^"]*)"`)

// Apache common log format.
var apachePattern = regexp.MustCompile(
	`^([\d.]+) - (\S+) \[([^\]]+)\] "(\S+) (\S+) (\S+)" (\d{3}) (\d+)`)

const clfTimeLayout = "02/Jan/2006:15:04:05 -0700"

// Parser parses access-log lines in nginx combined, Apache common, or
// JSON-object format. Stateless; safe for concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts one log line into a LogEvent. Returns ok=false when the
// line is empty or matches no known format.
func (p *Parser) Parse(line string) (model.LogEvent, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.LogEvent{}, false
	}

	if strings.HasPrefix(line, "{") {
		if ev, ok := parseJSON(line); ok {
			return ev, true
		}
	}

	if m := nginxPattern.FindStringSubmatch(line); m != nil {
		return eventFromMatch(m), true
	}
	if m := apachePattern.FindStringSubmatch(line); m != nil {
		return eventFromMatch(m), true
	}
	return model.LogEvent{}, false
}

// jsonLine mirrors the structured access-log shape some proxies emit.
type jsonLine struct {
	Method       string      `json:"method"`
	Path         string      `json:"path"`
	Status       json.Number `json:"status"`
	Bytes        json.Number `json:"bytes"`
	ResponseTime json.Number `json:"response_time"`
}

func parseJSON(line string) (model.LogEvent, bool) {
	var j jsonLine
	if err := json.Unmarshal([]byte(line), &j); err != nil {
		return model.LogEvent{}, false
	}

	ev := model.LogEvent{
		Timestamp: time.Now(),
		Method:    "GET",
		Path:      "/",
		Status:    200,
	}
	if j.Method != "" {
		ev.Method = j.Method
	}
	if j.Path != "" {
		ev.Path = j.Path
	}
	if v, err := j.Status.Int64(); err == nil {
		ev.Status = int(v)
	}
	if v, err := j.Bytes.Int64(); err == nil {
		ev.Bytes = v
	}
	if v, err := j.ResponseTime.Float64(); err == nil {
		ev.ResponseTime = v
	}
	return ev, true
}

// eventFromMatch builds an event from the shared nginx/apache capture
// groups: 3=time, 4=method, 5=path, 7=status, 8=bytes. Response time is
// not recorded by either format, so it stays zero and the mapper falls
// back to path-hash pitch.
func eventFromMatch(m []string) model.LogEvent {
	ts := time.Now()
	if t, err := time.Parse(clfTimeLayout, m[3]); err == nil {
		ts = t
	} else if t, err := time.Parse("02/Jan/2006:15:04:05", m[3]); err == nil {
		ts = t
	}

	status, _ := strconv.Atoi(m[7])
	bytes, _ := strconv.ParseInt(m[8], 10, 64)

	return model.LogEvent{
		Timestamp: ts,
		Method:    m[4],
		Path:      m[5],
		Status:    status,
		Bytes:     bytes,
	}
}
