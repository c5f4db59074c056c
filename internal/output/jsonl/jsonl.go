// Package jsonl writes the note sequence as NDJSON to a file, one note
// per line — the symbolic output for tooling that doesn't speak MIDI.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/aulos/internal/model"
)

const defaultBufSize = 64 * 1024 // 64KB

// Output writes NDJSON notes to a file with buffered I/O.
type Output struct {
	mu   sync.Mutex
	w    *bufio.Writer
	f    *os.File
	path string
}

// New creates a jsonl output that truncates and writes the given path.
func New(path string) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("jsonl output: open %s: %w", path, err)
	}
	return &Output{
		f:    f,
		w:    bufio.NewWriterSize(f, defaultBufSize),
		path: path,
	}, nil
}

// Write JSON-encodes the note and appends it as a line to the file.
func (o *Output) Write(_ context.Context, note model.MappedNote) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("jsonl output: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("jsonl output: write: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("jsonl output: flush: %w", err)
	}
	return o.f.Close()
}
