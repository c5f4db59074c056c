package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/parser"
)

// File reads an access-log file line by line, emitting only lines the
// parser recognizes. A missing file is an empty stream, not an error:
// one bad path must not abort a run.
type File struct {
	Path   string
	Parser *parser.Parser
	Limit  int // stop after this many events; 0 means no limit
}

// NewFile creates a file Source with a fresh parser.
func NewFile(path string) *File {
	return &File{Path: path, Parser: parser.New()}
}

// Events opens the file and streams parsed events until EOF, the limit,
// or context cancellation.
func (f *File) Events(ctx context.Context) (<-chan model.LogEvent, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("log file not found, treating as empty", "path", f.Path)
			ch := make(chan model.LogEvent)
			close(ch)
			return ch, nil
		}
		return nil, err
	}

	ch := make(chan model.LogEvent, 64)
	go func() {
		defer close(ch)
		defer file.Close()
		f.scan(ctx, file, ch)
	}()
	return ch, nil
}

func (f *File) scan(ctx context.Context, r io.Reader, ch chan<- model.LogEvent) {
	count := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		ev, ok := f.Parser.Parse(sc.Text())
		if !ok {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case ch <- ev:
		}
		count++
		if f.Limit > 0 && count >= f.Limit {
			return
		}
	}
	if err := sc.Err(); err != nil {
		slog.Warn("log file read error", "path", f.Path, "error", err)
	}
}
