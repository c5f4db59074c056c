// Package tailer follows a single log file, emitting newly appended
// lines. Used by listen --follow.
package tailer

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reopenDelay = 250 * time.Millisecond

// Tailer reads newly appended lines from one file and sends them on Lines.
type Tailer struct {
	path   string
	out    chan string
	file   *os.File
	offset int64
	buf    string // partial line carried across reads
}

// New creates a Tailer for the given file path.
func New(path string) *Tailer {
	return &Tailer{
		path: path,
		out:  make(chan string, 256),
	}
}

// Lines returns the channel where appended lines are sent.
func (t *Tailer) Lines() <-chan string {
	return t.out
}

// Start begins at the end of the file and blocks until the context is
// cancelled, following the file through rotation.
func (t *Tailer) Start(ctx context.Context) error {
	defer close(t.out)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory so Create events after rotation are seen.
	if err := w.Add(filepath.Dir(t.path)); err != nil {
		return err
	}

	if err := t.open(io.SeekEnd); err != nil {
		slog.Warn("tail: cannot open file, waiting for it to appear", "path", t.path, "error", err)
	}
	defer t.closeFile()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(t.path) {
				continue
			}
			t.handle(ctx, ev)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("tail: watcher error", "error", err)
		}
	}
}

func (t *Tailer) handle(ctx context.Context, ev fsnotify.Event) {
	switch {
	case ev.Op&fsnotify.Write != 0:
		t.readNewLines(ctx)

	case ev.Op&fsnotify.Create != 0:
		// File reappeared after rotation; read from the start.
		t.closeFile()
		time.Sleep(reopenDelay)
		if err := t.open(io.SeekStart); err == nil {
			t.readNewLines(ctx)
		}

	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		t.closeFile()
	}
}

func (t *Tailer) open(whence int) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	offset, err := f.Seek(0, whence)
	if err != nil {
		f.Close()
		return err
	}
	t.file = f
	t.offset = offset
	t.buf = ""
	return nil
}

func (t *Tailer) closeFile() {
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
}

// readNewLines drains everything appended since the last read, emitting
// complete lines and buffering any trailing partial line.
func (t *Tailer) readNewLines(ctx context.Context) {
	if t.file == nil {
		if err := t.open(io.SeekStart); err != nil {
			return
		}
	}

	// Truncation (offset beyond current size) restarts from the top.
	if info, err := t.file.Stat(); err == nil && info.Size() < t.offset {
		t.file.Seek(0, io.SeekStart)
		t.offset = 0
		t.buf = ""
	}

	r := bufio.NewReader(t.file)
	for {
		chunk, err := r.ReadString('\n')
		t.offset += int64(len(chunk))
		if err != nil {
			t.buf += chunk
			return
		}
		line := t.buf + strings.TrimRight(chunk, "\n")
		t.buf = ""
		if line == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case t.out <- line:
		}
	}
}
