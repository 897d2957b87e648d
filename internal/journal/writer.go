package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pixil98/go-pixelmmo/internal/events"
)

const hourLayout = "2006-01-02-15"

// Entry is one delivered event as it appears in the journal.
type Entry struct {
	Time    time.Time       `json:"time"`
	Target  string          `json:"target,omitempty"`
	Exclude string          `json:"exclude,omitempty"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// Writer appends delivered events to hourly zstd-compressed JSONL files.
type Writer struct {
	dir    string
	prefix string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewWriter(dir, prefix string) *Writer {
	return &Writer{
		dir:    dir,
		prefix: prefix,
	}
}

// Start keeps the journal open until ctx ends.
func (w *Writer) Start(ctx context.Context) error {
	<-ctx.Done()
	if err := w.Close(); err != nil {
		slog.WarnContext(ctx, "closing journal", "error", err)
	}
	return nil
}

// Record writes one entry per message stamped with at.
func (w *Writer) Record(_ context.Context, at time.Time, msgs []events.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := at.UTC().Format(hourLayout)
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	for _, m := range msgs {
		data, err := json.Marshal(m.Data)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", m.Event, err)
		}
		line, err := json.Marshal(Entry{
			Time:    at.UTC(),
			Target:  m.Target,
			Exclude: m.Exclude,
			Event:   m.Event,
			Data:    data,
		})
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		if _, err := w.w.Write(line); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing journal: %w", err)
	}
	return w.enc.Flush()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	// Appending starts a new zstd frame, which decoders read back to back.
	f, err := os.OpenFile(w.PathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("creating encoder: %w", err)
	}

	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	w.curHour = ""
	return err
}

// PathForHour names the file holding entries for an hour in hourLayout.
func (w *Writer) PathForHour(hour string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
