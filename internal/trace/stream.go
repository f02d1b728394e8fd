package trace

import (
	"io"
	"sync"
)

// StreamTracer writes each event as soon as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// trace output must never fail a run
	_, _ = t.w.Write(data) //nolint:errcheck
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	if s, ok := t.w.(interface{ Sync() error }); ok {
		// stderr refuses Sync on some terminals
		_ = s.Sync()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok && !isStdStream(t.w) {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
