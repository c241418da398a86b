package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

const (
	colorReset     = "\033[0m"
	colorGray      = "\033[90m"
	colorWhiteBold = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelError: "\033[0;31m", // red
	slog.LevelWarn:  "\033[0;33m", // yellow
	slog.LevelInfo:  "\033[0;36m", // cyan
	slog.LevelDebug: "\033[0;32m", // green
}

// ColorHandler writes one coloured line per record followed by its
// attributes as indented JSON.
type ColorHandler struct {
	out   io.Writer
	mu    *sync.Mutex
	opts  slog.HandlerOptions
	attrs []slog.Attr
	group string
}

func NewColorHandler(out io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	h := &ColorHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := r.Time.Format("[01/02 15:04]")
	colorCode, ok := levelColors[r.Level]
	if !ok {
		colorCode = colorReset
	}

	attrs := make(map[string]any)
	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		if frame, _ := frames.Next(); frame.File != "" {
			attrs["Source"] = filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
		}
	}

	for _, a := range h.attrs {
		addAttr(attrs, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(attrs, h.group, a)
		return true
	})

	var jsonAttrs string
	if len(attrs) > 0 {
		jsonBytes, err := json.MarshalIndent(attrs, "", "  ")
		if err == nil {
			jsonAttrs = " " + string(jsonBytes)
		}
	}

	msg := fmt.Sprintf("%s%s %s%s%s: %s%s%s\n",
		colorGray,
		timestamp,
		colorCode,
		r.Level.String(),
		colorWhiteBold,
		r.Message,
		colorReset,
		jsonAttrs,
	)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, msg)
	return err
}

func addAttr(attrs map[string]any, group string, a slog.Attr) {
	if a.Key == "" {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	value := a.Value.Resolve()
	if err, ok := value.Any().(error); ok {
		attrs[key] = err.Error()
		return
	}
	attrs[key] = value.Any()
}

func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	clone.group = name
	return &clone
}
