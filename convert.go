package htmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

var machinePool = sync.Pool{
	New: func() any { return &machine{} },
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Dialect Dialect
	Options []ConvertOption
}

// Convert reads HTML from the request reader, renders it through the
// dialect, and writes the result to the request writer.
func Convert(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: Writer is nil")
	}
	opts := req.Options
	if req.Dialect != nil {
		opts = append(opts[:len(opts):len(opts)], WithDialect(req.Dialect))
	}
	out, err := convertSource(newHTMLEvents(req.Reader), opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(req.Writer, out); err != nil {
		return fmt.Errorf("convert: write: %w", err)
	}
	return nil
}

// ConvertString renders an HTML string as Markdown (or another dialect).
func ConvertString(src string, opts ...ConvertOption) (string, error) {
	return convertSource(newHTMLEvents(strings.NewReader(src)), opts)
}

// ConvertReader renders HTML from r and returns the result.
func ConvertReader(r io.Reader, opts ...ConvertOption) (string, error) {
	if r == nil {
		return "", fmt.Errorf("convert: reader is nil")
	}
	return convertSource(newHTMLEvents(r), opts)
}

// ConvertEvents renders a pre-parsed event sequence. Use it when events come
// from something other than the built-in HTML tokenizer.
func ConvertEvents(src EventSource, opts ...ConvertOption) (string, error) {
	if src == nil {
		return "", fmt.Errorf("convert: event source is nil")
	}
	return convertSource(src, opts)
}

func convertSource(src EventSource, opts []ConvertOption) (string, error) {
	cfg := convertConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	m := machinePool.Get().(*machine)
	m.Reset(cfg.dialect, cfg)
	if err := m.run(src); err != nil {
		m.Reset(nil, convertConfig{})
		machinePool.Put(m)
		return "", fmt.Errorf("convert: %w", err)
	}
	out := m.finish()
	m.Reset(nil, convertConfig{})
	machinePool.Put(m)
	return out, nil
}
