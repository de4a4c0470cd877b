// Package stream moves compiler output through the highlight filter and
// hands cycle signals to whoever supervises re-runs.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"wtsc/internal/highlight"
	"wtsc/internal/trace"
	"wtsc/internal/watchsig"
)

// DefaultChunkSize is the read buffer size; one Read is one chunk.
const DefaultChunkSize = 64 * 1024

// Pump copies Src to Out one chunk at a time.
type Pump struct {
	Src io.Reader
	Out io.Writer
	// Filter rewrites each chunk; nil copies chunks unchanged.
	Filter *highlight.Filter
	// Detector finds cycle boundaries in the raw chunk; nil disables signals.
	Detector  *watchsig.Detector
	Handlers  []watchsig.Handler
	ChunkSize int
}

// Run reads until EOF, which is not an error. Cancelling ctx closes Src when
// it is an io.Closer so that a blocked Read returns.
func (p *Pump) Run(ctx context.Context) error {
	if closer, ok := p.Src.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = closer.Close() })
		defer stop()
	}

	size := p.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	t := trace.FromContext(ctx)
	buf := make([]byte, size)
	for {
		n, err := p.Src.Read(buf)
		if n > 0 {
			trace.Point(t, trace.ScopeChunk, "chunk", strconv.Itoa(n)+" bytes")
			if perr := p.process(ctx, string(buf[:n])); perr != nil {
				return perr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read compiler output: %w", err)
		}
	}
}

// process writes the rewritten chunk before dispatching its signals, so a
// re-run banner never lands ahead of the ">>> done" line that caused it.
func (p *Pump) process(ctx context.Context, chunk string) error {
	out := chunk
	if p.Filter != nil {
		out = p.Filter.Apply(chunk)
	}
	if _, err := io.WriteString(p.Out, out); err != nil {
		return fmt.Errorf("write filtered output: %w", err)
	}

	if p.Detector == nil {
		return nil
	}
	for _, sig := range p.Detector.Scan(chunk) {
		for _, h := range p.Handlers {
			if err := h.HandleSignal(ctx, sig); err != nil {
				return fmt.Errorf("handle %s: %w", sig, err)
			}
		}
	}
	return nil
}
