package stream

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Supervisor runs alongside the pump and is told when the input is exhausted.
// *rerun.Coordinator satisfies it.
type Supervisor interface {
	Run(ctx context.Context) error
	Finish()
}

// Session runs a pump and an optional supervisor together.
type Session struct {
	Pump       *Pump
	Supervisor Supervisor
}

// Run returns when the pump has drained its source and the supervisor has
// wound down, or when ctx is cancelled. Cancellation by the caller is not
// reported as an error.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.Supervisor != nil {
		g.Go(func() error {
			return s.Supervisor.Run(gctx)
		})
	}
	g.Go(func() error {
		if s.Supervisor != nil {
			defer s.Supervisor.Finish()
		}
		return s.Pump.Run(gctx)
	})

	err := g.Wait()
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
