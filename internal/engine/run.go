package engine

import (
	"context"
	"time"
)

// Run ticks at fps until ctx is done, executing closures from inbox
// between ticks. A Stopped engine is started first. Tick errors do not
// end the loop. A closure that stops the engine makes Run return nil.
func (e *Engine) Run(ctx context.Context, fps int, inbox <-chan func()) error {
	if fps < 1 {
		fps = 1
	}
	if fps > 240 {
		fps = 240
	}
	if e.state == Stopped {
		if err := e.Start(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return ctx.Err()
		case fn, ok := <-inbox:
			if !ok {
				inbox = nil
				continue
			}
			fn()
			if e.state == Stopped {
				return nil
			}
		case <-ticker.C:
			// Tick logs its own failures.
			_ = e.Tick()
		}
	}
}
