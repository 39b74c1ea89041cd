package resttimer

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidDuration = errors.New("rest duration must be positive")

// Run counts down d, calling onTick every tick with the time left, and once
// more with 0 when the rest is over. It returns ctx.Err() when cancelled.
func Run(ctx context.Context, d, tick time.Duration, onTick func(remaining time.Duration)) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	if tick <= 0 || tick > d {
		tick = d
	}
	if onTick == nil {
		onTick = func(time.Duration) {}
	}

	end := time.Now().Add(d)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	deadline := time.NewTimer(d)
	defer deadline.Stop()

	onTick(d)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			onTick(0)
			return nil
		case now := <-ticker.C:
			if remaining := end.Sub(now); remaining > 0 {
				onTick(remaining.Round(tick))
			}
		}
	}
}

// Split turns minutes and seconds input into a duration.
func Split(minutes, seconds int) time.Duration {
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}
