package stream

import (
	"context"
	"time"
)

// Reveal produces a growing prefix of text, one rune per tick, for the
// typewriter effect on AI answers. It is pacing only: the content is
// complete before the first emission. The channel closes after the full
// text or as soon as ctx is canceled, so a changed answer just cancels
// and restarts.
func Reveal(ctx context.Context, text string, interval time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		runes := []rune(text)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 1; i <= len(runes); i++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- string(runes[:i]):
			}
		}
	}()
	return out
}
