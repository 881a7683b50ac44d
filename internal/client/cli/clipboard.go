package cli

import (
	"time"

	"github.com/atotto/clipboard"
)

// Seams over the system clipboard and timer.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
	afterFunc      = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
)

// copyWithAutoClear puts secret on the clipboard and schedules a clear after
// delay. The clipboard is left alone if it no longer holds secret. The
// returned channel is closed once the timer has fired; a zero delay disables
// clearing and returns a closed channel.
func copyWithAutoClear(secret string, delay time.Duration) (<-chan struct{}, error) {
	done := make(chan struct{})
	if err := writeClipboard(secret); err != nil {
		return nil, err
	}
	if delay <= 0 {
		close(done)
		return done, nil
	}
	afterFunc(delay, func() {
		defer close(done)
		current, err := readClipboard()
		if err != nil || current != secret {
			return
		}
		_ = writeClipboard("")
	})
	return done, nil
}
