package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tracker renders a spinner with a running snapshot count while a long
// scan is in flight. All methods are safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	out     io.Writer
	message string
	total   int
	done    int
	flagged int
	started time.Time
	stop    chan struct{}
	stopped sync.WaitGroup
}

// Start begins rendering to stderr. total may be zero when unknown.
func Start(total int, message string) *Tracker {
	t := &Tracker{
		out:     os.Stderr,
		message: message,
		total:   total,
		started: time.Now(),
		stop:    make(chan struct{}),
	}
	t.stopped.Add(1)
	go t.loop()
	return t
}

func (t *Tracker) loop() {
	defer t.stopped.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-t.stop:
			t.mu.Lock()
			elapsed := time.Since(t.started).Round(time.Millisecond)
			if t.flagged > 0 {
				fmt.Fprintf(t.out, "\r✗ %s: %d of %d snapshots flagged (%s)\n",
					t.message, t.flagged, t.done, elapsed)
			} else {
				fmt.Fprintf(t.out, "\r✓ %s: %d snapshots (%s)          \n",
					t.message, t.done, elapsed)
			}
			t.mu.Unlock()
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.total > 0 {
				fmt.Fprintf(t.out, "\r%s %s [%d/%d]  ",
					spinnerFrames[frame%len(spinnerFrames)], t.message, t.done, t.total)
			} else {
				fmt.Fprintf(t.out, "\r%s %s [%d]  ",
					spinnerFrames[frame%len(spinnerFrames)], t.message, t.done)
			}
			t.mu.Unlock()
			frame++
		}
	}
}

// Step records one processed snapshot; flagged marks it as a problem.
func (t *Tracker) Step(flagged bool) {
	t.mu.Lock()
	t.done++
	if flagged {
		t.flagged++
	}
	t.mu.Unlock()
}

// Finish stops rendering and prints the summary line.
func (t *Tracker) Finish() {
	close(t.stop)
	t.stopped.Wait()
}
