package notifier

import (
	"sync"
	"time"

	"github.com/example/espbot/pkg/models"
)

// DismissAfter is how long a popup stays up before auto-dismissing
const DismissAfter = 3 * time.Second

// Notifier holds at most one "currently showing" achievement popup. Showing a
// new one replaces the old and re-arms the auto-dismiss timer; the timer of a
// replaced popup is cancelled so it can never clear its successor.
type Notifier struct {
	mu      sync.Mutex
	current *models.Achievement
	timer   *time.Timer
	gen     int // guards against a fired timer of a replaced popup

	// OnChange, if set, is called with the new slot value (nil on dismiss)
	// after every change. Used by the presentation layer to redraw.
	OnChange func(*models.Achievement)
}

// New creates an empty notifier
func New() *Notifier {
	return &Notifier{}
}

// Show puts the achievement in the slot and starts the auto-dismiss timer
func (n *Notifier) Show(a models.Achievement) {
	n.mu.Lock()
	n.stopTimerLocked()
	shown := a
	n.current = &shown
	n.gen++
	gen := n.gen
	n.timer = time.AfterFunc(DismissAfter, func() {
		n.expire(gen)
	})
	onChange := n.OnChange
	n.mu.Unlock()

	if onChange != nil {
		onChange(&shown)
	}
}

// Dismiss clears the slot early and cancels the pending timer
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.stopTimerLocked()
	n.current = nil
	n.gen++
	onChange := n.OnChange
	n.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

// Current returns the achievement currently showing, or nil
func (n *Notifier) Current() *models.Achievement {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	shown := *n.current
	return &shown
}

// Stop cancels any pending timer; used at shutdown
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopTimerLocked()
}

func (n *Notifier) expire(gen int) {
	n.mu.Lock()
	if gen != n.gen {
		// A newer popup replaced this one before the timer fired
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	onChange := n.OnChange
	n.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

func (n *Notifier) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
