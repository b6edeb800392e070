package feedview

import "sync"

// DefaultRevealStep is how many comments each reveal adds.
const DefaultRevealStep = 5

// RevealWindow is the growing prefix of an already-loaded collection shown
// under incremental scroll. The visible count only grows until an explicit
// Reset, and a reveal in flight suppresses further sentinel triggers.
type RevealWindow struct {
	mu        sync.Mutex
	step      int
	visible   int
	total     int
	revealing bool
}

func NewRevealWindow(step int) *RevealWindow {
	if step <= 0 {
		step = DefaultRevealStep
	}
	return &RevealWindow{step: step, visible: step}
}

// SetTotal records the current collection size.
func (w *RevealWindow) SetTotal(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n < 0 {
		n = 0
	}
	w.total = n
}

// Visible is the number of items currently shown, never exceeding the total.
func (w *RevealWindow) Visible() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visible > w.total {
		return w.total
	}
	return w.visible
}

// Total returns the recorded collection size.
func (w *RevealWindow) Total() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// HasMore reports whether items remain beyond the window.
func (w *RevealWindow) HasMore() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible < w.total
}

// OnSentinel is called when the sentinel enters the viewport. It reports
// whether a reveal was started; triggers while one is in flight, or when the
// window already covers the collection, are no-ops.
func (w *RevealWindow) OnSentinel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.revealing || w.visible >= w.total {
		return false
	}
	w.revealing = true
	return true
}

// Advance completes a reveal started by OnSentinel, extending the window by
// one step and re-arming the sentinel.
func (w *RevealWindow) Advance() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.revealing = false
	w.visible += w.step
	if w.visible > w.total {
		w.visible = w.total
	}
}

// Reset shrinks the window back to one step, e.g. when the parent collection
// changes. This is the only transition allowed to lower the visible count.
func (w *RevealWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = w.step
	w.revealing = false
}
