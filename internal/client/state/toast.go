package state

import "sync"

// Severity tags a toast message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityInfo, SeverityWarning:
		return true
	}
	return false
}

// ToastState is the single toast slot.
type ToastState struct {
	Message  string
	Severity Severity
	Visible  bool
}

// Toast holds at most one message; a new one replaces the current one.
type Toast struct {
	mu    sync.Mutex
	state ToastState
	subs  listeners[ToastState]
}

// NewToast returns a hidden toast.
func NewToast() *Toast {
	return &Toast{state: ToastState{Severity: SeverityInfo}}
}

// Show displays message, replacing whatever is shown. Unknown severities
// fall back to info.
func (t *Toast) Show(message string, severity Severity) {
	if !severity.Valid() {
		severity = SeverityInfo
	}
	t.set(func(s *ToastState) {
		*s = ToastState{Message: message, Severity: severity, Visible: true}
	})
}

// Hide hides the current message. The message text is kept.
func (t *Toast) Hide() {
	t.set(func(s *ToastState) { s.Visible = false })
}

// Snapshot returns the current toast.
func (t *Toast) Snapshot() ToastState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe registers fn to receive every new state.
func (t *Toast) Subscribe(fn func(ToastState)) (unsubscribe func()) {
	return t.subs.add(fn)
}

func (t *Toast) set(mutate func(*ToastState)) {
	t.mu.Lock()
	mutate(&t.state)
	snap := t.state
	seq := t.subs.stamp()
	t.mu.Unlock()
	t.subs.notify(seq, snap)
}
