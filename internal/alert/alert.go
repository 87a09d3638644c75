package alert

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTTL is how long an untouched alert stays visible.
const DefaultTTL = 5000 * time.Millisecond

// Severity controls alert styling only.
type Severity int

const (
	// Info is the default severity.
	Info Severity = iota
	// Success marks a completed action.
	Success
	// Warning marks an expected, non-exceptional rejection.
	Warning
	// Danger marks a transport or server failure.
	Danger
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "info"
	}
}

// ParseSeverity maps a name to a severity.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return Info, nil
	case "success":
		return Success, nil
	case "warning":
		return Warning, nil
	case "danger":
		return Danger, nil
	default:
		return Info, fmt.Errorf("unknown severity %q", value)
	}
}

// Alert is a single dismissible notification.
type Alert struct {
	ID        int
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Sink receives alerts raised by controller operations.
type Sink interface {
	Show(message string, severity Severity)
}

// Stack holds visible alerts, newest first.
type Stack struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	nextID int
	alerts []Alert
}

// NewStack builds a stack with the given expiry and clock.
func NewStack(ttl time.Duration, now func() time.Time) *Stack {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Stack{ttl: ttl, now: now}
}

// TTL returns the expiry applied to new alerts.
func (s *Stack) TTL() time.Duration {
	return s.ttl
}

// Show implements Sink.
func (s *Stack) Show(message string, severity Severity) {
	s.Push(message, severity)
}

// Push inserts an alert as the first entry and returns its id.
func (s *Stack) Push(message string, severity Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry := Alert{
		ID:        s.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: s.now(),
	}
	s.alerts = append([]Alert{entry}, s.alerts...)
	return entry.ID
}

// Dismiss removes an alert by id and reports whether it was present.
func (s *Stack) Dismiss(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.alerts {
		if entry.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// DismissFirst removes the newest alert.
func (s *Stack) DismissFirst() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return false
	}
	s.alerts = s.alerts[1:]
	return true
}

// Expire drops alerts whose age reached the TTL and returns how many went.
func (s *Stack) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.alerts[:0]
	removed := 0
	for _, entry := range s.alerts {
		if now.Sub(entry.CreatedAt) >= s.ttl {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.alerts = kept
	return removed
}

// Alerts returns a copy of the visible alerts, newest first.
func (s *Stack) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Len returns the number of visible alerts.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

// WriterSink prints alerts as lines, for non-interactive commands.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// NewWriterSink builds a sink writing to w.
func NewWriterSink(w io.Writer, noColor bool) *WriterSink {
	return &WriterSink{w: w, noColor: noColor}
}

// Show implements Sink.
func (s *WriterSink) Show(message string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	label := "[" + severity.String() + "]"
	if !s.noColor {
		label = Style(severity).Render(label)
	}
	fmt.Fprintf(s.w, "%s %s\n", label, message)
}

// Style returns the foreground style for a severity.
func Style(severity Severity) lipgloss.Style {
	color := lipgloss.Color("39")
	switch severity {
	case Success:
		color = lipgloss.Color("42")
	case Warning:
		color = lipgloss.Color("220")
	case Danger:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}
