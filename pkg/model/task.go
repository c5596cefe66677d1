package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

var (
	// ErrInvalidName is returned when a task name is empty or only whitespace.
	ErrInvalidName = errors.New("task name must not be blank")
	// ErrInvalidValue is returned for priority, status or kind values outside their vocabulary.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidDueDate is returned when a due date does not follow the M/D/YYYY layout.
	ErrInvalidDueDate = errors.New("invalid due date")
)

// DueDateLayout is how due dates are written back out. ParseDueDate also
// accepts the form without leading zeroes.
const DueDateLayout = "01/02/2006"

var dueDateRegex = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// Task represents one trackable unit of work. Tasks are identified by name.
// Only the status may change after construction; use SetStatus, which is
// safe to call while the task is shared between goroutines.
type Task struct {
	name        string
	priority    Priority
	kind        Kind
	description string
	due         time.Time
	project     string
	tags        []string

	mu     sync.RWMutex
	status Status
}

// Option configures a Task in NewTask.
type Option func(*Task) error

// NewTask builds a task named name. Priority defaults to Medium, status to
// Accepted and kind to Feature.
func NewTask(name string, opts ...Option) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	t := &Task{
		name:     name,
		priority: PriorityMedium,
		status:   StatusAccepted,
		kind:     KindFeature,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("task %q: %w", name, err)
		}
	}
	return t, nil
}

// MustTask is NewTask for literals known to be valid. It panics on error.
func MustTask(name string, opts ...Option) *Task {
	t, err := NewTask(name, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func WithPriority(p Priority) Option {
	return func(t *Task) error {
		if !p.Valid() {
			return fmt.Errorf("%w: priority %d", ErrInvalidValue, int(p))
		}
		t.priority = p
		return nil
	}
}

func WithStatus(s Status) Option {
	return func(t *Task) error {
		if !s.Valid() {
			return fmt.Errorf("%w: status %d", ErrInvalidValue, int(s))
		}
		t.status = s
		return nil
	}
}

func WithKind(k Kind) Option {
	return func(t *Task) error {
		if !k.Valid() {
			return fmt.Errorf("%w: kind %d", ErrInvalidValue, int(k))
		}
		t.kind = k
		return nil
	}
}

func WithDescription(desc string) Option {
	return func(t *Task) error {
		t.description = desc
		return nil
	}
}

// WithDue sets the due date. The zero time means no due date.
func WithDue(due time.Time) Option {
	return func(t *Task) error {
		t.due = due
		return nil
	}
}

func WithProject(project string) Option {
	return func(t *Task) error {
		t.project = project
		return nil
	}
}

func WithTags(tags ...string) Option {
	return func(t *Task) error {
		t.tags = append([]string(nil), tags...)
		return nil
	}
}

func (t *Task) Name() string { return t.name }
func (t *Task) Priority() Priority { return t.priority }
func (t *Task) Kind() Kind { return t.kind }
func (t *Task) Description() string { return t.description }
func (t *Task) Due() time.Time { return t.due }
func (t *Task) HasDue() bool { return !t.due.IsZero() }
func (t *Task) Project() string { return t.project }
func (t *Task) Tags() []string { return append([]string(nil), t.tags...) }
func (t *Task) Equal(other *Task) bool { return other != nil && t.name == other.name }

func (t *Task) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// SetStatus moves the task to s.
func (t *Task) SetStatus(s Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: status %d", ErrInvalidValue, int(s))
	}
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
	return nil
}

// Overdue reports whether the task is still open and its due date is before now.
func (t *Task) Overdue(now time.Time) bool {
	return t.HasDue() && !t.Status().IsClosed() && t.due.Before(now)
}

// String returns a short one-line form: `Fix login (High, In Progress)`.
func (t *Task) String() string {
	return fmt.Sprintf("%s (%s, %s)", t.name, t.priority, t.Status())
}

// GoString lists every attribute, for debugging output with %#v.
func (t *Task) GoString() string {
	due := ""
	if t.HasDue() {
		due = t.due.Format(DueDateLayout)
	}
	return fmt.Sprintf(`<Task: name=%q, priority=%s, status=%q, kind=%s, description=%q, due=%s>`,
		t.name, t.priority, t.Status(), t.kind, t.description, due)
}

// ParseDueDate parses a M/D/YYYY date such as "3/15/2025" or "03/15/2025".
// Two digit years and impossible dates like 02/30/2024 are rejected.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dueDateRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	d, err := time.ParseInLocation("1/2/2006", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return d, nil
}
