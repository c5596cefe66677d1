package model

import (
	"fmt"
	"strings"
)

// Priority ranks how urgent a task is.
type Priority int

const (
	PriorityCritical Priority = iota + 1
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityCritical: "Critical",
	PriorityHigh:     "High",
	PriorityMedium:   "Medium",
	PriorityLow:      "Low",
}

// Priorities returns every priority, most urgent first.
func Priorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ParsePriority matches s against the priority names, ignoring case.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if normalize(s) == normalize(p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: priority %q", ErrInvalidValue, s)
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: priority %d", ErrInvalidValue, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Status is where a task sits in its lifecycle.
type Status int

const (
	StatusAccepted Status = iota + 1
	StatusInProgress
	StatusOnHold
	StatusPendingReview
	StatusClosedResolved
	StatusClosedUnresolved
)

var statusNames = map[Status]string{
	StatusAccepted:         "Accepted",
	StatusInProgress:       "In Progress",
	StatusOnHold:           "On Hold",
	StatusPendingReview:    "Pending Review",
	StatusClosedResolved:   "Closed-Resolved",
	StatusClosedUnresolved: "Closed-Unresolved",
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusAccepted, StatusInProgress, StatusOnHold,
		StatusPendingReview, StatusClosedResolved, StatusClosedUnresolved,
	}
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsClosed reports whether no further work is expected on the task.
func (s Status) IsClosed() bool {
	return s == StatusClosedResolved || s == StatusClosedUnresolved
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus accepts the display names in any case, with spaces, dashes or
// underscores as separators ("in progress", "IN_PROGRESS", "closed-resolved").
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if normalize(s) == normalize(st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: status %q", ErrInvalidValue, s)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidValue, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Kind classifies the work a task represents.
type Kind int

const (
	KindFeature Kind = iota + 1
	KindBugFix
	KindRefactor
	KindDocumentation
	KindTest
)

var kindNames = map[Kind]string{
	KindFeature:       "Feature",
	KindBugFix:        "BugFix",
	KindRefactor:      "Refactor",
	KindDocumentation: "Documentation",
	KindTest:          "Test",
}

func Kinds() []Kind {
	return []Kind{KindFeature, KindBugFix, KindRefactor, KindDocumentation, KindTest}
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind matches s against the kind names; "bug fix" and "bug-fix" parse as BugFix.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if normalize(s) == normalize(k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: kind %q", ErrInvalidValue, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidValue, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// normalize lowercases s and drops separators so that "In Progress",
// "in-progress" and "IN_PROGRESS" compare equal.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
