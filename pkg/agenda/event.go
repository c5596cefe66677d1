// Package agenda turns dated tasks into Google Calendar events. It builds
// the event values only; nothing here talks to the Calendar API.
package agenda

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskmgr/pkg/colors"
	"github.com/harrisonrobin/taskmgr/pkg/model"
)

// TaskNameProperty is the private extended property holding the task name.
const TaskNameProperty = "task_name"

// DefaultDuration is the event length for due dates that carry a time of day.
const DefaultDuration = 30 * time.Minute

var ErrNoDueDate = errors.New("task has no due date")

type Converter struct {
	Duration time.Duration
	Now      func() time.Time
}

func NewConverter(d time.Duration) *Converter {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Converter{Duration: d, Now: time.Now}
}

// ConvertTaskToCalendarEvent builds the event for task. A due date at
// midnight becomes an all-day event; any other time becomes a timed event of
// c.Duration.
func (c *Converter) ConvertTaskToCalendarEvent(task *model.Task) (*calendar.Event, error) {
	if task == nil {
		return nil, fmt.Errorf("could not convert nil Task")
	}
	if !task.HasDue() {
		return nil, fmt.Errorf("%w: %s", ErrNoDueDate, task.Name())
	}

	status := task.Status()
	prefix := ""
	switch {
	case status.IsClosed():
		prefix = "✓"
	case status == model.StatusInProgress:
		prefix = "‣"
	case task.Overdue(c.Now()):
		prefix = "!"
	}
	summary := task.Name()
	if prefix != "" {
		summary = fmt.Sprintf("%s %s", prefix, task.Name())
	}

	var desc strings.Builder
	if tags := task.Tags(); len(tags) > 0 {
		for _, tag := range tags {
			fmt.Fprintf(&desc, "#%s ", tag)
		}
		desc.WriteString("\n\n")
	}
	fmt.Fprintf(&desc, "Status: %s\n", status)
	fmt.Fprintf(&desc, "Priority: %s\n", task.Priority())
	fmt.Fprintf(&desc, "Kind: %s\n", task.Kind())
	if task.Project() != "" {
		fmt.Fprintf(&desc, "Project: %s\n", task.Project())
	}
	if task.Description() != "" {
		fmt.Fprintf(&desc, "\nNotes:\n%s\n", task.Description())
	}

	event := &calendar.Event{
		Summary:     summary,
		ColorId:     colors.CalendarColorID(task),
		Description: desc.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskNameProperty: task.Name(),
			},
		},
	}

	due := task.Due()
	if isMidnight(due) {
		event.Start = &calendar.EventDateTime{Date: due.Format("2006-01-02")}
		event.End = &calendar.EventDateTime{Date: due.AddDate(0, 0, 1).Format("2006-01-02")}
	} else {
		event.Start = &calendar.EventDateTime{DateTime: due.UTC().Format(time.RFC3339)}
		event.End = &calendar.EventDateTime{DateTime: due.Add(c.Duration).UTC().Format(time.RFC3339)}
	}
	return event, nil
}

// Events converts every dated task, keeping the input order.
func (c *Converter) Events(tasks []*model.Task) ([]*calendar.Event, error) {
	var events []*calendar.Event
	for _, t := range tasks {
		if !t.HasDue() {
			continue
		}
		e, err := c.ConvertTaskToCalendarEvent(t)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// TaskName returns the task name stored on an event built by this package.
func TaskName(event *calendar.Event) (string, bool) {
	if event == nil || event.ExtendedProperties == nil {
		return "", false
	}
	name, ok := event.ExtendedProperties.Private[TaskNameProperty]
	return name, ok
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}
