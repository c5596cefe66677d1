package agenda

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

func TestEventNeedsUpdate(t *testing.T) {
	base := func() *calendar.Event {
		return &calendar.Event{
			Summary:     "Task",
			Description: "Status: Accepted\n",
			ColorId:     "5",
			Start:       &calendar.EventDateTime{DateTime: "2024-05-01T09:00:00Z"},
			End:         &calendar.EventDateTime{DateTime: "2024-05-01T09:30:00Z"},
		}
	}

	patch, err := EventNeedsUpdate(base(), base())
	if err != nil || patch != nil {
		t.Fatalf("Expected no patch for equal events, got %v, %v", patch, err)
	}

	// Same instant in another zone is not a change.
	shifted := base()
	shifted.Start.DateTime = "2024-05-01T11:00:00+02:00"
	if patch, err := EventNeedsUpdate(base(), shifted); err != nil || patch != nil {
		t.Errorf("Expected equal instants to match, got %v, %v", patch, err)
	}

	target := base()
	target.Summary = "! Task"
	target.ColorId = "11"
	patch, err = EventNeedsUpdate(base(), target)
	if err != nil {
		t.Fatalf("EventNeedsUpdate failed: %v", err)
	}
	if patch == nil || patch.Summary != "! Task" || patch.ColorId != "11" {
		t.Fatalf("Unexpected patch %+v", patch)
	}
	if patch.Description != "" || patch.Start != nil {
		t.Errorf("Patch should only carry changed fields, got %+v", patch)
	}

	allDay := base()
	allDay.Start = &calendar.EventDateTime{Date: "2024-05-01"}
	allDay.End = &calendar.EventDateTime{Date: "2024-05-02"}
	patch, err = EventNeedsUpdate(base(), allDay)
	if err != nil || patch == nil || patch.Start.Date != "2024-05-01" {
		t.Errorf("Expected timing patch, got %+v, %v", patch, err)
	}

	bad := base()
	bad.Start.DateTime = "yesterday"
	if _, err := EventNeedsUpdate(bad, base()); err == nil {
		t.Error("Expected error for unparsable time")
	}
}

func TestChanged(t *testing.T) {
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	c := fixedConverter(due.Add(-time.Hour))

	a := model.MustTask("a", model.WithDue(due))
	b := model.MustTask("b", model.WithDue(due))
	previous, err := c.Events([]*model.Task{a, b})
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if err := b.SetStatus(model.StatusClosedResolved); err != nil {
		t.Fatal(err)
	}
	current, err := c.Events([]*model.Task{a, b, model.MustTask("c", model.WithDue(due))})
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	changed, err := Changed(previous, current)
	if err != nil {
		t.Fatalf("Changed failed: %v", err)
	}
	var names []string
	for _, e := range changed {
		name, _ := TaskName(e)
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "b" || names[1] != "c" {
		t.Errorf("Expected [b c] changed, got %v", names)
	}

	if _, err := Changed(append(previous, previous[0]), current); err == nil {
		t.Error("Expected error for repeated previous task")
	}
	if _, err := Changed([]*calendar.Event{{Summary: "foreign"}}, current); err == nil {
		t.Error("Expected error for event without task name")
	}
}
