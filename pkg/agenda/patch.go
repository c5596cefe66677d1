package agenda

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskmgr/pkg/index"
)

// EventNeedsUpdate returns a patch event carrying the fields of target that
// differ from existing, or nil when the two agree.
func EventNeedsUpdate(existing, target *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}

	sameStart, err := sameTime(existing.Start, target.Start)
	if err != nil {
		return nil, err
	}
	sameEnd, err := sameTime(existing.End, target.End)
	if err != nil {
		return nil, err
	}
	if !sameStart || !sameEnd {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

// sameTime compares all-day dates as strings and timed events as instants.
func sameTime(a, b *calendar.EventDateTime) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	if a.Date != "" || b.Date != "" {
		return a.Date == b.Date && a.DateTime == b.DateTime, nil
	}
	at, err := time.Parse(time.RFC3339, a.DateTime)
	if err != nil {
		return false, err
	}
	bt, err := time.Parse(time.RFC3339, b.DateTime)
	if err != nil {
		return false, err
	}
	return at.Equal(bt), nil
}

// Changed returns the events of current that are missing from previous or
// differ from their previous version, keyed by task name.
func Changed(previous, current []*calendar.Event) ([]*calendar.Event, error) {
	names := make([]string, len(previous))
	for i, e := range previous {
		name, ok := TaskName(e)
		if !ok {
			return nil, fmt.Errorf("previous event %d has no %s property", i+1, TaskNameProperty)
		}
		names[i] = name
	}
	idx := index.NewNameIndex()
	if dups := idx.Build(names); len(dups) > 0 {
		return nil, fmt.Errorf("previous events repeat task %q", dups[0])
	}

	var changed []*calendar.Event
	for _, e := range current {
		name, _ := TaskName(e)
		pos, ok := idx.Get(name)
		if !ok {
			changed = append(changed, e)
			continue
		}
		patch, err := EventNeedsUpdate(previous[pos], e)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", name, err)
		}
		if patch != nil {
			changed = append(changed, e)
		}
	}
	return changed, nil
}
