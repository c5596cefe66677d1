package colors

import (
	"strings"
	"testing"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

func TestPaletteDisabledIsPlain(t *testing.T) {
	p := Palette{}
	task := model.MustTask("Fix login", model.WithPriority(model.PriorityHigh), model.WithKind(model.KindBugFix))

	got := p.Task(task)
	want := "High     Accepted          BugFix        Fix login"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("Disabled palette must not emit escape codes")
	}
	if p.Priority(model.PriorityCritical) != "Critical" || p.Status(model.StatusOnHold) != "On Hold" {
		t.Error("Disabled palette should return the display names")
	}
}

func TestPaletteEnabledKeepsText(t *testing.T) {
	p := Palette{Enabled: true}
	task := model.MustTask("Ship it", model.WithStatus(model.StatusClosedResolved))
	if got := p.Task(task); !strings.Contains(got, "Ship it") || !strings.Contains(got, "Closed-Resolved") {
		t.Errorf("Rendered row lost its text: %q", got)
	}
}

func TestCalendarColorID(t *testing.T) {
	tests := []struct {
		task *model.Task
		want string
	}{
		{model.MustTask("a", model.WithPriority(model.PriorityCritical)), "11"},
		{model.MustTask("b", model.WithPriority(model.PriorityHigh)), "6"},
		{model.MustTask("c"), "5"},
		{model.MustTask("d", model.WithPriority(model.PriorityLow)), "9"},
		{model.MustTask("e", model.WithPriority(model.PriorityCritical), model.WithStatus(model.StatusClosedResolved)), "8"},
	}
	for _, tt := range tests {
		if got := CalendarColorID(tt.task); got != tt.want {
			t.Errorf("CalendarColorID(%s) = %s, want %s", tt.task, got, tt.want)
		}
	}
}
