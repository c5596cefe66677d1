package colors

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

var (
	CriticalColor = lipgloss.Color("#F87171") // Red
	HighColor     = lipgloss.Color("#FB923C") // Orange
	MediumColor   = lipgloss.Color("#FBBF24") // Yellow
	LowColor      = lipgloss.Color("#60A5FA") // Blue
	ActiveColor   = lipgloss.Color("#10B981") // Green
	WaitingColor  = lipgloss.Color("#A78BFA") // Purple
	MutedColor    = lipgloss.Color("#9CA3AF") // Gray
)

var priorityStyles = map[model.Priority]lipgloss.Style{
	model.PriorityCritical: lipgloss.NewStyle().Bold(true).Foreground(CriticalColor),
	model.PriorityHigh:     lipgloss.NewStyle().Foreground(HighColor),
	model.PriorityMedium:   lipgloss.NewStyle().Foreground(MediumColor),
	model.PriorityLow:      lipgloss.NewStyle().Foreground(LowColor),
}

var statusStyles = map[model.Status]lipgloss.Style{
	model.StatusAccepted:         lipgloss.NewStyle(),
	model.StatusInProgress:       lipgloss.NewStyle().Foreground(ActiveColor),
	model.StatusOnHold:           lipgloss.NewStyle().Foreground(WaitingColor),
	model.StatusPendingReview:    lipgloss.NewStyle().Foreground(WaitingColor).Italic(true),
	model.StatusClosedResolved:   lipgloss.NewStyle().Foreground(MutedColor),
	model.StatusClosedUnresolved: lipgloss.NewStyle().Foreground(MutedColor).Strikethrough(true),
}

// Google Calendar event colour IDs (1 Lavender .. 11 Tomato).
var calendarColorIDs = map[model.Priority]string{
	model.PriorityCritical: "11", // Tomato
	model.PriorityHigh:     "6",  // Tangerine
	model.PriorityMedium:   "5",  // Banana
	model.PriorityLow:      "9",  // Blueberry
}

const closedCalendarColorID = "8" // Graphite

// Palette renders task attributes for the terminal. With Enabled false every
// method returns its input unstyled.
type Palette struct {
	Enabled bool
}

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.Enabled {
		return s
	}
	return style.Render(s)
}

func (p Palette) Priority(pr model.Priority) string {
	return p.render(priorityStyles[pr], pr.String())
}

func (p Palette) Status(s model.Status) string {
	return p.render(statusStyles[s], s.String())
}

func (p Palette) Muted(s string) string {
	return p.render(lipgloss.NewStyle().Foreground(MutedColor), s)
}

// Task renders one aligned row: priority, status, kind, name.
func (p Palette) Task(t *model.Task) string {
	status := t.Status()
	name := t.Name()
	if status.IsClosed() {
		name = p.Muted(name)
	}
	return fmt.Sprintf("%s %s %s %s",
		p.render(priorityStyles[t.Priority()], fmt.Sprintf("%-8s", t.Priority())),
		p.render(statusStyles[status], fmt.Sprintf("%-17s", status)),
		p.Muted(fmt.Sprintf("%-13s", t.Kind())),
		name,
	)
}

// CalendarColorID picks the Google Calendar colour for a task: graphite once
// closed, otherwise by priority.
func CalendarColorID(t *model.Task) string {
	if t.Status().IsClosed() {
		return closedCalendarColorID
	}
	if id, ok := calendarColorIDs[t.Priority()]; ok {
		return id
	}
	return "1"
}
