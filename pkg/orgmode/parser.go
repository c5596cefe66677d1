package orgmode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|STARTED|WAITING|DONE)(?:\s+|$)(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})(?:\s+[A-Za-z]{3})?(?:\s+\d{2}:\d{2})?>`)
)

var keywordStatus = map[string]model.Status{
	"TODO":    model.StatusAccepted,
	"STARTED": model.StatusInProgress,
	"WAITING": model.StatusOnHold,
	"DONE":    model.StatusClosedResolved,
}

var cookiePriority = map[string]model.Priority{
	"A": model.PriorityHigh,
	"B": model.PriorityMedium,
	"C": model.PriorityLow,
}

type entry struct {
	name     string
	status   model.Status
	priority model.Priority
	tags     []string
	deadline time.Time
	body     []string
	line     int
}

func (e *entry) task() (*model.Task, error) {
	opts := []model.Option{
		model.WithStatus(e.status),
		model.WithPriority(e.priority),
		model.WithTags(e.tags...),
		model.WithDue(e.deadline),
	}
	if body := strings.TrimSpace(strings.Join(e.body, "\n")); body != "" {
		opts = append(opts, model.WithDescription(body))
	}
	return model.NewTask(e.name, opts...)
}

// parseFile parses an Org-mode file and returns its tasks.
func parseFile(filePath string) ([]*model.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, filePath)
}

// ParseFiles parses multiple Org-mode files and returns their tasks in file order.
func ParseFiles(filePaths []string) ([]*model.Task, error) {
	var allTasks []*model.Task
	for _, filePath := range filePaths {
		tasks, err := parseFile(filePath)
		if err != nil {
			return nil, err
		}
		allTasks = append(allTasks, tasks...)
	}
	return allTasks, nil
}

// Parse reads TODO, STARTED, WAITING and DONE headlines from r. A DEADLINE
// line under a headline becomes the due date; other lines up to the next
// headline become the description. Property drawers are skipped.
func Parse(r io.Reader, source string) ([]*model.Task, error) {
	scanner := bufio.NewScanner(r)
	var tasks []*model.Task
	var current *entry
	inDrawer := false
	lineNo := 0

	flush := func() error {
		if current == nil {
			return nil
		}
		t, err := current.task()
		if err != nil {
			return fmt.Errorf("%s:%d: %w", source, current.line, err)
		}
		tasks = append(tasks, t)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "*") && strings.HasPrefix(strings.TrimLeft(line, "*"), " ") {
			if err := flush(); err != nil {
				return nil, err
			}
			inDrawer = false
			matches := headlineRegex.FindStringSubmatch(line)
			if matches == nil {
				continue
			}
			current = &entry{
				name:     strings.TrimSpace(matches[3]),
				status:   keywordStatus[matches[1]],
				priority: model.PriorityMedium,
				line:     lineNo,
			}
			if p, ok := cookiePriority[matches[2]]; ok {
				current.priority = p
			}
			if matches[4] != "" {
				current.tags = strings.Split(strings.Trim(matches[4], ":"), ":")
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case line == ":PROPERTIES:" || line == ":LOGBOOK:":
			inDrawer = true
		case line == ":END:":
			inDrawer = false
		case inDrawer:
		case deadlineRegex.MatchString(line):
			matches := deadlineRegex.FindStringSubmatch(line)
			deadline, err := time.ParseInLocation("2006-01-02", matches[1], time.Local)
			if err == nil {
				current.deadline = deadline
			}
		default:
			current.body = append(current.body, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tasks, nil
}
