package taskwarrior

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/harrisonrobin/taskmgr/pkg/model"
)

type Client struct {
	// Binary is the taskwarrior executable, "task" unless overridden.
	Binary string
}

func NewClient() *Client {
	return &Client{Binary: "task"}
}

// GetTasks runs `task <filter> export` and parses its output.
func (c *Client) GetTasks(filter []string) ([]Task, error) {
	args := append(append([]string(nil), filter...), "export", "rc.hooks=0")
	cmd := exec.Command(c.Binary, args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}
	return c.ParseTasks(bytes.NewReader(output))
}

// ParseTask parses a single task JSON from an io.Reader
func (c *Client) ParseTask(r io.Reader) (Task, error) {
	var task Task
	if err := json.NewDecoder(r).Decode(&task); err != nil {
		return Task{}, fmt.Errorf("failed to decode task json: %w", err)
	}
	return task, nil
}

// ParseTasks accepts both shapes taskwarrior produces: a JSON array from
// `task export`, or one object per line as handed to hooks.
func (c *Client) ParseTasks(r io.Reader) ([]Task, error) {
	var tasks []Task
	decoder := json.NewDecoder(r)
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '[' {
			var batch []Task
			if err := json.Unmarshal(raw, &batch); err != nil {
				return nil, fmt.Errorf("failed to decode task json: %w", err)
			}
			tasks = append(tasks, batch...)
			continue
		}
		var task Task
		if err := json.Unmarshal(raw, &task); err != nil {
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ReadTasks parses r and converts every entry to a model task.
func (c *Client) ReadTasks(r io.Reader) ([]*model.Task, error) {
	twTasks, err := c.ParseTasks(r)
	if err != nil {
		return nil, err
	}
	return convert(twTasks)
}

// Export fetches tasks from the local taskwarrior database as model tasks.
func (c *Client) Export(filter []string) ([]*model.Task, error) {
	twTasks, err := c.GetTasks(filter)
	if err != nil {
		return nil, err
	}
	return convert(twTasks)
}

// convert skips recurring templates; their pending instances share the
// template's description and stand for the actual work.
func convert(twTasks []Task) ([]*model.Task, error) {
	tasks := make([]*model.Task, 0, len(twTasks))
	for _, tw := range twTasks {
		if tw.Status == RECURRING {
			continue
		}
		t, err := tw.ToModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
