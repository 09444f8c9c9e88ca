// Package tasks provides the task source: it scans a folder of markdown
// notes for open checkbox tasks, filters them to a rolling near-term window,
// and detects completion of a linked task when its document changes.
//
// Parsing is deliberately minimal: an open checkbox, its display text, and an
// optional due-date token are the only fields this system needs to link a
// session to a task.
package tasks

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Window is the rolling near-term horizon: tasks due within this span (or
// overdue) are offered by the picker.
const Window = 7 * 24 * time.Hour

var (
	openTaskRe    = regexp.MustCompile(`^\s*[-*] \[ \] (.+)$`)
	checkedTaskRe = regexp.MustCompile(`^\s*[-*] \[[xX]\] (.+)$`)
	dueDateRe     = regexp.MustCompile(`\s*📅\s*(\d{4}-\d{2}-\d{2})`)
)

// Task is a candidate for linking to a focus session.
type Task struct {
	// Name is the display text, with the due-date token stripped
	Name string
	// Path is the source document, relative to the scan root. A lookup key
	// only; the document itself is never held.
	Path string
	// Due is the effective date parsed from the due-date token
	Due time.Time
}

// Scan walks the folder rooted at root for markdown files and returns the
// open tasks due within the near-term window (overdue included), sorted by
// effective date, then by path.
func Scan(root string, now time.Time) ([]Task, error) {
	horizon := now.Add(Window)

	var found []Task
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		fileTasks, err := scanFile(path, rel)
		if err != nil {
			return err
		}
		for _, t := range fileTasks {
			if t.Due.IsZero() || t.Due.After(horizon) {
				continue
			}
			found = append(found, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tasks folder: %w", err)
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].Due.Equal(found[j].Due) {
			return found[i].Due.Before(found[j].Due)
		}
		return found[i].Path < found[j].Path
	})
	return found, nil
}

// scanFile extracts open checkbox tasks from a single markdown file.
func scanFile(path, rel string) ([]Task, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var found []Task
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m := openTaskRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		name, due := splitDueDate(m[1])
		if name == "" {
			continue
		}
		found = append(found, Task{Name: name, Path: rel, Due: due})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// splitDueDate strips the due-date token from a task's text and parses it.
// Returns a zero time when no (valid) token is present.
func splitDueDate(text string) (string, time.Time) {
	m := dueDateRe.FindStringSubmatch(text)
	if m == nil {
		return strings.TrimSpace(text), time.Time{}
	}
	due, err := time.ParseInLocation("2006-01-02", m[1], time.Local)
	if err != nil {
		return strings.TrimSpace(text), time.Time{}
	}
	name := strings.TrimSpace(dueDateRe.ReplaceAllString(text, " "))
	name = strings.Join(strings.Fields(name), " ")
	return name, due
}

// Checker answers "is this linked task now complete" by re-reading the
// task's source document under the scan root.
type Checker struct {
	root string
}

// NewChecker creates a Checker resolving task paths against root.
func NewChecker(root string) *Checker {
	return &Checker{root: root}
}

// TaskComplete reports whether the document at the task's path now carries
// the task's text on a checked line. Read failures report false; an
// unreadable document proves nothing about completion.
func (c *Checker) TaskComplete(path, name string) bool {
	file, err := os.Open(filepath.Join(c.root, path))
	if err != nil {
		return false
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m := checkedTaskRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		text, _ := splitDueDate(m[1])
		if text == name {
			return true
		}
	}
	return false
}
