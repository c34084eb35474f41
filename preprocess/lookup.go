package preprocess

import (
	"errors"
	"fmt"

	"clockdump/timedata"
)

// ErrLookup matches every *LookupError.
var ErrLookup = errors.New("lookup failed")

type LookupKind string

const (
	LookupTask    LookupKind = "task"
	LookupProject LookupKind = "project"
)

// LookupError reports a time entry that references an id missing from the
// fetched projects or tasks, which points at stale or mismatched input files.
type LookupError struct {
	Kind    LookupKind
	ID      string
	EntryID string
}

func (e *LookupError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("%s id %q not found", e.Kind, e.ID)
	}
	return fmt.Sprintf("time entry %s: %s id %q not found", e.EntryID, e.Kind, e.ID)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// Lookup maps task and project ids to names. Duplicate ids keep the last name seen.
type Lookup struct {
	taskNames    map[string]string
	projectNames map[string]string
}

func BuildLookup(projects []timedata.Project, tasks []timedata.Task) Lookup {
	lookup := Lookup{
		taskNames:    make(map[string]string, len(tasks)),
		projectNames: make(map[string]string, len(projects)),
	}
	for _, project := range projects {
		lookup.projectNames[project.ID] = project.Name
	}
	for _, task := range tasks {
		lookup.taskNames[task.ID] = task.Name
	}
	return lookup
}

func (l Lookup) TaskName(id string) (string, error) {
	name, ok := l.taskNames[id]
	if !ok {
		return "", &LookupError{Kind: LookupTask, ID: id}
	}
	return name, nil
}

func (l Lookup) ProjectName(id string) (string, error) {
	name, ok := l.projectNames[id]
	if !ok {
		return "", &LookupError{Kind: LookupProject, ID: id}
	}
	return name, nil
}

func (l Lookup) Tasks() int {
	return len(l.taskNames)
}

func (l Lookup) Projects() int {
	return len(l.projectNames)
}
