package timedata

import "strconv"

// Project is a Clockify project as returned by the projects listing endpoint.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	WorkspaceID string `json:"workspaceId,omitempty" yaml:"workspaceId,omitempty"`
	ClientName  string `json:"clientName,omitempty" yaml:"clientName,omitempty"`
	Billable    bool   `json:"billable" yaml:"billable"`
	Archived    bool   `json:"archived" yaml:"archived"`
}

// Task belongs to exactly one project.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ProjectID string `json:"projectId" yaml:"projectId"`
	Status    string `json:"status,omitempty" yaml:"status,omitempty"`
}

// TimeInterval holds ISO-8601 values. End and Duration are nil while a timer is running.
type TimeInterval struct {
	Start    string  `json:"start" yaml:"start"`
	End      *string `json:"end" yaml:"end"`
	Duration *string `json:"duration" yaml:"duration"`
}

// TimeEntry is the raw time entry record in the Clockify API shape.
type TimeEntry struct {
	ID           string       `json:"id" yaml:"id"`
	Description  string       `json:"description" yaml:"description"`
	TaskID       *string      `json:"taskId" yaml:"taskId"`
	ProjectID    *string      `json:"projectId" yaml:"projectId"`
	UserID       string       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Billable     bool         `json:"billable" yaml:"billable"`
	TimeInterval TimeInterval `json:"timeInterval" yaml:"timeInterval"`
	WorkspaceID  string       `json:"workspaceId" yaml:"workspaceId"`
	IsLocked     bool         `json:"isLocked" yaml:"isLocked"`
}

// User is the owner of the API key.
type User struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ActiveWorkspace  string `json:"activeWorkspace"`
	DefaultWorkspace string `json:"defaultWorkspace"`
}

// NormalizedEntry is the flattened projection of a TimeEntry with names
// resolved and the interval split into UTC date and time fields.
type NormalizedEntry struct {
	TaskID          string `json:"task_id" yaml:"task_id"`
	TaskName        string `json:"task_name" yaml:"task_name"`
	ProjectID       string `json:"project_id" yaml:"project_id"`
	ProjectName     string `json:"project_name" yaml:"project_name"`
	Description     string `json:"description" yaml:"description"`
	StartDateUTC    string `json:"start_date_utc" yaml:"start_date_utc"`
	StartTimeUTC    string `json:"start_time_utc" yaml:"start_time_utc"`
	EndDateUTC      string `json:"end_date_utc" yaml:"end_date_utc"`
	EndTimeUTC      string `json:"end_time_utc" yaml:"end_time_utc"`
	DurationSeconds int64  `json:"duration_seconds" yaml:"duration_seconds"`
}

// NormalizedColumns is the fixed tabular header, in field order.
var NormalizedColumns = []string{
	"task_id",
	"task_name",
	"project_id",
	"project_name",
	"description",
	"start_date_utc",
	"start_time_utc",
	"end_date_utc",
	"end_time_utc",
	"duration_seconds",
}

// Row returns the entry's values in NormalizedColumns order.
func (e NormalizedEntry) Row() []string {
	return []string{
		e.TaskID,
		e.TaskName,
		e.ProjectID,
		e.ProjectName,
		e.Description,
		e.StartDateUTC,
		e.StartTimeUTC,
		e.EndDateUTC,
		e.EndTimeUTC,
		strconv.FormatInt(e.DurationSeconds, 10),
	}
}

// Value returns the string pointed to by p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
