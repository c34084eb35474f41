package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clockdump/clockify"
	"clockdump/internal/logging"
	"clockdump/timedata"
)

type Request struct {
	Target   Target
	PageSize int
	// WorkspaceID overrides the active workspace of the API key owner.
	WorkspaceID string
}

type Result struct {
	User         timedata.User
	WorkspaceID  string
	PagesPlanned int
	Requests     int
	Projects     []timedata.Project
	Tasks        []timedata.Task
	Entries      []timedata.TimeEntry
}

type Service struct {
	client clockify.Client
	pacer  Pacer
}

func NewService(client clockify.Client, pacer Pacer) *Service {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	return &Service{client: client, pacer: pacer}
}

// Run fetches projects, tasks and time entries. Projects and tasks are paged
// to the end of data; time entries stop at the planned page count or at the
// first short page.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	pages, err := req.Target.Pages(req.PageSize)
	if err != nil {
		return nil, err
	}

	result := &Result{PagesPlanned: pages}

	if err := s.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	result.Requests++
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	result.User = user

	workspaceID := firstNonEmpty(req.WorkspaceID, user.ActiveWorkspace, user.DefaultWorkspace)
	if workspaceID == "" {
		return nil, errors.New("no workspace available: user has no active workspace and none was configured")
	}
	result.WorkspaceID = workspaceID
	logging.Info().Str("user", user.ID).Str("workspace", workspaceID).Stringer("target", req.Target).Int("pages", pages).Msg("starting fetch")

	projects, requests, err := collectPages(ctx, s.pacer, "projects", 0, req.PageSize,
		func(ctx context.Context, page clockify.Page) ([]timedata.Project, error) {
			return s.client.ListProjects(ctx, workspaceID, page)
		})
	result.Requests += requests
	if err != nil {
		return nil, err
	}
	result.Projects = projects

	result.Tasks = make([]timedata.Task, 0, len(projects))
	for _, project := range projects {
		projectID := project.ID
		tasks, requests, err := collectPages(ctx, s.pacer, "tasks", 0, req.PageSize,
			func(ctx context.Context, page clockify.Page) ([]timedata.Task, error) {
				return s.client.ListTasks(ctx, workspaceID, projectID, page)
			})
		result.Requests += requests
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", projectID, err)
		}
		result.Tasks = append(result.Tasks, tasks...)
	}

	entries, requests, err := collectPages(ctx, s.pacer, "time-entries", pages, req.PageSize,
		func(ctx context.Context, page clockify.Page) ([]timedata.TimeEntry, error) {
			return s.client.ListTimeEntries(ctx, workspaceID, user.ID, page)
		})
	result.Requests += requests
	if err != nil {
		return nil, err
	}
	result.Entries = entries

	return result, nil
}

// collectPages requests pages 1..maxPages (unbounded when maxPages is 0) and
// stops early at the first page holding fewer than pageSize records.
func collectPages[T any](
	ctx context.Context,
	pacer Pacer,
	endpoint string,
	maxPages int,
	pageSize int,
	fetch func(context.Context, clockify.Page) ([]T, error),
) ([]T, int, error) {
	out := make([]T, 0, pageSize)
	requests := 0
	for number := 1; maxPages == 0 || number <= maxPages; number++ {
		if err := pacer.Wait(ctx); err != nil {
			return nil, requests, err
		}
		requests++
		items, err := fetch(ctx, clockify.Page{Number: number, Size: pageSize})
		if err != nil {
			return nil, requests, fmt.Errorf("fetch %s page %d: %w", endpoint, number, err)
		}
		out = append(out, items...)
		logging.Debug().Str("endpoint", endpoint).Int("page", number).Int("records", len(items)).Msg("page fetched")

		if len(items) < pageSize {
			break
		}
	}
	return out, requests, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
