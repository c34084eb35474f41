package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"clockdump/clockify"
	"clockdump/fetcher"
	"clockdump/importer"
)

type fakeClockify struct {
	mu       sync.Mutex
	requests map[string]int
	entries  []string
}

func newFakeClockify(entries ...string) *fakeClockify {
	return &fakeClockify{requests: map[string]int{}, entries: entries}
}

func (f *fakeClockify) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *fakeClockify) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.requests {
		total += n
	}
	return total
}

func (f *fakeClockify) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests[r.URL.Path]++
	f.mu.Unlock()

	if r.Header.Get("X-Api-Key") != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/user":
		_, _ = w.Write([]byte(`{"id":"u1","name":"Jane","activeWorkspace":"ws1"}`))
	case "/workspaces/ws1/projects":
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Website"}]`))
	case "/workspaces/ws1/projects/p1/tasks":
		_, _ = w.Write([]byte(`[{"id":"t1","name":"Design","projectId":"p1"}]`))
	case "/workspaces/ws1/user/u1/time-entries":
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			_, _ = fmt.Fprintf(w, "[%s,%s]", f.entries[0], f.entries[1])
		case "2":
			_, _ = fmt.Fprintf(w, "[%s]", f.entries[2])
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func timeEntryJSON(id, description, start, end, duration string) string {
	return fmt.Sprintf(`{"id":%q,"description":%q,"taskId":"t1","projectId":"p1","billable":true,`+
		`"timeInterval":{"start":%q,"end":%q,"duration":%q},"workspaceId":"ws1","isLocked":false}`,
		id, description, start, end, duration)
}

func newTestClient(t *testing.T, baseURL string) clockify.Client {
	t.Helper()
	client, err := clockify.NewClient(clockify.ClientConfig{BaseURL: baseURL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func intPtr(v int) *int {
	return &v
}

func testFetchOptions(dir string) fetchOptions {
	return fetchOptions{
		PageSize:       2,
		ProjectsOutput: filepath.Join(dir, "projects.json"),
		TasksOutput:    filepath.Join(dir, "tasks.json"),
		EntriesOutput:  filepath.Join(dir, "data.json"),
	}
}

func TestRunFetchStopsAtShortPageAndWritesFiles(t *testing.T) {
	fake := newFakeClockify(
		timeEntryJSON("e1", "Mockups", "2020-11-14T19:13:35Z", "2020-11-14T19:20:31Z", "PT6M56S"),
		timeEntryJSON("e2", "Review", "2020-11-15T08:00:00Z", "2020-11-15T09:00:00Z", "PT1H"),
		timeEntryJSON("e3", "Fixes", "2020-11-16T10:00:00Z", "2020-11-16T10:30:00Z", "PT30M"),
	)
	server := httptest.NewServer(fake)
	defer server.Close()

	dir := t.TempDir()
	opts := testFetchOptions(dir)
	opts.Pages = intPtr(5)

	result, err := runFetch(context.Background(), newTestClient(t, server.URL), opts)
	if err != nil {
		t.Fatalf("runFetch returned error: %v", err)
	}

	if got := fake.count("/workspaces/ws1/user/u1/time-entries"); got != 2 {
		t.Fatalf("expected 2 time entry requests, got %d", got)
	}
	if result.PagesPlanned != 5 {
		t.Fatalf("expected 5 planned pages, got %d", result.PagesPlanned)
	}
	if result.Requests != fake.total() {
		t.Fatalf("expected reported requests %d to match server count %d", result.Requests, fake.total())
	}

	entries, err := importer.ReadTimeEntries(opts.EntriesOutput)
	if err != nil {
		t.Fatalf("read entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries on disk, got %d", len(entries))
	}
	if entries[0].ID != "e1" || entries[2].ID != "e3" {
		t.Fatalf("unexpected entry order: %s, %s", entries[0].ID, entries[2].ID)
	}

	projects, err := importer.ReadProjects(opts.ProjectsOutput)
	if err != nil {
		t.Fatalf("read projects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Website" {
		t.Fatalf("unexpected projects: %+v", projects)
	}

	tasks, err := importer.ReadTasks(opts.TasksOutput)
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ProjectID != "p1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestRunFetchRejectsInvalidTargetBeforeAnyRequest(t *testing.T) {
	tests := []struct {
		name    string
		pages   *int
		entries *int
		wantErr error
	}{
		{name: "both set", pages: intPtr(1), entries: intPtr(10), wantErr: fetcher.ErrTargetConflict},
		{name: "neither set", wantErr: fetcher.ErrTargetMissing},
		{name: "zero pages", pages: intPtr(0), wantErr: fetcher.ErrNonPositiveTarget},
		{name: "negative entries", entries: intPtr(-3), wantErr: fetcher.ErrNonPositiveTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeClockify()
			server := httptest.NewServer(fake)
			defer server.Close()

			opts := testFetchOptions(t.TempDir())
			opts.Pages = tt.pages
			opts.Entries = tt.entries

			_, err := runFetch(context.Background(), newTestClient(t, server.URL), opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if fake.total() != 0 {
				t.Fatalf("expected no requests, got %d", fake.total())
			}
		})
	}
}

func TestRunFetchAbortsOnUpstreamError(t *testing.T) {
	fake := newFakeClockify()
	server := httptest.NewServer(fake)
	defer server.Close()

	client, err := clockify.NewClient(clockify.ClientConfig{BaseURL: server.URL, APIKey: "wrong"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	opts := testFetchOptions(t.TempDir())
	opts.Entries = intPtr(10)

	_, err = runFetch(context.Background(), client, opts)
	var statusErr *clockify.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", statusErr.StatusCode)
	}
	if _, err := importer.ReadTimeEntries(opts.EntriesOutput); err == nil {
		t.Fatalf("expected no entries file after failed fetch")
	}
}
