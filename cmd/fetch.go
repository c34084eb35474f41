package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clockdump/clockify"
	"clockdump/config"
	"clockdump/fetcher"
	"clockdump/output"
)

const (
	defaultProjectsFile = "projects.json"
	defaultTasksFile    = "tasks.json"
	defaultEntriesFile  = "data.json"
)

var (
	fetchPages          int
	fetchEntries        int
	fetchAPIKey         string
	fetchProjectsOutput string
	fetchTasksOutput    string
	fetchEntriesOutput  string
	fetchDelay          time.Duration
	fetchPageSize       int
	fetchWorkspace      string
	fetchBaseURL        string
	fetchTimeout        time.Duration
)

type fetchOptions struct {
	Pages          *int
	Entries        *int
	PageSize       int
	WorkspaceID    string
	Delay          time.Duration
	ProjectsOutput string
	TasksOutput    string
	EntriesOutput  string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch projects, tasks and time entries from Clockify",
	Long: `Download projects, tasks and time entries of the API key owner and write each
collection to its own file.

Exactly one of --pages (exact page count) or --entries (minimum entry count,
rounded up to whole pages) selects how many time entry pages to request.
Fetching stops early when a page holds fewer records than the page size.
Projects and tasks are always fetched completely.

Consecutive API calls are spaced at least --delay apart to respect the
Clockify rate limit. Any HTTP or decoding error aborts the run.`,
	Example: `
  # Fetch 58 pages of 50 entries
  clockdump fetch --pages 58

  # Fetch at least 1000 entries from a specific workspace
  clockdump fetch --entries 1000 --workspace 5f2b0c3e1a2b3c4d5e6f7a8b

  # Write YAML files instead of JSON
  clockdump fetch --pages 2 --projects-output projects.yaml --tasks-output tasks.yaml --entries-output data.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fetchOptions{
			PageSize:       viper.GetInt(config.KeyFetchPageSize),
			WorkspaceID:    viper.GetString(config.KeyClockifyWorkspace),
			Delay:          viper.GetDuration(config.KeyFetchDelay),
			ProjectsOutput: fetchProjectsOutput,
			TasksOutput:    fetchTasksOutput,
			EntriesOutput:  fetchEntriesOutput,
		}
		if cmd.Flags().Changed("pages") {
			opts.Pages = &fetchPages
		}
		if cmd.Flags().Changed("entries") {
			opts.Entries = &fetchEntries
		}

		target, err := fetcher.ResolveTarget(opts.Pages, opts.Entries)
		if err != nil {
			return err
		}
		if _, err := target.Pages(opts.PageSize); err != nil {
			return err
		}

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		apiKey, source, err := config.ResolveAPIKey(
			config.ValueSource("flag --api-key", fetchAPIKey),
			config.EnvSource(config.EnvAPIKey, os.LookupEnv),
			config.ValueSource("config file", cfg.Clockify.APIKey),
		)
		if err != nil {
			return err
		}

		client, err := clockify.NewClient(clockify.ClientConfig{
			BaseURL:   cfg.Clockify.BaseURL,
			APIKey:    apiKey,
			UserAgent: "clockdump/1.0",
			Timeout:   cfg.Fetch.Timeout,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		result, err := runFetch(ctx, client, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Fetch completed. Workspace: %s, Requests: %d, API key from: %s\n", result.WorkspaceID, result.Requests, source)
		fmt.Printf("Projects: %d -> %s\n", len(result.Projects), opts.ProjectsOutput)
		fmt.Printf("Tasks: %d -> %s\n", len(result.Tasks), opts.TasksOutput)
		fmt.Printf("Time entries: %d (planned pages: %d) -> %s\n", len(result.Entries), result.PagesPlanned, opts.EntriesOutput)
		return nil
	},
}

// runFetch resolves the target before any request is made, runs the paced
// fetch and writes the three collections.
func runFetch(ctx context.Context, client clockify.Client, opts fetchOptions) (*fetcher.Result, error) {
	target, err := fetcher.ResolveTarget(opts.Pages, opts.Entries)
	if err != nil {
		return nil, err
	}

	service := fetcher.NewService(client, fetcher.NewPacer(opts.Delay))
	result, err := service.Run(ctx, fetcher.Request{
		Target:      target,
		PageSize:    opts.PageSize,
		WorkspaceID: opts.WorkspaceID,
	})
	if err != nil {
		return nil, err
	}

	if err := output.WriteStructured(opts.ProjectsOutput, result.Projects); err != nil {
		return nil, err
	}
	if err := output.WriteStructured(opts.TasksOutput, result.Tasks); err != nil {
		return nil, err
	}
	if err := output.WriteStructured(opts.EntriesOutput, result.Entries); err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVarP(&fetchPages, "pages", "n", 0, "Exact number of time entry pages to request")
	fetchCmd.Flags().IntVarP(&fetchEntries, "entries", "e", 0, "Minimum number of time entries to request (rounded up to whole pages)")
	fetchCmd.Flags().StringVar(&fetchAPIKey, "api-key", "", "Clockify API key (overrides $"+config.EnvAPIKey+" and the config file)")
	fetchCmd.Flags().StringVar(&fetchProjectsOutput, "projects-output", defaultProjectsFile, "Output file for projects (.json or .yaml)")
	fetchCmd.Flags().StringVar(&fetchTasksOutput, "tasks-output", defaultTasksFile, "Output file for tasks (.json or .yaml)")
	fetchCmd.Flags().StringVar(&fetchEntriesOutput, "entries-output", defaultEntriesFile, "Output file for time entries (.json or .yaml)")
	fetchCmd.Flags().DurationVar(&fetchDelay, "delay", config.DefaultDelay, "Minimum pause between consecutive API calls")
	fetchCmd.Flags().IntVar(&fetchPageSize, "page-size", config.DefaultPageSize, "Records per page (1-5000)")
	fetchCmd.Flags().StringVar(&fetchWorkspace, "workspace", "", "Workspace ID (default: active workspace of the API key owner)")
	fetchCmd.Flags().StringVar(&fetchBaseURL, "base-url", config.DefaultBaseURL, "Clockify API base URL")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", config.DefaultTimeout, "HTTP client timeout per request")

	fetchCmd.MarkFlagsMutuallyExclusive("pages", "entries")
	fetchCmd.MarkFlagsOneRequired("pages", "entries")

	_ = viper.BindPFlag(config.KeyFetchDelay, fetchCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag(config.KeyFetchPageSize, fetchCmd.Flags().Lookup("page-size"))
	_ = viper.BindPFlag(config.KeyClockifyWorkspace, fetchCmd.Flags().Lookup("workspace"))
	_ = viper.BindPFlag(config.KeyClockifyBaseURL, fetchCmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag(config.KeyFetchTimeout, fetchCmd.Flags().Lookup("timeout"))
}
