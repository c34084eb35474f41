package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"clockdump/importer"
	"clockdump/internal/logging"
	"clockdump/output"
	"clockdump/preprocess"
	"clockdump/timedata"
)

const defaultPreprocessedFile = "preprocessed_data.json"

var errTableOverwritesOutput = errors.New("table output would overwrite the structured output")

var (
	preprocessProjects    string
	preprocessTasks       string
	preprocessEntries     string
	preprocessOutput      string
	preprocessTable       bool
	preprocessTableOutput string
	preprocessTableFormat string
)

type preprocessOptions struct {
	ProjectsPath string
	TasksPath    string
	EntriesPath  string
	OutputPath   string
	Table        bool
	TablePath    string
	TableFormat  string
}

type preprocessResult struct {
	Entries     []timedata.NormalizedEntry
	TablePath   string
	TableFormat string
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Join time entries with project and task names and flatten them",
	Long: `Read the files written by "fetch", resolve task and project names for every
time entry and write the flattened records.

Each output record carries task and project id and name, the lower-cased
description, UTC start and end split into date and timestamp, and the duration
in whole seconds. A time entry that references an unknown task or project, or
a timer that is still running, aborts the run.

With --table the records are additionally written as a table. The format is
taken from --table-format, else from the --table-output extension, else csv.`,
	Example: `
  # Normalize the default fetch outputs
  clockdump preprocess

  # Also write preprocessed_data.csv
  clockdump preprocess --table

  # Write an Excel workbook next to a custom output file
  clockdump preprocess --output out/entries.json --table --table-format excel

  # Write a SQLite database
  clockdump preprocess --table --table-output entries.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runPreprocess(preprocessOptions{
			ProjectsPath: preprocessProjects,
			TasksPath:    preprocessTasks,
			EntriesPath:  preprocessEntries,
			OutputPath:   preprocessOutput,
			Table:        preprocessTable,
			TablePath:    preprocessTableOutput,
			TableFormat:  preprocessTableFormat,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Preprocess completed. Entries: %d -> %s\n", len(result.Entries), preprocessOutput)
		if result.TablePath != "" {
			fmt.Printf("Table (%s): %s\n", result.TableFormat, result.TablePath)
		}
		return nil
	},
}

func runPreprocess(opts preprocessOptions) (*preprocessResult, error) {
	var tableFormat, tablePath string
	if opts.Table {
		tableFormat, tablePath = resolveTableTarget(opts.OutputPath, opts.TablePath, opts.TableFormat)
		if samePath(tablePath, opts.OutputPath) {
			return nil, fmt.Errorf("%w: %s (set --table-output or change --output)", errTableOverwritesOutput, tablePath)
		}
	}

	projects, err := importer.ReadProjects(opts.ProjectsPath)
	if err != nil {
		return nil, err
	}
	tasks, err := importer.ReadTasks(opts.TasksPath)
	if err != nil {
		return nil, err
	}
	entries, err := importer.ReadTimeEntries(opts.EntriesPath)
	if err != nil {
		return nil, err
	}

	lookup := preprocess.BuildLookup(projects, tasks)
	logging.Debug().
		Int("projects", lookup.Projects()).
		Int("tasks", lookup.Tasks()).
		Int("entries", len(entries)).
		Msg("lookup tables built")

	normalized, err := preprocess.NormalizeAll(entries, lookup)
	if err != nil {
		return nil, err
	}

	if err := output.WriteStructured(opts.OutputPath, normalized); err != nil {
		return nil, err
	}

	result := &preprocessResult{Entries: normalized}
	if !opts.Table {
		return result, nil
	}

	writer, err := output.TabularWriterForFormat(tableFormat)
	if err != nil {
		return nil, err
	}
	if err := writer.Write(tablePath, normalized); err != nil {
		return nil, err
	}
	logging.Info().Str("format", tableFormat).Str("path", tablePath).Int("rows", len(normalized)).Msg("table written")

	result.TablePath = tablePath
	result.TableFormat = tableFormat
	return result, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// resolveTableTarget picks the tabular format and path: an explicit format
// wins, then the extension of the explicit path, then csv. Without an explicit
// path the data file's base name is reused.
func resolveTableTarget(dataPath, tablePath, tableFormat string) (string, string) {
	format := strings.TrimSpace(tableFormat)
	tablePath = strings.TrimSpace(tablePath)
	if format == "" && tablePath != "" {
		format = output.DetectTabularFormat(tablePath)
	}
	if format == "" {
		format = "csv"
	}
	if tablePath == "" {
		tablePath = output.DefaultTabularPath(dataPath, format)
	}
	return format, tablePath
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().StringVar(&preprocessProjects, "projects", defaultProjectsFile, "Projects file written by fetch")
	preprocessCmd.Flags().StringVar(&preprocessTasks, "tasks", defaultTasksFile, "Tasks file written by fetch")
	preprocessCmd.Flags().StringVar(&preprocessEntries, "entries", defaultEntriesFile, "Time entries file written by fetch")
	preprocessCmd.Flags().StringVarP(&preprocessOutput, "output", "o", defaultPreprocessedFile, "Output file for normalized entries (.json or .yaml)")
	preprocessCmd.Flags().BoolVar(&preprocessTable, "table", false, "Also write the normalized entries as a table")
	preprocessCmd.Flags().StringVar(&preprocessTableOutput, "table-output", "", "Table output file (default: output file base name with the format extension)")
	preprocessCmd.Flags().StringVar(&preprocessTableFormat, "table-format", "", "Table format: csv, excel, sqlite (default: from --table-output extension, else csv)")
}
