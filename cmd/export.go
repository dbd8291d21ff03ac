package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/GabRoyer/icanhasical/pkg/config"
	"github.com/GabRoyer/icanhasical/pkg/course"
	"github.com/GabRoyer/icanhasical/pkg/coursestring"
	"github.com/GabRoyer/icanhasical/pkg/exporter"
	"github.com/GabRoyer/icanhasical/pkg/schedule"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// newLoader wires the course loader, honoring the configured cache directory.
func newLoader(cfg *config.AppConfig) (*course.Loader, error) {
	if cfg != nil && cfg.CacheDir != "" {
		return course.NewLoader(course.NewCache(cfg.CacheDir), course.NewClient()), nil
	}
	return course.DefaultLoader()
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your course groups to an ICS file",
	Long: `Export the semester calendar for the given course groups to an ICS file
without using the interactive TUI. With no --course flags, the courses saved
in your configuration are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, _ := cmd.Flags().GetStringArray("course")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if len(tokens) == 0 {
			tokens = cfg.SavedCourses
		}
		if len(tokens) == 0 {
			return fmt.Errorf("no courses given, pass --course or save some with the interactive TUI")
		}

		requests := make([]course.Request, 0, len(tokens))
		var badTokens []string
		for _, token := range tokens {
			req, err := coursestring.Parse(token)
			if err != nil {
				badTokens = append(badTokens, token)
				continue
			}
			requests = append(requests, req)
		}
		if len(badTokens) > 0 {
			return fmt.Errorf("malformed course string(s): %s (expected something like \"mth1101-t1\")",
				strings.Join(badTokens, ", "))
		}

		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}

		var groups []*course.CourseGroup
		var loadErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Loading %d course group(s)...", len(requests))).
			Action(func() {
				groups, loadErr = loader.Load(requests...)
			}).
			Run()

		var batchErr *course.InvalidCoursesError
		if errors.As(loadErr, &batchErr) {
			lines := make([]string, 0, len(batchErr.Errors))
			for _, inner := range batchErr.Errors {
				lines = append(lines, "  - "+inner.Error())
			}
			return fmt.Errorf("some of the requested courses are invalid:\n%s", strings.Join(lines, "\n"))
		}
		if loadErr != nil {
			return fmt.Errorf("failed to load courses: %w", loadErr)
		}

		sched, err := schedule.Load()
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(groups, sched, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d course group(s) to %s\n", len(groups), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringArrayP("course", "c", nil, "Course group token to export (e.g. mth1101-t1), repeatable")
	exportCmd.Flags().StringP("output", "o", "semester.ics", "Output file path")
}
