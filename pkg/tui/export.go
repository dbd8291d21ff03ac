package tui

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

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

func newLoader(cfg *config.AppConfig) (*course.Loader, error) {
	if cfg != nil && cfg.CacheDir != "" {
		return course.NewLoader(course.NewCache(cfg.CacheDir), course.NewClient()), nil
	}
	return course.DefaultLoader()
}

// RunExportTUI runs the interactive flow for picking course groups and
// exporting the semester calendar.
func RunExportTUI() error {
	fmt.Println(accentStyle.Render("Welcome to the icanhasical exporter!"))

	cfg, _ := config.Load()

	tokensInput := ""
	if cfg != nil {
		tokensInput = strings.Join(cfg.SavedCourses, " ")
	}

	tokensForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Which course groups are you taking?").
				Description("Space-separated tokens, e.g. \"mth1101-t1 inf1010-l2\"").
				Value(&tokensInput).
				Validate(func(s string) error {
					if len(strings.Fields(s)) == 0 {
						return fmt.Errorf("enter at least one course")
					}
					for _, token := range strings.Fields(s) {
						if _, err := coursestring.Parse(token); err != nil {
							return err
						}
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := tokensForm.Run(); err != nil {
		return err
	}

	tokens := strings.Fields(tokensInput)
	requests := make([]course.Request, 0, len(tokens))
	for _, token := range tokens {
		req, err := coursestring.Parse(token)
		if err != nil {
			return err // The form validated these already
		}
		requests = append(requests, req)
	}

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	var groups []*course.CourseGroup
	var loadErr error

	_ = spinner.New().
		Title("Fetching course records from Polytechnique...").
		Action(func() {
			groups, loadErr = loader.Load(requests...)
		}).
		Run()

	var batchErr *course.InvalidCoursesError
	if errors.As(loadErr, &batchErr) {
		fmt.Println(errorStyle.Render("Some of the requested courses are invalid:"))
		for _, inner := range batchErr.Errors {
			fmt.Println(errorStyle.Render("  - " + inner.Error()))
		}
		return nil
	}
	if loadErr != nil {
		return fmt.Errorf("failed to load courses: %w", loadErr)
	}

	sched, err := schedule.Load()
	if err != nil {
		return err
	}

	outputFile := "semester.ics"
	saveCourses := true

	exportForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Remember these courses for next time?").
				Value(&saveCourses),
		),
	).WithTheme(GetTheme())

	if err := exportForm.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}

	if saveCourses && cfg != nil {
		cfg.SavedCourses = tokens
		if err := config.Save(cfg); err != nil {
			fmt.Println(errorStyle.Render("Could not save your course list: " + err.Error()))
		}
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(groups, sched, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d course group(s) to %s", len(groups), outputFile)))

	return nil
}

// RunClearCacheTUI asks for confirmation before wiping the course cache.
func RunClearCacheTUI() error {
	cfg, _ := config.Load()

	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear every cached course document?").
				Description("The next export will re-download them.").
				Value(&confirm),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	if err := loader.ClearCache(); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("Course cache cleared."))
	return nil
}

// RunSettingsTUI edits the persistent app settings.
func RunSettingsTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	color := cfg.AccentColor
	cacheDir := cfg.CacheDir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Accent color").
				Description("ANSI 256 color code, e.g. 39. Leave empty for the default.").
				Value(&color),

			huh.NewInput().
				Title("Cache directory").
				Description("Leave empty to cache under your home directory.").
				Value(&cacheDir),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.AccentColor = strings.TrimSpace(color)
	cfg.CacheDir = strings.TrimSpace(cacheDir)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("Settings saved."))
	return nil
}
