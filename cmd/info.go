package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GabRoyer/icanhasical/pkg/config"
	"github.com/GabRoyer/icanhasical/pkg/course"
	"github.com/GabRoyer/icanhasical/pkg/coursestring"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	infoTitleStyle = lipgloss.NewStyle().Bold(true)
	infoLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var infoCmd = &cobra.Command{
	Use:   "info <course>",
	Short: "Show the details of one course group",
	Long:  `Fetch and display a course group's metadata, teachers and meeting periods, e.g. "icanhasical info mth1101-t1".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := coursestring.Parse(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}

		var groups []*course.CourseGroup
		var loadErr error

		_ = spinner.New().
			Title(fmt.Sprintf("Loading %s...", req.Sigil)).
			Action(func() {
				groups, loadErr = loader.Load(req)
			}).
			Run()

		var batchErr *course.InvalidCoursesError
		if errors.As(loadErr, &batchErr) {
			return batchErr.Errors[0]
		}
		if loadErr != nil {
			return loadErr
		}

		printCourseGroup(groups[0])
		return nil
	},
}

func printCourseGroup(cg *course.CourseGroup) {
	header := fmt.Sprintf("%s (%s, gr. %d)", cg.Sigil, cg.Type.Label(), cg.Group)
	fmt.Println(infoTitleStyle.Render(header))

	printField("Title", cg.Title)
	printField("Level", cg.Level)
	fmt.Printf("%s %.1f\n", infoLabelStyle.Render("Credits:"), cg.Credits)
	fmt.Printf("%s %.1f th / %.1f lab / %.1f hw\n", infoLabelStyle.Render("Weekly hours:"),
		cg.WeeklyTheoryHours, cg.WeeklyLabHours, cg.WeeklyHomeworkHours)
	printField("Department", cg.Department)
	printField("In charge", cg.InCharge)
	printField("Prerequisites", cg.Prerequisites)
	printField("Corequisites", cg.Corequisites)
	printField("Website", cg.WebsiteURL)

	if len(cg.Teachers) > 0 {
		fmt.Printf("%s %s\n", infoLabelStyle.Render("Teachers:"), strings.Join(cg.Teachers, ", "))
	}

	if len(cg.Periods) == 0 {
		fmt.Println("\nNo scheduled meetings.")
	} else {
		fmt.Println()
		frTitle := cases.Title(language.French)
		for _, period := range cg.Periods {
			line := fmt.Sprintf("  %s %s - %s",
				frTitle.String(period.Day),
				period.StartsAt.Format("15H04"),
				period.EndsAt.Format("15H04"))
			if period.Room != "" {
				line += fmt.Sprintf(" in %s", period.Room)
			}
			if period.Parity != course.Weekly {
				line += fmt.Sprintf(" (%s)", parityLabel(period.Parity))
			}
			fmt.Println(line)
		}
	}

	if cg.Description != nil && *cg.Description != "" {
		fmt.Printf("\n%s\n", *cg.Description)
	}
	if cg.Note != nil && *cg.Note != "" {
		fmt.Printf("\n%s %s\n", infoLabelStyle.Render("Note:"), *cg.Note)
	}
}

// printField skips fields absent from the source document entirely.
func printField(label string, value *string) {
	if value == nil || *value == "" {
		return
	}
	fmt.Printf("%s %s\n", infoLabelStyle.Render(label+":"), *value)
}

func parityLabel(parity course.Parity) string {
	switch parity {
	case course.OddDays:
		return "odd days"
	case course.EvenDays:
		return "even days"
	default:
		return "weekly"
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
