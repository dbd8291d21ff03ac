package cmd

import (
	"fmt"
	"time"

	"github.com/GabRoyer/icanhasical/pkg/schedule"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "View or edit the semester schedule",
	Long: `View or edit the semester schedule the exporter expands course periods
against: its first and last days, the study week, and the days off. Dates use
the YYYY-MM-DD format. With no flags, the current schedule is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, err := schedule.Load()
		if err != nil {
			return err
		}

		changed := false

		if err := setDateFlag(cmd, "first-day", &sched.FirstDay, &changed); err != nil {
			return err
		}
		if err := setDateFlag(cmd, "last-day", &sched.LastDay, &changed); err != nil {
			return err
		}
		if err := setDateFlag(cmd, "study-week", &sched.StudyWeekStart, &changed); err != nil {
			return err
		}

		daysOff, _ := cmd.Flags().GetStringArray("add-day-off")
		for _, raw := range daysOff {
			day, err := time.Parse(dateLayout, raw)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
			}
			sched.DaysOff = append(sched.DaysOff, day)
			changed = true
		}

		if clear, _ := cmd.Flags().GetBool("clear-days-off"); clear {
			sched.DaysOff = nil
			changed = true
		}

		if changed {
			if err := schedule.Save(sched); err != nil {
				return err
			}
			fmt.Println("Semester schedule saved.")
			return nil
		}

		printSchedule(sched)
		return nil
	},
}

func setDateFlag(cmd *cobra.Command, name string, target *time.Time, changed *bool) error {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid --%s date %q, expected YYYY-MM-DD", name, raw)
	}
	*target = day
	*changed = true
	return nil
}

func printSchedule(sched *schedule.Schedule) {
	if sched.FirstDay.IsZero() && sched.LastDay.IsZero() {
		fmt.Println("No semester schedule configured yet. Set one with --first-day and --last-day.")
		return
	}

	fmt.Printf("Semester: %s to %s\n", formatDay(sched.FirstDay), formatDay(sched.LastDay))
	if !sched.StudyWeekStart.IsZero() {
		fmt.Printf("Study week starts: %s\n", formatDay(sched.StudyWeekStart))
	}
	if len(sched.DaysOff) > 0 {
		fmt.Println("Days off:")
		for _, day := range sched.DaysOff {
			fmt.Printf("  %s\n", formatDay(day))
		}
	}
}

func formatDay(day time.Time) string {
	if day.IsZero() {
		return "(unset)"
	}
	return day.Format(dateLayout)
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().String("first-day", "", "First day of the semester (YYYY-MM-DD)")
	scheduleCmd.Flags().String("last-day", "", "Last day of the semester (YYYY-MM-DD)")
	scheduleCmd.Flags().String("study-week", "", "First day of the study week (YYYY-MM-DD)")
	scheduleCmd.Flags().StringArray("add-day-off", nil, "Add a day off (YYYY-MM-DD), repeatable")
	scheduleCmd.Flags().Bool("clear-days-off", false, "Remove every configured day off")
}
