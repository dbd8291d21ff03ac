package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GabRoyer/icanhasical/pkg/course"
	"github.com/GabRoyer/icanhasical/pkg/schedule"

	ics "github.com/arran4/golang-ical"
)

// weekdays maps the French day names the course service uses.
var weekdays = map[string]time.Weekday{
	"dimanche": time.Sunday,
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
}

// GenerateICS expands every course group's merged periods across the semester
// and writes the resulting calendar to w. Occurrences land on the period's
// weekday between the semester's first and last days, skipping days off and
// the study week; odd/even-day periods only occur when the date's class-day
// number has the matching parity.
func GenerateICS(groups []*course.CourseGroup, sched *schedule.Schedule, w io.Writer) error {
	if sched == nil || sched.FirstDay.IsZero() || sched.LastDay.IsZero() {
		return fmt.Errorf("semester schedule is not configured, set its first and last days first")
	}

	// Timezone location for Montreal
	loc, err := time.LoadLocation("America/Montreal")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	dayNumbers := classDayNumbers(sched)

	for _, cg := range groups {
		for _, period := range cg.Periods {
			weekday, ok := weekdays[strings.ToLower(period.Day)]
			if !ok {
				continue // Skip periods whose day name we can't place
			}

			for day := sched.FirstDay; !day.After(sched.LastDay); day = day.AddDate(0, 0, 1) {
				if day.Weekday() != weekday || sched.IsDayOff(day) {
					continue
				}
				if !parityMatches(period.Parity, dayNumbers[dateKey(day)]) {
					continue
				}

				start := time.Date(day.Year(), day.Month(), day.Day(),
					period.StartsAt.Hour(), period.StartsAt.Minute(), 0, 0, loc)
				end := time.Date(day.Year(), day.Month(), day.Day(),
					period.EndsAt.Hour(), period.EndsAt.Minute(), 0, 0, loc)

				uid := fmt.Sprintf("%s-%s-gr%d-%s",
					strings.ToLower(cg.Sigil), strings.ToLower(string(cg.Type)),
					cg.Group, start.Format("20060102T150405"))

				event := cal.AddEvent(uid)
				event.SetCreatedTime(time.Now())
				event.SetDtStampTime(time.Now())
				event.SetModifiedAt(time.Now())
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(fmt.Sprintf("%s %s (gr. %d)", cg.Sigil, cg.Type.Label(), cg.Group))
				if period.Room != "" {
					event.SetLocation(period.Room)
				}
				if len(cg.Teachers) > 0 {
					event.SetDescription(strings.Join(cg.Teachers, ", "))
				}
			}
		}
	}

	return cal.SerializeTo(w)
}

// classDayNumbers numbers the term's class days (Monday to Friday, days off
// excluded) sequentially from the first day of the semester. Odd/even-day
// periods recur against this numbering.
func classDayNumbers(sched *schedule.Schedule) map[string]int {
	numbers := make(map[string]int)
	n := 0
	for day := sched.FirstDay; !day.After(sched.LastDay); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if sched.IsDayOff(day) {
			continue
		}
		n++
		numbers[dateKey(day)] = n
	}
	return numbers
}

func dateKey(day time.Time) string {
	return day.Format("2006-01-02")
}

func parityMatches(parity course.Parity, dayNumber int) bool {
	switch parity {
	case course.OddDays:
		return dayNumber%2 == 1
	case course.EvenDays:
		return dayNumber != 0 && dayNumber%2 == 0
	default:
		return true
	}
}
