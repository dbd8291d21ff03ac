// Package schedule persists the semester calendar that course periods are
// expanded against when exporting.
package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Schedule is a flat record of the semester: its bounds, the study week, the
// days off, and the first days of the B1/B2 alternations. It is saved and
// loaded as a single JSON blob; the course loading pipeline never touches it.
type Schedule struct {
	FirstDay       time.Time   `json:"first_day"`
	LastDay        time.Time   `json:"last_day"`
	StudyWeekStart time.Time   `json:"study_week_start"`
	B1FirstDays    []time.Time `json:"b1_first_days,omitempty"`
	B2FirstDays    []time.Time `json:"b2_first_days,omitempty"`
	DaysOff        []time.Time `json:"days_off,omitempty"`
}

// getSchedulePath returns the absolute path to ~/.icanhasical_schedule.json
func getSchedulePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".icanhasical_schedule.json"), nil
}

// Load reads the semester schedule from disk.
// Returns an empty record if the file does not exist.
func Load() (*Schedule, error) {
	path, err := getSchedulePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Schedule{}, nil
		}
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	var sched Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}

	return &sched, nil
}

// Save writes the semester schedule back to disk.
func Save(sched *Schedule) error {
	path, err := getSchedulePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}

	return nil
}

// IsDayOff reports whether the given date is a holiday or falls inside the
// study week.
func (s *Schedule) IsDayOff(day time.Time) bool {
	for _, off := range s.DaysOff {
		if sameDay(off, day) {
			return true
		}
	}
	if !s.StudyWeekStart.IsZero() {
		end := s.StudyWeekStart.AddDate(0, 0, 7)
		if !day.Before(s.StudyWeekStart) && day.Before(end) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
