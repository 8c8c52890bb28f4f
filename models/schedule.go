// File: models/schedule.go
package models

import "fmt"

// Common venues offered in the schedule form; admins can still type a
// custom one.
var Venues = []string{
	"Main Ground",
	"Basketball Court",
	"Football Ground",
	"Cricket Ground",
	"Indoor Stadium",
	"Badminton Court",
	"Volleyball Court",
	"Table Tennis Room",
	"Chess Room",
	"Gym/Weightlifting Room",
}

// ----------------------- schedule model -----------------------

// ScheduledMatch is one fixture on the public schedule.
type ScheduledMatch struct {
	ID       string `json:"id"`
	Sport    string `json:"sport"`
	Category string `json:"category"`
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"venue"`
}

// Normalize backfills the defaults the admin form expects.
func (m *ScheduledMatch) Normalize() {
	if m.Category == "" {
		m.Category = CategoryMen
	}
}

// Validate checks one fixture before the schedule may be published.
func (m ScheduledMatch) Validate() error {
	if m.TeamA == "" || m.TeamB == "" {
		return fmt.Errorf("Match between %s and %s must have both teams selected.",
			orUnknown(m.TeamA), orUnknown(m.TeamB))
	}
	if m.TeamA == m.TeamB {
		return fmt.Errorf("Team A and Team B cannot be the same for match between %s and %s.", m.TeamA, m.TeamB)
	}
	if m.Date == "" || m.Time == "" || m.Venue == "" {
		return fmt.Errorf("Date, Time, and Venue are required for match between %s and %s (%s).", m.TeamA, m.TeamB, m.Sport)
	}
	return nil
}

// ValidateSchedule runs Validate over a whole collection, stopping at the
// first failure.
func ValidateSchedule(matches []ScheduledMatch) error {
	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
