// File: models/result.go
package models

import "fmt"

// ----------------------- shared constants -----------------------

// Sports offered at the festival, in form-select order.
var Sports = []string{
	"Athletics",
	"Badminton",
	"Basketball",
	"Chess",
	"Cricket",
	"Football",
	"Squash",
	"Table Tennis",
	"Volleyball",
	"Weightlifting",
	"Powerlifting",
	"Tug of War",
}

// Categories a match can be played in.
var Categories = []string{CategoryMen, CategoryWomen, CategoryMixed}

const (
	CategoryMen   = "Men"
	CategoryWomen = "Women"
	CategoryMixed = "Mixed"
)

// Stream status values for a result's live link.
const (
	StreamEnded    = "Ended"
	StreamLive     = "Live"
	StreamUpcoming = "Upcoming"
)

// Source types for image and document fields.
const (
	SourceURL    = "url"
	SourceUpload = "upload"
)

// WinnerDraw marks a drawn match.
const WinnerDraw = "Draw"

// ----------------------- result model -----------------------

// MatchResult is one published match result.
type MatchResult struct {
	ID             string `json:"id"`
	Sport          string `json:"sport"`
	Category       string `json:"category"`
	TeamA          string `json:"teamA"`
	TeamB          string `json:"teamB"`
	ScoreA         int    `json:"scoreA"`
	ScoreB         int    `json:"scoreB"`
	Winner         string `json:"winner"`
	Date           string `json:"date"`
	LiveLink       string `json:"liveLink"`
	StreamStatus   string `json:"streamStatus"`
	ScoreSheetType string `json:"scoreSheetType"`
	ScoreSheetLink string `json:"scoreSheetLink"`
}

// Normalize backfills the defaults the admin form expects.
func (r *MatchResult) Normalize() {
	if r.Category == "" {
		r.Category = CategoryMen
	}
	if r.StreamStatus == "" {
		r.StreamStatus = StreamEnded
	}
	if r.ScoreSheetType == "" {
		r.ScoreSheetType = SourceURL
	}
}

// Validate checks one result before the collection may be published.
func (r MatchResult) Validate() error {
	if r.TeamA == "" || r.TeamB == "" {
		return fmt.Errorf("Match between %s and %s must have both teams selected.",
			orUnknown(r.TeamA), orUnknown(r.TeamB))
	}
	if r.TeamA == r.TeamB {
		return fmt.Errorf("Team A and Team B cannot be the same for match between %s and %s.", r.TeamA, r.TeamB)
	}
	if r.ScoreA < 0 || r.ScoreB < 0 {
		return fmt.Errorf("Scores cannot be negative for match between %s and %s.", r.TeamA, r.TeamB)
	}
	if r.Winner == "" {
		return fmt.Errorf("Please select a Winner (or Draw) for match between %s and %s.", r.TeamA, r.TeamB)
	}
	return nil
}

// ValidateResults runs Validate over a whole collection, stopping at the
// first failure so the admin sees one alert at a time.
func ValidateResults(results []MatchResult) error {
	for _, r := range results {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func orUnknown(team string) string {
	if team == "" {
		return "Unknown"
	}
	return team
}
