package schedule

import "fmt"

// Phase is the coarse season state machine.
type Phase string

const (
	PhaseRegularSeason Phase = "REGULAR_SEASON"
	PhasePlayoffs      Phase = "PLAYOFFS"
	PhaseOffseason     Phase = "OFFSEASON"
)

// Playoff round names.
const (
	RoundSemiFinal = "Semi-Final"
	RoundFinal     = "Final"
)

// Outcome records how a played fixture ended.
type Outcome struct {
	HomeScore int  `json:"homeScore"`
	AwayScore int  `json:"awayScore"`
	Overtime  bool `json:"isOvertime"`
	Shootout  bool `json:"isShootout"`
}

// Match is one fixture between two teams in a given week. Created unplayed
// by the schedule generator and resolved exactly once by the orchestrator.
type Match struct {
	ID         string   `json:"id"`
	Week       int      `json:"week"`
	HomeTeamID string   `json:"homeTeamId"`
	AwayTeamID string   `json:"awayTeamId"`
	Played     bool     `json:"played"`
	Result     *Outcome `json:"result,omitempty"`
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot pair a team with itself")
	}
	if m.Week < 1 {
		return fmt.Errorf("match week must be positive")
	}
	return nil
}

// Involves reports whether the given team plays in this fixture.
func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Series is a best-of-one elimination pairing in the playoff bracket.
type Series struct {
	ID       string   `json:"id"`
	Round    string   `json:"roundName"`
	TeamAID  string   `json:"teamAId"`
	TeamBID  string   `json:"teamBId"`
	WinnerID string   `json:"winnerId,omitempty"`
	Matches  []string `json:"matchIds"`
}

// Involves reports whether the given team is part of this series.
func (s Series) Involves(teamID string) bool {
	return s.TeamAID == teamID || s.TeamBID == teamID
}

// Decided reports whether a winner has been recorded.
func (s Series) Decided() bool {
	return s.WinnerID != ""
}

// FindUserFixture resolves the fixture the given team should play next. In
// the regular season that is the current-week unplayed fixture involving the
// team; in the playoffs any unplayed fixture involving the team qualifies.
func FindUserFixture(matches []Match, week int, phase Phase, teamID string) (Match, bool) {
	for _, m := range matches {
		if m.Played || !m.Involves(teamID) {
			continue
		}
		if m.Week == week || phase == PhasePlayoffs {
			return m, true
		}
	}
	return Match{}, false
}

// WeekFixtures returns all fixtures scheduled for the given week.
func WeekFixtures(matches []Match, week int) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Week == week {
			out = append(out, m)
		}
	}
	return out
}
