package season

import (
	"fmt"
	"sort"

	"github.com/mskarstad/benchboss/internal/domain/career"
	"github.com/mskarstad/benchboss/internal/domain/match"
	"github.com/mskarstad/benchboss/internal/domain/schedule"
	"github.com/mskarstad/benchboss/internal/domain/team"
)

// State is the full mutable season/career aggregate. It is owned by the
// season orchestrator; no other component mutates it.
type State struct {
	UserTeamID  string `json:"userTeamId"`
	DreamTeamID string `json:"dreamTeamId"`
	SeasonCount int    `json:"seasonCount"`

	Teams    []team.Team       `json:"teams"`
	Schedule []schedule.Match  `json:"schedule"`
	Week     int               `json:"currentWeek"`
	Phase    schedule.Phase    `json:"phase"`
	Series   []schedule.Series `json:"playoffSeries"`

	JobOffers []career.JobOffer `json:"jobOffers"`

	Scouts          []career.Scout  `json:"hiredScouts"`
	Reports         []career.Report `json:"scoutingReports"`
	FundraiserUsed  bool            `json:"fundraiserUsed"`
	LastMatchResult *match.Result   `json:"lastMatchResult,omitempty"`
	AdviceByWeek    map[int]string  `json:"adviceCache,omitempty"`
	News            []string        `json:"newsFeed,omitempty"`
}

// Team returns a pointer into the aggregate's team slice.
func (s *State) Team(id string) (*team.Team, bool) {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i], true
		}
	}
	return nil, false
}

// UserTeam returns the team the user manages.
func (s *State) UserTeam() (*team.Team, bool) {
	return s.Team(s.UserTeamID)
}

func (s *State) Validate() error {
	if s.UserTeamID == "" {
		return fmt.Errorf("user team id is required")
	}
	if len(s.Teams) == 0 {
		return fmt.Errorf("season state needs at least one team")
	}
	ids := make(map[string]struct{}, len(s.Teams))
	for _, t := range s.Teams {
		ids[t.ID] = struct{}{}
	}
	if _, ok := ids[s.UserTeamID]; !ok {
		return fmt.Errorf("user team %s not present in teams", s.UserTeamID)
	}
	for _, m := range s.Schedule {
		if _, ok := ids[m.HomeTeamID]; !ok {
			return fmt.Errorf("fixture %s references unknown home team %s", m.ID, m.HomeTeamID)
		}
		if _, ok := ids[m.AwayTeamID]; !ok {
			return fmt.Errorf("fixture %s references unknown away team %s", m.ID, m.AwayTeamID)
		}
	}
	return nil
}

// Row is one line of the league table.
type Row struct {
	Position int
	TeamID   string
	Name     string
	Played   int
	Wins     int
	Losses   int
	OTLosses int
	Points   int
	GoalDiff int
}

// Standings ranks all teams by points, goal differential as tiebreak.
func (s *State) Standings() []Row {
	ordered := make([]team.Team, len(s.Teams))
	copy(ordered, s.Teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		return ordered[i].GoalDiff() > ordered[j].GoalDiff()
	})

	rows := make([]Row, 0, len(ordered))
	for i, t := range ordered {
		rows = append(rows, Row{
			Position: i + 1,
			TeamID:   t.ID,
			Name:     t.Name,
			Played:   t.Wins + t.Losses + t.Draws + t.OTLosses,
			Wins:     t.Wins,
			Losses:   t.Losses,
			OTLosses: t.OTLosses,
			Points:   t.Points,
			GoalDiff: t.GoalDiff(),
		})
	}
	return rows
}

// Rank returns the 1-based standings position of a team.
func (s *State) Rank(teamID string) int {
	for _, row := range s.Standings() {
		if row.TeamID == teamID {
			return row.Position
		}
	}
	return len(s.Teams)
}

// SeriesByRound returns the playoff series for the given round name.
func (s *State) SeriesByRound(round string) []schedule.Series {
	out := make([]schedule.Series, 0, 2)
	for _, sr := range s.Series {
		if sr.Round == round {
			out = append(out, sr)
		}
	}
	return out
}
