package career

import (
	"fmt"

	"github.com/mskarstad/benchboss/internal/domain/player"
)

// Scout is a hirable talent hunter. Skill (1-10) drives both prospect
// quality and how often the weekly trip goes sideways.
type Scout struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	CostPerWeek int    `json:"costPerWeek"`
	Skill       int    `json:"skill"`
}

func (s Scout) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scout id is required")
	}
	if s.Skill < 1 || s.Skill > 10 {
		return fmt.Errorf("scout skill out of range: %d", s.Skill)
	}
	return nil
}

// Report is one weekly scouting result. Player is nil for mishap reports,
// which carry flavor text only.
type Report struct {
	ID          string         `json:"id"`
	ScoutName   string         `json:"scoutName"`
	Player      *player.Player `json:"player,omitempty"`
	Description string         `json:"description"`
	Week        int            `json:"week"`
	Season      int            `json:"season"`
}

// JobOffer is an offseason contract proposal from another club.
type JobOffer struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	SigningBonus int    `json:"signingBonus"`
	Expectations string `json:"expectations"`
}
