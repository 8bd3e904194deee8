package player

import "fmt"

// Position represents the on-ice role categories used by line assignment
// and roster composition rules.
type Position string

const (
	PositionGoalie   Position = "G"
	PositionDefender Position = "D"
	PositionForward  Position = "F"
	PositionCenter   Position = "C"
)

var AllPositions = map[Position]struct{}{
	PositionGoalie:   {},
	PositionDefender: {},
	PositionForward:  {},
	PositionCenter:   {},
}

// Line is a player's slot in the lineup. L1-L4 are the forward/defense
// pairings, G1/G2 the goalie depth chart, Bench everything else.
type Line string

const (
	LineFirst  Line = "L1"
	LineSecond Line = "L2"
	LineThird  Line = "L3"
	LineFourth Line = "L4"
	LineG1     Line = "G1"
	LineG2     Line = "G2"
	LineBench  Line = "BENCH"
)

// Personality is a derived tag computed once from attribute thresholds.
type Personality string

const (
	PersonalitySniper    Personality = "SNIPER"
	PersonalityPlaymaker Personality = "PLAYMAKER"
	PersonalityGrinder   Personality = "GRINDER"
	PersonalityEnforcer  Personality = "ENFORCER"
	PersonalityTwoWay    Personality = "TWOWAY"
	PersonalityNone      Personality = "NONE"
)

// Focus selects which weekly drill a player attends.
type Focus string

const (
	FocusGeneral   Focus = "GENERAL"
	FocusTechnical Focus = "TECHNICAL"
	FocusPhysical  Focus = "PHYSICAL"
	FocusTactical  Focus = "TACTICAL"
	FocusRest      Focus = "REST"
)

// FocusCosts maps each training focus to its weekly training-point price.
// A player short on points slacks off instead of running the drill.
var FocusCosts = map[Focus]int{
	FocusGeneral:   1,
	FocusTechnical: 3,
	FocusPhysical:  2,
	FocusTactical:  2,
	FocusRest:      0,
}

// WeeklyTrainingPoints is the amount every player regenerates to after the
// weekly drill resolution, spent or not.
const WeeklyTrainingPoints = 10

const (
	// MaxYouthAge is the last age a player may still suit up. Older
	// players graduate out at the season boundary.
	MaxYouthAge = 18
	// RecruitAge is the age of procedurally generated backfill players.
	RecruitAge = 16
)

// Player is one athlete on a club roster. Ratings are bounded [0,100];
// Potential is the ceiling for Skill growth.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`

	Skill     int `json:"skill"`
	Potential int `json:"potential"`
	Stamina   int `json:"stamina"`
	Fatigue   int `json:"fatigue"`
	Morale    int `json:"morale"`
	Age       int `json:"age"`

	Line        Line        `json:"line"`
	Personality Personality `json:"personality"`

	Aggression   int `json:"aggression"`
	Vision       int `json:"vision"`
	PuckHandling int `json:"puckHandling"`

	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Shots   int `json:"shots"`
	PIM     int `json:"pim"`

	TrainingFocus  Focus `json:"trainingFocus"`
	TrainingPoints int   `json:"trainingPoints"`

	IsInjured       bool `json:"isInjured"`
	InjuryWeeksLeft int  `json:"injuryWeeksLeft"`
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Skill < 0 || p.Skill > 100 {
		return fmt.Errorf("player skill out of range: %d", p.Skill)
	}
	if p.Age < 15 || p.Age > MaxYouthAge+1 {
		return fmt.Errorf("player age out of range: %d", p.Age)
	}
	return nil
}

// Skater reports whether the player is anything but a goalie.
func (p Player) Skater() bool {
	return p.Position != PositionGoalie
}

// Active reports whether the player dresses for a match: not injured and
// not parked on the bench.
func (p Player) Active() bool {
	return !p.IsInjured && p.Line != LineBench
}

// ResetSeasonCounters zeroes per-season stats and clears injury state.
func (p *Player) ResetSeasonCounters() {
	p.Goals = 0
	p.Assists = 0
	p.Shots = 0
	p.PIM = 0
	p.Fatigue = 0
	p.IsInjured = false
	p.InjuryWeeksLeft = 0
}

// ClampRating bounds a rating to [0,100].
func ClampRating(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AssignPersonality derives the personality tag from raw attributes. The
// thresholds are checked in priority order; the first match wins.
func AssignPersonality(skill, aggression, vision, puckHandling, stamina int) Personality {
	switch {
	case aggression > 75 && skill < 60:
		return PersonalityEnforcer
	case vision > 70 && puckHandling > 70:
		return PersonalityPlaymaker
	case skill > 75 && aggression < 50:
		return PersonalitySniper
	case stamina > 80 && aggression > 50:
		return PersonalityGrinder
	case stamina > 70 && vision > 50 && aggression > 40:
		return PersonalityTwoWay
	default:
		return PersonalityNone
	}
}
