package team

import (
	"fmt"

	"github.com/mskarstad/benchboss/internal/domain/player"
)

// StaffRole identifies one of the three fixed staff positions every club
// carries.
type StaffRole string

const (
	RoleHeadCoach StaffRole = "HEAD_COACH"
	RoleAssistant StaffRole = "ASSISTANT"
	RoleFixer     StaffRole = "FIXER"
)

// StaffMember is a club employee whose level linearly modifies a gameplay
// bonus (coach: in-match skill, assistant: drill success, fixer: deals).
type StaffMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Level     int       `json:"level"`
	Specialty string    `json:"specialty"`
}

// Upgrades are club facility levels, each 0-5.
type Upgrades struct {
	EquipmentLevel int `json:"equipmentLevel"`
	SwagLevel      int `json:"swagLevel"`
	FacilityLevel  int `json:"facilityLevel"`
}

// Style is the tactical system a team plays.
type Style string

const (
	StyleBalanced      Style = "BALANCED"
	StyleDumpAndChase  Style = "DUMP_AND_CHASE"
	StyleSkillCycle    Style = "SKILL_CYCLE"
	StyleCounterAttack Style = "COUNTER_ATTACK"
	StyleTrap          Style = "TRAP"
)

// Aggression is the physicality setting a team skates with.
type Aggression string

const (
	AggressionLow      Aggression = "LOW"
	AggressionMedium   Aggression = "MEDIUM"
	AggressionHigh     Aggression = "HIGH"
	AggressionEnforcer Aggression = "ENFORCER"
)

type Tactics struct {
	Style      Style      `json:"style"`
	Aggression Aggression `json:"aggression"`
}

// Minimum roster composition maintained by the roster lifecycle manager.
const (
	MinGoalies   = 2
	MinDefenders = 8
	MinRoster    = 22
)

// Team is one club in the league: identity, roster, staff, tactics and the
// running season record. Wallet and Championships are career fields that
// survive season resets.
type Team struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	City   string    `json:"city"`
	Colors [2]string `json:"colors"`

	Roster   []player.Player `json:"roster"`
	Staff    []StaffMember   `json:"staff"`
	Upgrades Upgrades        `json:"upgrades"`
	Tactics  Tactics         `json:"tactics"`

	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Draws        int `json:"draws"`
	OTLosses     int `json:"otLosses"`
	Points       int `json:"points"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`

	Wallet        int `json:"wallet"`
	Championships int `json:"championships"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	seen := make(map[string]struct{}, len(t.Roster))
	for _, p := range t.Roster {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate player id on roster: %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// ActiveRoster returns the players who dress for a match: not injured and
// not assigned to the bench.
func (t Team) ActiveRoster() []player.Player {
	out := make([]player.Player, 0, len(t.Roster))
	for _, p := range t.Roster {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// StaffLevel returns the level of the staff member holding the given role,
// zero when the slot is somehow empty.
func (t Team) StaffLevel(role StaffRole) int {
	for _, s := range t.Staff {
		if s.Role == role {
			return s.Level
		}
	}
	return 0
}

// FindPlayer returns a pointer into the roster slice for in-place updates.
func (t *Team) FindPlayer(id string) (*player.Player, bool) {
	for i := range t.Roster {
		if t.Roster[i].ID == id {
			return &t.Roster[i], true
		}
	}
	return nil, false
}

// GoalDiff is the standings tiebreaker.
func (t Team) GoalDiff() int {
	return t.GoalsFor - t.GoalsAgainst
}

// ResetRecord zeroes the season record while leaving career fields alone.
func (t *Team) ResetRecord() {
	t.Wins = 0
	t.Losses = 0
	t.Draws = 0
	t.OTLosses = 0
	t.Points = 0
	t.GoalsFor = 0
	t.GoalsAgainst = 0
}

// CountPosition counts roster players at a position. Forwards and centers
// are counted together when either is asked for via SkaterForwards.
func (t Team) CountPosition(pos player.Position) int {
	n := 0
	for _, p := range t.Roster {
		if p.Position == pos {
			n++
		}
	}
	return n
}

// CountAttackers counts forwards plus centers, the group that fills the
// four attacking lines.
func (t Team) CountAttackers() int {
	n := 0
	for _, p := range t.Roster {
		if p.Position == player.PositionForward || p.Position == player.PositionCenter {
			n++
		}
	}
	return n
}
