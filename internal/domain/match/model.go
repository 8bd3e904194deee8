package match

// EventKind is a closed set of things the engine can log during a match.
type EventKind string

const (
	EventGoal     EventKind = "GOAL"
	EventPenalty  EventKind = "PENALTY"
	EventInfo     EventKind = "INFO"
	EventInjury   EventKind = "INJURY"
	EventFaceoff  EventKind = "FACEOFF"
	EventRoughing EventKind = "ROUGHING"
)

// Event is one entry in the match log, carrying only the fields relevant to
// its kind.
type Event struct {
	Minute      int       `json:"minute"`
	Kind        EventKind `json:"type"`
	Description string    `json:"description"`
	TeamID      string    `json:"teamId,omitempty"`
	PlayerID    string    `json:"playerId,omitempty"`
	PowerPlay   bool      `json:"isPowerPlayGoal,omitempty"`
}

// Penalty is an active minor being served during a simulation. Transient
// engine state, never persisted.
type Penalty struct {
	TeamID           string
	PlayerID         string
	PlayerName       string
	Reason           string
	MinutesRemaining int
}

// StatDelta accumulates one player's involvement across a match. Applied to
// the persistent roster by the season orchestrator, never by the engine.
type StatDelta struct {
	PlayerID     string `json:"playerId"`
	Goals        int    `json:"goals"`
	Assists      int    `json:"assists"`
	Shots        int    `json:"shots"`
	PIM          int    `json:"pim"`
	FatigueAdded int    `json:"fatigueAdded"`
	InjuryWeeks  int    `json:"injuryWeeks,omitempty"`
}

// Result is the engine's output contract: the sole channel through which
// simulation state crosses into persistent team/player state.
type Result struct {
	HomeTeamID  string      `json:"homeTeamId"`
	AwayTeamID  string      `json:"awayTeamId"`
	HomeScore   int         `json:"homeScore"`
	AwayScore   int         `json:"awayScore"`
	Events      []Event     `json:"events"`
	PlayerStats []StatDelta `json:"playerStats"`
	Commentary  string      `json:"commentary,omitempty"`
	Overtime    bool        `json:"isOvertime"`
	Shootout    bool        `json:"isShootout"`
}

// WinnerID returns the id of the side that scored more. Ties cannot happen
// in a finished result; the shootout breaks them.
func (r Result) WinnerID() string {
	if r.HomeScore > r.AwayScore {
		return r.HomeTeamID
	}
	return r.AwayTeamID
}

// OvertimeDecision reports whether the game went past regulation at all.
func (r Result) OvertimeDecision() bool {
	return r.Overtime || r.Shootout
}
