package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/mskarstad/benchboss/internal/domain/match"
	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/platform/logging"
	"github.com/mskarstad/benchboss/internal/platform/random"
)

// minDressedPlayers is the floor below which a side cannot ice a team.
const minDressedPlayers = 10

var penaltyReasons = []string{
	"Hooking", "Tripping", "Slashing", "Roughing", "Interference",
	"High Sticking", "Too Many Men",
}

// EngineConfig tunes the per-tick probabilities. Zero values fall back to
// the standard ruleset.
type EngineConfig struct {
	RegulationTicks   int
	OvertimeTicks     int
	ShotChance        float64
	GoalBase          float64
	GoalSkillFactor   float64
	FightBase         float64
	PenaltyBase       float64
	InjuryChance      float64
	OvertimeBoost     float64
	MaxShootoutRounds int
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.RegulationTicks <= 0 {
		c.RegulationTicks = 60
	}
	if c.OvertimeTicks <= 0 {
		c.OvertimeTicks = 5
	}
	if c.ShotChance <= 0 {
		c.ShotChance = 0.25
	}
	if c.GoalBase <= 0 {
		c.GoalBase = 2.5
	}
	if c.GoalSkillFactor <= 0 {
		c.GoalSkillFactor = 0.15
	}
	if c.FightBase <= 0 {
		c.FightBase = 0.008
	}
	if c.PenaltyBase <= 0 {
		c.PenaltyBase = 0.03
	}
	if c.InjuryChance <= 0 {
		c.InjuryChance = 0.002
	}
	if c.OvertimeBoost <= 0 {
		c.OvertimeBoost = 1.5
	}
	if c.MaxShootoutRounds <= 0 {
		c.MaxShootoutRounds = 10
	}
	return c
}

// MatchEngine simulates matches tick by tick. It never mutates the teams it
// is given; all persistent effects travel through match.Result.
type MatchEngine struct {
	cfg EngineConfig
	rnd random.Source
	log *logging.Logger
}

func NewMatchEngine(cfg EngineConfig, rnd random.Source, log *logging.Logger) *MatchEngine {
	if rnd == nil {
		rnd = random.New()
	}
	if log == nil {
		log = logging.Default()
	}
	return &MatchEngine{cfg: cfg.withDefaults(), rnd: rnd, log: log}
}

// Start validates both lineups and returns an interactive run. A side with
// fewer than ten dressed players cannot start; no transient state exists
// after a rejected start.
func (e *MatchEngine) Start(home, away *team.Team) (*MatchRun, error) {
	if home == nil || away == nil {
		return nil, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}
	homeRoster := home.ActiveRoster()
	awayRoster := away.ActiveRoster()
	if len(homeRoster) < minDressedPlayers {
		return nil, fmt.Errorf("%w: %s dresses %d players, need %d", ErrInsufficientRoster, home.Name, len(homeRoster), minDressedPlayers)
	}
	if len(awayRoster) < minDressedPlayers {
		return nil, fmt.Errorf("%w: %s dresses %d players, need %d", ErrInsufficientRoster, away.Name, len(awayRoster), minDressedPlayers)
	}
	return e.newRun(home, away, homeRoster, awayRoster), nil
}

// Play runs one match to completion synchronously, with the same semantics
// as ticking an interactive run until it finishes.
func (e *MatchEngine) Play(ctx context.Context, home, away *team.Team) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchEngine.Play")
	defer span.End()

	run, err := e.Start(home, away)
	if err != nil {
		return match.Result{}, err
	}
	return run.runToCompletion(ctx)
}

// PlayAuto is Play with one relaxation for unattended fixtures: when a side
// would be short, benched players dress. Injured players still sit.
func (e *MatchEngine) PlayAuto(ctx context.Context, home, away *team.Team) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchEngine.PlayAuto")
	defer span.End()

	if home == nil || away == nil {
		return match.Result{}, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}
	homeRoster, err := dressedOrRelaxed(home)
	if err != nil {
		return match.Result{}, err
	}
	awayRoster, err := dressedOrRelaxed(away)
	if err != nil {
		return match.Result{}, err
	}
	return e.newRun(home, away, homeRoster, awayRoster).runToCompletion(ctx)
}

func dressedOrRelaxed(t *team.Team) ([]player.Player, error) {
	dressed := t.ActiveRoster()
	if len(dressed) >= minDressedPlayers {
		return dressed, nil
	}
	dressed = dressed[:0]
	for _, p := range t.Roster {
		if !p.IsInjured {
			dressed = append(dressed, p)
		}
	}
	if len(dressed) < minDressedPlayers {
		return nil, fmt.Errorf("%w: %s has only %d healthy players", ErrInsufficientRoster, t.Name, len(dressed))
	}
	return dressed, nil
}

func (e *MatchEngine) newRun(home, away *team.Team, homeRoster, awayRoster []player.Player) *MatchRun {
	return &MatchRun{
		eng:            e,
		home:           home,
		away:           away,
		homeRoster:     homeRoster,
		awayRoster:     awayRoster,
		phase:          phaseRegulation,
		pendingFaceoff: true,
		stats:          make(map[string]*match.StatDelta),
	}
}

type runPhase int

const (
	phaseRegulation runPhase = iota
	phaseOvertime
	phaseFinished
)

// MatchRun is one in-progress simulation. Tick is safe for concurrent use;
// all other accessors reflect the state as of the last completed tick.
type MatchRun struct {
	mu  sync.Mutex
	eng *MatchEngine

	home, away             *team.Team
	homeRoster, awayRoster []player.Player

	minute               int
	phase                runPhase
	homeScore, awayScore int
	momentum             int
	pendingFaceoff       bool
	overtime, shootout   bool

	penalties []match.Penalty
	events    []match.Event
	stats     map[string]*match.StatDelta
	statOrder []string
}

// Tick advances the simulation one step and reports whether the match has
// finished. Ticking a finished run is a no-op.
func (r *MatchRun) Tick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == phaseFinished {
		return true
	}
	r.tickLocked()
	return r.phase == phaseFinished
}

// Finished reports whether the run has produced a final result.
func (r *MatchRun) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseFinished
}

// Score returns the current home and away goal totals.
func (r *MatchRun) Score() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.homeScore, r.awayScore
}

// Minute returns the game clock as of the last tick.
func (r *MatchRun) Minute() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minute
}

// Events returns a copy of the match log so far.
func (r *MatchRun) Events() []match.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Result assembles the final output. Calling it before the run finishes is
// an error.
func (r *MatchRun) Result() (match.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phaseFinished {
		return match.Result{}, fmt.Errorf("%w: match still in progress", ErrInvalidInput)
	}
	return r.resultLocked(), nil
}

func (r *MatchRun) runToCompletion(ctx context.Context) (match.Result, error) {
	for {
		select {
		case <-ctx.Done():
			return match.Result{}, ctx.Err()
		default:
		}
		if r.Tick() {
			break
		}
	}
	result, err := r.Result()
	if err != nil {
		return match.Result{}, err
	}
	r.eng.log.DebugContext(ctx, "match simulated",
		"home", r.home.Name, "away", r.away.Name,
		"score", fmt.Sprintf("%d-%d", result.HomeScore, result.AwayScore),
		"overtime", result.Overtime, "shootout", result.Shootout)
	return result, nil
}

func (r *MatchRun) resultLocked() match.Result {
	stats := make([]match.StatDelta, 0, len(r.statOrder))
	for _, id := range r.statOrder {
		stats = append(stats, *r.stats[id])
	}
	events := make([]match.Event, len(r.events))
	copy(events, r.events)
	return match.Result{
		HomeTeamID:  r.home.ID,
		AwayTeamID:  r.away.ID,
		HomeScore:   r.homeScore,
		AwayScore:   r.awayScore,
		Events:      events,
		PlayerStats: stats,
		Overtime:    r.overtime,
		Shootout:    r.shootout,
	}
}

func (r *MatchRun) tickLocked() {
	// A pending faceoff consumes the tick without moving the clock.
	if r.pendingFaceoff {
		r.resolveFaceoff()
		return
	}

	rnd := r.eng.rnd
	cfg := r.eng.cfg

	for i := range r.penalties {
		r.penalties[i].MinutesRemaining--
	}
	r.penalties = filterActivePenalties(r.penalties)

	homeStrength := r.teamStrength(r.home.ID)
	awayStrength := r.teamStrength(r.away.ID)

	otMod := 1.0
	if r.phase == phaseOvertime {
		otMod = cfg.OvertimeBoost
	}

	homeOffense := r.avgEffectiveSkill(r.homeRoster, r.home) * homeStrength *
		(1 + float64(r.momentum)*0.02) * otMod * tacticalBonus(r.home.Tactics, r.away.Tactics)
	awayOffense := r.avgEffectiveSkill(r.awayRoster, r.away) * awayStrength *
		(1 - float64(r.momentum)*0.02) * otMod * tacticalBonus(r.away.Tactics, r.home.Tactics)

	homeThreshold := cfg.GoalBase + (homeOffense-awayOffense)*cfg.GoalSkillFactor
	awayThreshold := cfg.GoalBase + (awayOffense-homeOffense)*cfg.GoalSkillFactor

	// One roll decides goals for both ends: home scores off the bottom of
	// the range, away off the top.
	roll := rnd.Float64() * 100

	if random.Chance(rnd, cfg.ShotChance) {
		r.credit(randomPlayer(rnd, r.homeRoster), creditShot, 1)
	}
	if random.Chance(rnd, cfg.ShotChance) {
		r.credit(randomPlayer(rnd, r.awayRoster), creditShot, 1)
	}

	goalScored := false
	switch {
	case roll < homeThreshold:
		r.scoreGoal(r.home, r.homeRoster, awayStrength < 1.0, 2)
		goalScored = true
	case roll > 100-awayThreshold:
		r.scoreGoal(r.away, r.awayRoster, homeStrength < 1.0, -2)
		goalScored = true
	case random.Chance(rnd, cfg.FightBase*maxAggressionMult(r.home.Tactics.Aggression, r.away.Tactics.Aggression)):
		r.fight()
	case random.Chance(rnd, cfg.PenaltyBase):
		r.maybePenalty()
	case random.Chance(rnd, cfg.InjuryChance):
		r.injury()
	}

	r.minute++
	r.transition(goalScored)
}

func (r *MatchRun) transition(goalScored bool) {
	cfg := r.eng.cfg
	switch r.phase {
	case phaseRegulation:
		if r.minute < cfg.RegulationTicks {
			return
		}
		if r.homeScore != r.awayScore {
			r.phase = phaseFinished
			return
		}
		r.events = append(r.events, match.Event{
			Minute: r.minute, Kind: match.EventInfo,
			Description: "REGULATION ENDED. OVERTIME!",
		})
		r.phase = phaseOvertime
		r.overtime = true
		r.penalties = nil
		r.pendingFaceoff = true
	case phaseOvertime:
		if goalScored {
			r.phase = phaseFinished
			return
		}
		if r.minute >= cfg.RegulationTicks+cfg.OvertimeTicks {
			r.events = append(r.events, match.Event{
				Minute: r.minute, Kind: match.EventInfo,
				Description: "OVERTIME ENDED. SHOOTOUT!",
			})
			r.runShootout()
			r.phase = phaseFinished
		}
	}
}

func (r *MatchRun) runShootout() {
	rnd := r.eng.rnd
	r.shootout = true
	for round := 0; r.homeScore == r.awayScore && round < r.eng.cfg.MaxShootoutRounds; round++ {
		if rnd.Float64() > 0.5 {
			r.homeScore++
		}
		if rnd.Float64() > 0.5 {
			r.awayScore++
		}
	}
	// Home ice settles an exhausted shootout rather than looping forever.
	if r.homeScore == r.awayScore {
		r.homeScore++
	}
	winner := r.home
	if r.awayScore > r.homeScore {
		winner = r.away
	}
	r.events = append(r.events, match.Event{
		Minute: r.minute, Kind: match.EventGoal,
		Description: fmt.Sprintf("SHOOTOUT WINNER: %s", winner.Name),
		TeamID:      winner.ID,
	})
}

func (r *MatchRun) resolveFaceoff() {
	rnd := r.eng.rnd
	homeCenter := centerOf(rnd, r.homeRoster)
	awayCenter := centerOf(rnd, r.awayRoster)

	homeRoll := effectiveSkill(homeCenter, r.home) + float64(homeCenter.Aggression)*0.5 + rnd.Float64()*50
	awayRoll := effectiveSkill(awayCenter, r.away) + float64(awayCenter.Aggression)*0.5 + rnd.Float64()*50

	winner := r.home
	shift := 1
	if awayRoll >= homeRoll {
		winner = r.away
		shift = -1
	}
	r.events = append(r.events, match.Event{
		Minute: r.minute, Kind: match.EventFaceoff,
		Description: fmt.Sprintf("FACEOFF: %s wins possession.", winner.Name),
		TeamID:      winner.ID,
	})
	r.credit(homeCenter, creditShot, 1)
	r.credit(awayCenter, creditShot, 1)
	r.momentum = clampMomentum(r.momentum + shift)
	r.pendingFaceoff = false
}

func (r *MatchRun) scoreGoal(scoring *team.Team, roster []player.Player, powerPlay bool, momentum int) {
	rnd := r.eng.rnd
	if scoring.ID == r.home.ID {
		r.homeScore++
	} else {
		r.awayScore++
	}
	scorer := randomPlayer(rnd, roster)
	assist := randomPlayer(rnd, roster)
	r.credit(scorer, creditGoal, 2)
	r.credit(scorer, creditShot, 0)
	if assist.ID != scorer.ID {
		r.credit(assist, creditAssist, 1)
	}

	suffix := ""
	if powerPlay {
		suffix = " (PP)"
		r.removeOldestPenalty(r.concedingTeamID(scoring.ID))
	}
	r.events = append(r.events, match.Event{
		Minute: r.minute + 1, Kind: match.EventGoal,
		Description: fmt.Sprintf("GOAL! %s (%s)%s", scorer.Name, scoring.Name, suffix),
		TeamID:      scoring.ID,
		PlayerID:    scorer.ID,
		PowerPlay:   powerPlay,
	})
	r.momentum = momentum
	r.pendingFaceoff = true
}

func (r *MatchRun) fight() {
	rnd := r.eng.rnd
	hp := randomPlayer(rnd, r.homeRoster)
	ap := randomPlayer(rnd, r.awayRoster)
	r.credit(hp, creditPIM, 3)
	r.credit(ap, creditPIM, 3)
	r.penalties = append(r.penalties,
		match.Penalty{TeamID: r.home.ID, PlayerID: hp.ID, PlayerName: hp.Name, Reason: "Roughing", MinutesRemaining: 2},
		match.Penalty{TeamID: r.away.ID, PlayerID: ap.ID, PlayerName: ap.Name, Reason: "Roughing", MinutesRemaining: 2},
	)
	r.events = append(r.events, match.Event{
		Minute: r.minute + 1, Kind: match.EventRoughing,
		Description: fmt.Sprintf("FIGHT! %s and %s drop the gloves!", hp.Name, ap.Name),
		TeamID:      r.home.ID,
	})
}

func (r *MatchRun) maybePenalty() {
	rnd := r.eng.rnd
	offending, roster := r.home, r.homeRoster
	if rnd.Float64() > 0.5 {
		offending, roster = r.away, r.awayRoster
	}
	culprit := randomPlayer(rnd, roster)
	// Discipline gate: calm players on calm teams mostly skate away clean.
	if rnd.Float64()*100 >= float64(culprit.Aggression)*aggressionMult(offending.Tactics.Aggression) {
		return
	}
	reason := penaltyReasons[rnd.IntN(len(penaltyReasons))]
	r.credit(culprit, creditPIM, 1)
	r.penalties = append(r.penalties, match.Penalty{
		TeamID: offending.ID, PlayerID: culprit.ID, PlayerName: culprit.Name,
		Reason: reason, MinutesRemaining: 2,
	})
	r.events = append(r.events, match.Event{
		Minute: r.minute + 1, Kind: match.EventPenalty,
		Description: fmt.Sprintf("%s (%s) - 2 min for %s", culprit.Name, offending.Name, reason),
		TeamID:      offending.ID,
	})
	r.pendingFaceoff = true
}

func (r *MatchRun) injury() {
	rnd := r.eng.rnd
	victimTeam, roster := r.home, r.homeRoster
	if rnd.Float64() > 0.5 {
		victimTeam, roster = r.away, r.awayRoster
	}
	victim := randomPlayer(rnd, roster)
	r.creditInjury(victim, random.Between(rnd, 1, 4))
	r.events = append(r.events, match.Event{
		Minute: r.minute + 1, Kind: match.EventInjury,
		Description: fmt.Sprintf("INJURY! %s is helped off the ice.", victim.Name),
		TeamID:      victimTeam.ID,
		PlayerID:    victim.ID,
	})
	r.pendingFaceoff = true
}

func (r *MatchRun) concedingTeamID(scoringID string) string {
	if scoringID == r.home.ID {
		return r.away.ID
	}
	return r.home.ID
}

// removeOldestPenalty releases the first penalty the conceding side took.
// Other penalties keep running.
func (r *MatchRun) removeOldestPenalty(teamID string) {
	for i, p := range r.penalties {
		if p.TeamID == teamID {
			r.penalties = append(r.penalties[:i], r.penalties[i+1:]...)
			return
		}
	}
}

func (r *MatchRun) teamStrength(teamID string) float64 {
	menDown := 0
	for _, p := range r.penalties {
		if p.TeamID == teamID {
			menDown++
		}
	}
	if menDown > 2 {
		menDown = 2
	}
	return 1.0 - float64(menDown)*0.25
}

func (r *MatchRun) avgEffectiveSkill(roster []player.Player, t *team.Team) float64 {
	if len(roster) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range roster {
		total += effectiveSkill(p, t)
	}
	return total / float64(len(roster))
}

type creditKind int

const (
	creditShot creditKind = iota
	creditGoal
	creditAssist
	creditPIM
)

// credit records one involvement for a player. The first touch also charges
// the base two points of match fatigue.
func (r *MatchRun) credit(p player.Player, kind creditKind, extraFatigue int) {
	delta := r.deltaFor(p.ID)
	switch kind {
	case creditShot:
		delta.Shots++
	case creditGoal:
		delta.Goals++
	case creditAssist:
		delta.Assists++
	case creditPIM:
		delta.PIM += 2
	}
	delta.FatigueAdded += extraFatigue
}

func (r *MatchRun) creditInjury(p player.Player, weeks int) {
	r.deltaFor(p.ID).InjuryWeeks = weeks
}

func (r *MatchRun) deltaFor(playerID string) *match.StatDelta {
	if delta, ok := r.stats[playerID]; ok {
		return delta
	}
	delta := &match.StatDelta{PlayerID: playerID, FatigueAdded: 2}
	r.stats[playerID] = delta
	r.statOrder = append(r.statOrder, playerID)
	return delta
}

func effectiveSkill(p player.Player, t *team.Team) float64 {
	moraleMod := 1.0
	if p.Morale > 80 {
		moraleMod = 1.05
	}
	if p.Morale < 40 {
		moraleMod = 0.90
	}
	fatigueMod := 1 - float64(p.Fatigue)/200
	bonus := t.Upgrades.EquipmentLevel + t.StaffLevel(team.RoleHeadCoach)
	return float64(p.Skill+bonus) * moraleMod * fatigueMod
}

func aggressionMult(level team.Aggression) float64 {
	switch level {
	case team.AggressionLow:
		return 0.8
	case team.AggressionHigh:
		return 1.3
	case team.AggressionEnforcer:
		return 1.8
	default:
		return 1.0
	}
}

func maxAggressionMult(a, b team.Aggression) float64 {
	ma, mb := aggressionMult(a), aggressionMult(b)
	if ma > mb {
		return ma
	}
	return mb
}

// tacticalBonus rates own style against the opponent's settings. Counter
// attack feeds on aggressive opponents; dump and chase grinds out a small
// edge everywhere.
func tacticalBonus(own, opponent team.Tactics) float64 {
	bonus := 1.0
	if own.Style == team.StyleCounterAttack &&
		(opponent.Aggression == team.AggressionHigh || opponent.Aggression == team.AggressionEnforcer) {
		bonus += 0.15
	}
	if own.Style == team.StyleDumpAndChase {
		bonus += 0.05
	}
	return bonus
}

func clampMomentum(m int) int {
	if m < -5 {
		return -5
	}
	if m > 5 {
		return 5
	}
	return m
}

func filterActivePenalties(penalties []match.Penalty) []match.Penalty {
	out := penalties[:0]
	for _, p := range penalties {
		if p.MinutesRemaining > 0 {
			out = append(out, p)
		}
	}
	return out
}

func randomPlayer(rnd random.Source, roster []player.Player) player.Player {
	return roster[rnd.IntN(len(roster))]
}

func centerOf(rnd random.Source, roster []player.Player) player.Player {
	for _, p := range roster {
		if p.Position == player.PositionCenter {
			return p
		}
	}
	return randomPlayer(rnd, roster)
}
