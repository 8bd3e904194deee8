package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/mskarstad/benchboss/internal/domain/career"
	"github.com/mskarstad/benchboss/internal/domain/match"
	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/domain/schedule"
	"github.com/mskarstad/benchboss/internal/domain/season"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/platform/cache"
	"github.com/mskarstad/benchboss/internal/platform/logging"
	"github.com/mskarstad/benchboss/internal/platform/random"
)

// Narrator produces flavor text. Implementations never fail: when the
// backing service is down they return canned lines instead.
type Narrator interface {
	Advice(ctx context.Context, own, opponent *team.Team) string
	Recap(ctx context.Context, home, away *team.Team, result match.Result) string
}

const (
	weeklyRent       = 1
	fundraiserPayout = 2
	maxNewsItems     = 5
	maxStaffLevel    = 10
	maxUpgradeLevel  = 5
)

// SeasonService is the orchestrator: it owns every transition of the
// season state machine, from fixture resolution through the weekly update
// to playoffs and the offseason carousel.
type SeasonService struct {
	engine    *MatchEngine
	schedules *ScheduleService
	rosters   *RosterService
	prospects ProspectGenerator
	narrator  Narrator
	texts     *cache.Store
	rnd       random.Source
	workers   int
	log       *logging.Logger

	background conc.WaitGroup
}

func NewSeasonService(
	engine *MatchEngine,
	schedules *ScheduleService,
	rosters *RosterService,
	prospects ProspectGenerator,
	narrator Narrator,
	texts *cache.Store,
	rnd random.Source,
	workers int,
	log *logging.Logger,
) *SeasonService {
	if rnd == nil {
		rnd = random.New()
	}
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logging.Default()
	}
	return &SeasonService{
		engine:    engine,
		schedules: schedules,
		rosters:   rosters,
		prospects: prospects,
		narrator:  narrator,
		texts:     texts,
		rnd:       rnd,
		workers:   workers,
		log:       log,
	}
}

// Flush waits for background text prefetches. Mainly useful in tests and
// on shutdown.
func (s *SeasonService) Flush() {
	s.background.Wait()
}

// NewCareer builds the initial season state for a fresh career.
func (s *SeasonService) NewCareer(ctx context.Context, teams []team.Team, userTeamID, dreamTeamID string) (*season.State, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.NewCareer")
	defer span.End()

	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	fixtures, err := s.schedules.Generate(ctx, teams)
	if err != nil {
		return nil, err
	}

	st := &season.State{
		UserTeamID:   userTeamID,
		DreamTeamID:  dreamTeamID,
		SeasonCount:  1,
		Teams:        teams,
		Schedule:     fixtures,
		Week:         1,
		Phase:        schedule.PhaseRegularSeason,
		AdviceByWeek: make(map[int]string),
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.log.InfoContext(ctx, "career started", "team", userTeamID, "teams", len(teams))
	return st, nil
}

// NextFixture resolves the fixture the user plays next, if any.
func (s *SeasonService) NextFixture(st *season.State) (schedule.Match, bool) {
	return schedule.FindUserFixture(st.Schedule, st.Week, st.Phase, st.UserTeamID)
}

// StartUserMatch begins an interactive run of the user's next fixture.
func (s *SeasonService) StartUserMatch(ctx context.Context, st *season.State) (*MatchRun, schedule.Match, error) {
	_, span := startUsecaseSpan(ctx, "SeasonService.StartUserMatch")
	defer span.End()

	fixture, ok := s.NextFixture(st)
	if !ok {
		return nil, schedule.Match{}, fmt.Errorf("%w: no fixture to play", ErrNotFound)
	}
	home, ok := st.Team(fixture.HomeTeamID)
	if !ok {
		return nil, schedule.Match{}, fmt.Errorf("%w: team %s", ErrNotFound, fixture.HomeTeamID)
	}
	away, ok := st.Team(fixture.AwayTeamID)
	if !ok {
		return nil, schedule.Match{}, fmt.Errorf("%w: team %s", ErrNotFound, fixture.AwayTeamID)
	}
	run, err := s.engine.Start(home, away)
	if err != nil {
		return nil, schedule.Match{}, err
	}
	return run, fixture, nil
}

// HandleMatchComplete applies a finished result to the season: the fixture
// is resolved exactly once, standings and currency update during the
// regular season, the rest of the week is simulated, player deltas land on
// the rosters, and the week or bracket advances.
func (s *SeasonService) HandleMatchComplete(ctx context.Context, st *season.State, fixtureID string, result match.Result) error {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.HandleMatchComplete")
	defer span.End()

	fixture := findFixture(st, fixtureID)
	if fixture == nil {
		return fmt.Errorf("%w: fixture %s", ErrNotFound, fixtureID)
	}
	if fixture.Played {
		return fmt.Errorf("%w: fixture %s already resolved", ErrInvalidInput, fixtureID)
	}
	if fixture.HomeTeamID != result.HomeTeamID || fixture.AwayTeamID != result.AwayTeamID {
		return fmt.Errorf("%w: result does not belong to fixture %s", ErrInvalidInput, fixtureID)
	}

	resCopy := result
	st.LastMatchResult = &resCopy
	markPlayed(fixture, result)
	s.applyPlayerDeltas(st, result)
	s.prefetchRecap(ctx, st, fixtureID, result)

	switch st.Phase {
	case schedule.PhaseRegularSeason:
		s.applyTeamResult(st, result)
		if err := s.autoSimWeek(ctx, st, fixtureID); err != nil {
			return err
		}
		s.advanceRegularSeason(ctx, st)
	case schedule.PhasePlayoffs:
		s.recordSeriesWinner(st, result)
		s.progressPlayoffs(ctx, st)
	default:
		return fmt.Errorf("%w: no match can complete in phase %s", ErrInvalidInput, st.Phase)
	}
	return nil
}

func (s *SeasonService) advanceRegularSeason(ctx context.Context, st *season.State) {
	if st.Week >= regularSeasonWeeks(st) {
		s.seedPlayoffs(ctx, st)
		// A user side that missed the cut watches the bracket resolve.
		s.progressPlayoffs(ctx, st)
		return
	}
	st.Week++
	st.FundraiserUsed = false
	s.processWeek(ctx, st)
}

func regularSeasonWeeks(st *season.State) int {
	return 2 * (len(st.Teams) - 1)
}

func findFixture(st *season.State, id string) *schedule.Match {
	for i := range st.Schedule {
		if st.Schedule[i].ID == id {
			return &st.Schedule[i]
		}
	}
	return nil
}

func markPlayed(fixture *schedule.Match, result match.Result) {
	fixture.Played = true
	fixture.Result = &schedule.Outcome{
		HomeScore: result.HomeScore,
		AwayScore: result.AwayScore,
		Overtime:  result.Overtime,
		Shootout:  result.Shootout,
	}
}

// applyTeamResult updates both records. Regulation wins pay three points,
// overtime wins two, overtime and shootout losses one. The user club also
// earns currency: two for any win, one for an overtime loss.
func (s *SeasonService) applyTeamResult(st *season.State, result match.Result) {
	ot := result.OvertimeDecision()
	s.applySide(st, result.HomeTeamID, result.HomeScore, result.AwayScore, ot)
	s.applySide(st, result.AwayTeamID, result.AwayScore, result.HomeScore, ot)
}

func (s *SeasonService) applySide(st *season.State, teamID string, scored, conceded int, ot bool) {
	t, ok := st.Team(teamID)
	if !ok {
		return
	}
	points, earned := 0, 0
	switch {
	case scored > conceded && !ot:
		points, earned = 3, 2
		t.Wins++
	case scored > conceded:
		points, earned = 2, 2
		t.Wins++
	case ot:
		points, earned = 1, 1
		t.OTLosses++
	default:
		t.Losses++
	}
	t.Points += points
	t.GoalsFor += scored
	t.GoalsAgainst += conceded
	if t.ID == st.UserTeamID {
		t.Wallet += earned
	}
}

func (s *SeasonService) applyPlayerDeltas(st *season.State, result match.Result) {
	for _, delta := range result.PlayerStats {
		for i := range st.Teams {
			p, ok := st.Teams[i].FindPlayer(delta.PlayerID)
			if !ok {
				continue
			}
			p.Goals += delta.Goals
			p.Assists += delta.Assists
			p.Shots += delta.Shots
			p.PIM += delta.PIM
			p.Fatigue = clampStat(p.Fatigue + delta.FatigueAdded)
			if delta.InjuryWeeks > 0 {
				p.IsInjured = true
				p.InjuryWeeksLeft += delta.InjuryWeeks
			}
			break
		}
	}
}

// autoSimWeek resolves every other unplayed fixture of the current week
// with the full engine. Simulations fan out over a worker pool; results
// are applied to the shared state serially afterwards.
func (s *SeasonService) autoSimWeek(ctx context.Context, st *season.State, excludeID string) error {
	var pending []schedule.Match
	for _, m := range schedule.WeekFixtures(st.Schedule, st.Week) {
		if !m.Played && m.ID != excludeID {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	workers := s.workers
	if workers > len(pending) {
		workers = len(pending)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type simOutcome struct {
		fixtureID string
		result    match.Result
		err       error
	}
	outcomes := make(chan simOutcome, len(pending))

	var wg sync.WaitGroup
	for _, fixture := range pending {
		fixture := fixture
		home, okH := st.Team(fixture.HomeTeamID)
		away, okA := st.Team(fixture.AwayTeamID)
		if !okH || !okA {
			return fmt.Errorf("%w: fixture %s references unknown team", ErrNotFound, fixture.ID)
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			result, err := s.engine.PlayAuto(ctx, home, away)
			outcomes <- simOutcome{fixtureID: fixture.ID, result: result, err: err}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		fixture := findFixture(st, outcome.fixtureID)
		result := outcome.result
		if outcome.err != nil {
			// A side that cannot ice ten healthy players forfeits.
			s.log.WarnContext(ctx, "fixture forfeited", "fixture", outcome.fixtureID, "error", outcome.err)
			result = forfeitResult(*fixture)
		}
		markPlayed(fixture, result)
		s.applyTeamResult(st, result)
		s.applyPlayerDeltas(st, result)
	}
	return nil
}

func forfeitResult(fixture schedule.Match) match.Result {
	return match.Result{
		HomeTeamID: fixture.HomeTeamID,
		AwayTeamID: fixture.AwayTeamID,
		HomeScore:  5,
		AwayScore:  0,
		Events: []match.Event{{
			Kind:        match.EventInfo,
			Description: "Match awarded as a walkover.",
			TeamID:      fixture.HomeTeamID,
		}},
	}
}

// seedPlayoffs locks the top four into single-game semifinals: first seed
// hosts fourth, second hosts third.
func (s *SeasonService) seedPlayoffs(ctx context.Context, st *season.State) {
	rows := st.Standings()
	if len(rows) < 4 {
		return
	}
	week := regularSeasonWeeks(st) + 1
	sf1 := schedule.Match{
		ID: fmt.Sprintf("playoff-sf1-s%d", st.SeasonCount), Week: week,
		HomeTeamID: rows[0].TeamID, AwayTeamID: rows[3].TeamID,
	}
	sf2 := schedule.Match{
		ID: fmt.Sprintf("playoff-sf2-s%d", st.SeasonCount), Week: week,
		HomeTeamID: rows[1].TeamID, AwayTeamID: rows[2].TeamID,
	}
	st.Schedule = append(st.Schedule, sf1, sf2)
	st.Series = append(st.Series,
		schedule.Series{ID: "sf1", Round: schedule.RoundSemiFinal, TeamAID: sf1.HomeTeamID, TeamBID: sf1.AwayTeamID, Matches: []string{sf1.ID}},
		schedule.Series{ID: "sf2", Round: schedule.RoundSemiFinal, TeamAID: sf2.HomeTeamID, TeamBID: sf2.AwayTeamID, Matches: []string{sf2.ID}},
	)
	st.Phase = schedule.PhasePlayoffs
	st.Week = week
	s.addNews(st, "Regular season complete. The playoff bracket is set.")
	s.log.InfoContext(ctx, "playoffs seeded",
		"first", sf1.HomeTeamID, "fourth", sf1.AwayTeamID, "second", sf2.HomeTeamID, "third", sf2.AwayTeamID)
}

func (s *SeasonService) recordSeriesWinner(st *season.State, result match.Result) {
	for i := range st.Series {
		sr := &st.Series[i]
		if sr.Decided() || !sr.Involves(result.HomeTeamID) || !sr.Involves(result.AwayTeamID) {
			continue
		}
		sr.WinnerID = result.WinnerID()
		return
	}
}

// progressPlayoffs drives the bracket forward: CPU-only series resolve
// immediately, the final spawns once both semifinals are decided, and a
// decided final crowns the champion and ends the season.
func (s *SeasonService) progressPlayoffs(ctx context.Context, st *season.State) {
	for safety := 0; safety < 8; safety++ {
		if s.simulateCPUSeries(ctx, st) {
			continue
		}
		if s.maybeCreateFinal(st) {
			continue
		}
		if final := s.decidedFinal(st); final != nil {
			s.crownChampion(ctx, st, final.WinnerID)
			return
		}
		return
	}
}

func (s *SeasonService) simulateCPUSeries(ctx context.Context, st *season.State) bool {
	for i := range st.Series {
		sr := &st.Series[i]
		if sr.Decided() || sr.Involves(st.UserTeamID) {
			continue
		}
		fixture := s.seriesFixture(st, sr)
		if fixture == nil || fixture.Played {
			continue
		}
		home, okH := st.Team(fixture.HomeTeamID)
		away, okA := st.Team(fixture.AwayTeamID)
		if !okH || !okA {
			continue
		}
		result, err := s.engine.PlayAuto(ctx, home, away)
		if err != nil {
			s.log.WarnContext(ctx, "playoff fixture forfeited", "fixture", fixture.ID, "error", err)
			result = forfeitResult(*fixture)
		}
		markPlayed(fixture, result)
		s.applyPlayerDeltas(st, result)
		sr.WinnerID = result.WinnerID()
		return true
	}
	return false
}

func (s *SeasonService) seriesFixture(st *season.State, sr *schedule.Series) *schedule.Match {
	for _, id := range sr.Matches {
		if fixture := findFixture(st, id); fixture != nil && !fixture.Played {
			return fixture
		}
	}
	return nil
}

func (s *SeasonService) maybeCreateFinal(st *season.State) bool {
	if len(st.SeriesByRound(schedule.RoundFinal)) > 0 {
		return false
	}
	semis := st.SeriesByRound(schedule.RoundSemiFinal)
	if len(semis) != 2 || !semis[0].Decided() || !semis[1].Decided() {
		return false
	}
	week := regularSeasonWeeks(st) + 2
	final := schedule.Match{
		ID: fmt.Sprintf("playoff-final-s%d", st.SeasonCount), Week: week,
		HomeTeamID: semis[0].WinnerID, AwayTeamID: semis[1].WinnerID,
	}
	st.Schedule = append(st.Schedule, final)
	st.Series = append(st.Series, schedule.Series{
		ID: "final", Round: schedule.RoundFinal,
		TeamAID: final.HomeTeamID, TeamBID: final.AwayTeamID,
		Matches: []string{final.ID},
	})
	st.Week = week
	s.addNews(st, "The final is set.")
	return true
}

func (s *SeasonService) decidedFinal(st *season.State) *schedule.Series {
	for i := range st.Series {
		if st.Series[i].Round == schedule.RoundFinal && st.Series[i].Decided() {
			return &st.Series[i]
		}
	}
	return nil
}

func (s *SeasonService) crownChampion(ctx context.Context, st *season.State, teamID string) {
	champion, ok := st.Team(teamID)
	if !ok {
		return
	}
	champion.Championships++
	s.addNews(st, fmt.Sprintf("%s are the champions!", champion.Name))
	s.log.InfoContext(ctx, "season decided", "champion", champion.Name, "season", st.SeasonCount)
	s.endSeason(st)
}

// endSeason moves to the offseason and lays job offers on the table. A
// top-half finish attracts up to two stronger clubs, a top-three finish
// tempts the dream club, and one modest club always calls.
func (s *SeasonService) endSeason(st *season.State) {
	st.Phase = schedule.PhaseOffseason

	rows := st.Standings()
	userRank := st.Rank(st.UserTeamID)
	userTeam, ok := st.UserTeam()
	if !ok {
		return
	}

	var offers []career.JobOffer
	offered := map[string]bool{st.UserTeamID: true}
	addOffer := func(teamID, name, expectations string, bonus int) {
		if offered[teamID] {
			return
		}
		offered[teamID] = true
		offers = append(offers, career.JobOffer{
			ID:           fmt.Sprintf("offer-%s-s%d", teamID, st.SeasonCount),
			TeamID:       teamID,
			TeamName:     name,
			SigningBonus: bonus,
			Expectations: expectations,
		})
	}

	if userRank <= len(rows)/2 {
		added := 0
		for _, row := range rows {
			if added == 2 {
				break
			}
			if row.TeamID == st.UserTeamID || row.Points <= userTeam.Points {
				continue
			}
			addOffer(row.TeamID, row.Name, "Win the title", 10)
			added++
		}
	}
	if userRank <= 3 && st.UserTeamID != st.DreamTeamID {
		if dream, ok := st.Team(st.DreamTeamID); ok {
			addOffer(dream.ID, dream.Name, "Build a dynasty", 25)
		}
	}
	// One modest club always wants a word; work up from the bottom.
	for i := len(rows) - 1; i >= 0; i-- {
		if !offered[rows[i].TeamID] {
			addOffer(rows[i].TeamID, rows[i].Name, "Rebuild", 5)
			break
		}
	}
	st.JobOffers = offers
}

// StartNewSeason rolls the career into a fresh season at the given club.
// Rosters replenish league-wide, the signing bonus lands in the wallet,
// and the schedule regenerates.
func (s *SeasonService) StartNewSeason(ctx context.Context, st *season.State, teamID string, signingBonus int) error {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.StartNewSeason")
	defer span.End()

	if _, ok := st.Team(teamID); !ok {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if err := s.rosters.ReplenishAll(ctx, st.Teams); err != nil {
		return err
	}
	fixtures, err := s.schedules.Generate(ctx, st.Teams)
	if err != nil {
		return err
	}

	st.UserTeamID = teamID
	if t, ok := st.Team(teamID); ok {
		t.Wallet += signingBonus
	}
	st.Schedule = fixtures
	st.Week = 1
	st.Phase = schedule.PhaseRegularSeason
	st.Series = nil
	st.JobOffers = nil
	st.LastMatchResult = nil
	st.AdviceByWeek = make(map[int]string)
	st.FundraiserUsed = false
	st.SeasonCount++
	if s.texts != nil {
		s.texts.Clear(ctx)
	}
	s.log.InfoContext(ctx, "new season started", "team", teamID, "season", st.SeasonCount, "bonus", signingBonus)
	return nil
}

// processWeek runs the weekly update: bills and rent, injury rehab across
// the league, the user squad's training drills, morale swings and
// scouting trips.
func (s *SeasonService) processWeek(ctx context.Context, st *season.State) {
	userTeam, ok := st.UserTeam()
	if !ok {
		return
	}

	bills := weeklyRent
	for _, scout := range st.Scouts {
		bills += scout.CostPerWeek
	}
	userTeam.Wallet -= bills
	if userTeam.Wallet < 0 {
		userTeam.Wallet = 0
	}

	// Injuries count down for every club, not only the user's.
	for i := range st.Teams {
		for j := range st.Teams[i].Roster {
			p := &st.Teams[i].Roster[j]
			if !p.IsInjured {
				continue
			}
			p.InjuryWeeksLeft--
			if p.InjuryWeeksLeft <= 0 {
				p.InjuryWeeksLeft = 0
				p.IsInjured = false
			}
			p.Fatigue = clampStat(p.Fatigue - 30)
		}
	}

	s.runTrainingWeek(st, userTeam)
	s.rollMoraleEvents(st, userTeam)
	s.runScoutingWeek(st)

	s.log.DebugContext(ctx, "week processed", "week", st.Week, "wallet", userTeam.Wallet)
}

// runTrainingWeek resolves the user squad's drills. A drill runs only when
// the player can pay its training-point cost; otherwise the player slacks
// off. Points top back up afterwards either way.
func (s *SeasonService) runTrainingWeek(st *season.State, userTeam *team.Team) {
	assistBonus := float64(userTeam.StaffLevel(team.RoleAssistant)) * 0.02
	swagBonus := userTeam.Upgrades.SwagLevel * 2

	for i := range userTeam.Roster {
		p := &userTeam.Roster[i]
		if p.IsInjured {
			p.TrainingPoints = player.WeeklyTrainingPoints
			continue
		}
		p.Fatigue = clampStat(p.Fatigue - 15)

		cost := player.FocusCosts[p.TrainingFocus]
		if p.TrainingPoints < cost {
			p.Morale = clampStat(p.Morale - 2)
			p.Fatigue = clampStat(p.Fatigue - 5)
			p.TrainingPoints = player.WeeklyTrainingPoints
			continue
		}
		p.TrainingPoints -= cost

		switch p.TrainingFocus {
		case player.FocusTechnical:
			if p.Skill < p.Potential && random.Chance(s.rnd, 0.2+assistBonus) {
				p.Skill++
			}
			p.Fatigue = clampStat(p.Fatigue + 5)
		case player.FocusPhysical:
			if p.Stamina < 100 && random.Chance(s.rnd, 0.4+assistBonus) {
				p.Stamina = clampStat(p.Stamina + 2)
			}
			p.Fatigue = clampStat(p.Fatigue + 10)
		case player.FocusTactical:
			if random.Chance(s.rnd, 0.1+assistBonus) {
				p.Vision = clampStat(p.Vision + 1)
			}
			if random.Chance(s.rnd, 0.05) {
				p.Potential = clampStat(p.Potential + 1)
			}
			p.Fatigue = clampStat(p.Fatigue + 3)
		case player.FocusRest:
			p.Morale = clampStat(p.Morale + 5 + swagBonus)
			p.Stamina = clampStat(p.Stamina + 5)
			p.Fatigue = clampStat(p.Fatigue - 30)
		default:
			if p.Skill < p.Potential && random.Chance(s.rnd, 0.1+assistBonus) {
				p.Skill++
			}
			p.Fatigue = clampStat(p.Fatigue + 2)
		}
		p.TrainingPoints = player.WeeklyTrainingPoints
	}
}

func (s *SeasonService) rollMoraleEvents(st *season.State, userTeam *team.Team) {
	if random.Chance(s.rnd, 0.25) {
		if benched := rosterOnLine(userTeam, player.LineBench); len(benched) > 0 {
			p := benched[s.rnd.IntN(len(benched))]
			p.Morale = clampStat(p.Morale - 10)
			s.addNews(st, fmt.Sprintf("%s is frustrated about riding the bench.", p.Name))
		}
	} else if random.Chance(s.rnd, 0.20) {
		if top := topScorerOnLine(userTeam, player.LineFirst); top != nil {
			top.Morale = clampStat(top.Morale + 10)
			s.addNews(st, fmt.Sprintf("%s is on a hot streak.", top.Name))
		}
	}

	if !random.Chance(s.rnd, 0.20) {
		return
	}
	switch s.rnd.IntN(3) {
	case 0:
		for i := range userTeam.Roster {
			userTeam.Roster[i].Morale = clampStat(userTeam.Roster[i].Morale + 5)
		}
		s.addNews(st, "Team barbecue night lifts the mood.")
	case 1:
		if st.Rank(st.UserTeamID) <= len(st.Teams)/2 {
			userTeam.Wallet += 3
			s.addNews(st, "A local sponsor chips in after the strong run.")
		}
	default:
		for i := range userTeam.Roster {
			userTeam.Roster[i].Morale = clampStat(userTeam.Roster[i].Morale - 5)
		}
		s.addNews(st, "Equipment malfunction sours the locker room.")
	}
}

func rosterOnLine(t *team.Team, line player.Line) []*player.Player {
	var out []*player.Player
	for i := range t.Roster {
		if t.Roster[i].Line == line {
			out = append(out, &t.Roster[i])
		}
	}
	return out
}

func topScorerOnLine(t *team.Team, line player.Line) *player.Player {
	var top *player.Player
	for i := range t.Roster {
		p := &t.Roster[i]
		if p.Line != line {
			continue
		}
		if top == nil || p.Goals+p.Assists > top.Goals+top.Assists {
			top = p
		}
	}
	return top
}

// runScoutingWeek sends every hired scout on a trip. Low-skill scouts get
// lost more often; the rest come back with a prospect.
func (s *SeasonService) runScoutingWeek(st *season.State) {
	positions := []player.Position{player.PositionForward, player.PositionCenter, player.PositionDefender}
	for _, scout := range st.Scouts {
		mishapChance := 0.02 + float64(10-scout.Skill)*0.015
		reportID := fmt.Sprintf("report-%s-s%d-w%d", scout.ID, st.SeasonCount, st.Week)
		if random.Chance(s.rnd, mishapChance) {
			st.Reports = append(st.Reports, career.Report{
				ID:          reportID,
				ScoutName:   scout.Name,
				Description: fmt.Sprintf("%s %s", scout.Name, s.prospects.Mishap()),
				Week:        st.Week,
				Season:      st.SeasonCount,
			})
			continue
		}
		wonderkid := random.Chance(s.rnd, float64(scout.Skill)/50)
		p := s.prospects.Generate(positions[s.rnd.IntN(len(positions))], wonderkid, scout.Skill)
		st.Reports = append(st.Reports, career.Report{
			ID:          reportID,
			ScoutName:   scout.Name,
			Player:      &p,
			Description: fmt.Sprintf("%s found %s up in %s.", scout.Name, p.Name, scout.Region),
			Week:        st.Week,
			Season:      st.SeasonCount,
		})
	}
}

// Advice returns the assistant's tip for the user's next fixture, cached
// per week so repeat visits do not re-query the narrator.
func (s *SeasonService) Advice(ctx context.Context, st *season.State) string {
	if tip, ok := st.AdviceByWeek[st.Week]; ok && tip != "" {
		return tip
	}
	if s.narrator == nil {
		return ""
	}
	fixture, ok := s.NextFixture(st)
	if !ok {
		return ""
	}
	userTeam, okU := st.UserTeam()
	opponentID := fixture.HomeTeamID
	if opponentID == st.UserTeamID {
		opponentID = fixture.AwayTeamID
	}
	opponent, okO := st.Team(opponentID)
	if !okU || !okO {
		return ""
	}

	key := fmt.Sprintf("advice:s%d:w%d", st.SeasonCount, st.Week)
	tip := ""
	if s.texts != nil {
		value, err := s.texts.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
			return s.narrator.Advice(ctx, userTeam, opponent), nil
		})
		if err == nil {
			tip, _ = value.(string)
		}
	} else {
		tip = s.narrator.Advice(ctx, userTeam, opponent)
	}
	if tip != "" {
		st.AdviceByWeek[st.Week] = tip
	}
	return tip
}

// prefetchRecap asks the narrator for a recap in the background. The
// season flow never waits on it; the text lands in the cache when ready.
func (s *SeasonService) prefetchRecap(ctx context.Context, st *season.State, fixtureID string, result match.Result) {
	if s.narrator == nil || s.texts == nil {
		return
	}
	home, okH := st.Team(result.HomeTeamID)
	away, okA := st.Team(result.AwayTeamID)
	if !okH || !okA {
		return
	}
	// Copies: the background task must not touch live season state.
	homeCopy, awayCopy := *home, *away
	bgCtx := context.WithoutCancel(ctx)
	s.background.Go(func() {
		text := s.narrator.Recap(bgCtx, &homeCopy, &awayCopy, result)
		if text != "" {
			s.texts.Set(bgCtx, "recap:"+fixtureID, text)
		}
	})
}

// Recap returns the prefetched recap for a fixture, if it has arrived.
func (s *SeasonService) Recap(ctx context.Context, fixtureID string) (string, bool) {
	if s.texts == nil {
		return "", false
	}
	value, ok := s.texts.Get(ctx, "recap:"+fixtureID)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok && text != ""
}

// Fundraise runs the weekly dugnad: a small cash boost, once per week.
func (s *SeasonService) Fundraise(ctx context.Context, st *season.State) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.Fundraise")
	defer span.End()

	if st.FundraiserUsed {
		return fmt.Errorf("%w: fundraiser already held this week", ErrInvalidInput)
	}
	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	userTeam.Wallet += fundraiserPayout
	st.FundraiserUsed = true
	s.addNews(st, "The parents ran a dugnad. Every bit helps.")
	return nil
}

// HireScout puts a scout on the weekly payroll.
func (s *SeasonService) HireScout(ctx context.Context, st *season.State, scout career.Scout) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.HireScout")
	defer span.End()

	if err := scout.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, hired := range st.Scouts {
		if hired.ID == scout.ID {
			return fmt.Errorf("%w: scout %s already hired", ErrInvalidInput, scout.ID)
		}
	}
	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	if userTeam.Wallet < scout.CostPerWeek {
		return fmt.Errorf("%w: scout %s costs %d per week", ErrInsufficientFunds, scout.Name, scout.CostPerWeek)
	}
	st.Scouts = append(st.Scouts, scout)
	return nil
}

// FireScout takes a scout off the payroll.
func (s *SeasonService) FireScout(ctx context.Context, st *season.State, scoutID string) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.FireScout")
	defer span.End()

	for i, scout := range st.Scouts {
		if scout.ID == scoutID {
			st.Scouts = append(st.Scouts[:i], st.Scouts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: scout %s", ErrNotFound, scoutID)
}

// SignProspect moves a scouted player onto the user roster for a fee
// scaled by the player's skill.
func (s *SeasonService) SignProspect(ctx context.Context, st *season.State, reportID string) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.SignProspect")
	defer span.End()

	idx := -1
	for i, report := range st.Reports {
		if report.ID == reportID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: report %s", ErrNotFound, reportID)
	}
	report := st.Reports[idx]
	if report.Player == nil {
		return fmt.Errorf("%w: report %s carries no player", ErrInvalidInput, reportID)
	}
	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	fee := 1 + report.Player.Skill/25
	if userTeam.Wallet < fee {
		return fmt.Errorf("%w: signing %s costs %d", ErrInsufficientFunds, report.Player.Name, fee)
	}
	userTeam.Wallet -= fee
	recruit := *report.Player
	recruit.Line = player.LineBench
	userTeam.Roster = append(userTeam.Roster, recruit)
	st.Reports = append(st.Reports[:idx], st.Reports[idx+1:]...)
	s.addNews(st, fmt.Sprintf("%s signs for the club.", recruit.Name))
	return nil
}

// SetTactics updates the user team's system.
func (s *SeasonService) SetTactics(st *season.State, tactics team.Tactics) error {
	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	userTeam.Tactics = tactics
	return nil
}

// SetTrainingFocus points one player at a drill.
func (s *SeasonService) SetTrainingFocus(st *season.State, playerID string, focus player.Focus) error {
	if _, ok := player.FocusCosts[focus]; !ok {
		return fmt.Errorf("%w: unknown focus %s", ErrInvalidInput, focus)
	}
	p, err := s.userPlayer(st, playerID)
	if err != nil {
		return err
	}
	p.TrainingFocus = focus
	return nil
}

// SetAllTrainingFocus points the whole squad at one drill.
func (s *SeasonService) SetAllTrainingFocus(st *season.State, focus player.Focus) error {
	if _, ok := player.FocusCosts[focus]; !ok {
		return fmt.Errorf("%w: unknown focus %s", ErrInvalidInput, focus)
	}
	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	for i := range userTeam.Roster {
		userTeam.Roster[i].TrainingFocus = focus
	}
	return nil
}

// SetLine moves a player to a lineup slot.
func (s *SeasonService) SetLine(st *season.State, playerID string, line player.Line) error {
	p, err := s.userPlayer(st, playerID)
	if err != nil {
		return err
	}
	p.Line = line
	return nil
}

func (s *SeasonService) userPlayer(st *season.State, playerID string) (*player.Player, error) {
	userTeam, ok := st.UserTeam()
	if !ok {
		return nil, fmt.Errorf("%w: user team", ErrNotFound)
	}
	p, ok := userTeam.FindPlayer(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}

// UpgradeStaff raises a staff member one level. Cost scales with the next
// level.
func (s *SeasonService) UpgradeStaff(ctx context.Context, st *season.State, staffID string) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.UpgradeStaff")
	defer span.End()

	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	for i := range userTeam.Staff {
		member := &userTeam.Staff[i]
		if member.ID != staffID {
			continue
		}
		if member.Level >= maxStaffLevel {
			return fmt.Errorf("%w: %s is already at the top level", ErrInvalidInput, member.Name)
		}
		cost := member.Level + 1
		if userTeam.Wallet < cost {
			return fmt.Errorf("%w: upgrade costs %d", ErrInsufficientFunds, cost)
		}
		userTeam.Wallet -= cost
		member.Level++
		return nil
	}
	return fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
}

// UpgradeKind selects which club facility to improve.
type UpgradeKind string

const (
	UpgradeEquipment UpgradeKind = "equipment"
	UpgradeSwag      UpgradeKind = "swag"
	UpgradeFacility  UpgradeKind = "facility"
)

// BuyUpgrade raises a club facility one level, at twice the next level in
// cost.
func (s *SeasonService) BuyUpgrade(ctx context.Context, st *season.State, kind UpgradeKind) error {
	_, span := startUsecaseSpan(ctx, "SeasonService.BuyUpgrade")
	defer span.End()

	userTeam, ok := st.UserTeam()
	if !ok {
		return fmt.Errorf("%w: user team", ErrNotFound)
	}
	var level *int
	switch kind {
	case UpgradeEquipment:
		level = &userTeam.Upgrades.EquipmentLevel
	case UpgradeSwag:
		level = &userTeam.Upgrades.SwagLevel
	case UpgradeFacility:
		level = &userTeam.Upgrades.FacilityLevel
	default:
		return fmt.Errorf("%w: unknown upgrade %q", ErrInvalidInput, kind)
	}
	if *level >= maxUpgradeLevel {
		return fmt.Errorf("%w: %s is already maxed out", ErrInvalidInput, kind)
	}
	cost := (*level + 1) * 2
	if userTeam.Wallet < cost {
		return fmt.Errorf("%w: upgrade costs %d", ErrInsufficientFunds, cost)
	}
	userTeam.Wallet -= cost
	*level++
	return nil
}

func (s *SeasonService) addNews(st *season.State, item string) {
	st.News = append([]string{item}, st.News...)
	if len(st.News) > maxNewsItems {
		st.News = st.News[:maxNewsItems]
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
