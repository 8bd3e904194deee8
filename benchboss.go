// Package benchboss is the embeddable core of a youth ice-hockey club
// management game: a tick-based match simulation engine and a season
// orchestrator (standings, playoffs, training, scouting, finances) behind
// one Game facade. It presents no process entry point; a host UI drives it.
package benchboss

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mskarstad/benchboss/external/narrator"
	"github.com/mskarstad/benchboss/internal/config"
	"github.com/mskarstad/benchboss/internal/domain/career"
	"github.com/mskarstad/benchboss/internal/domain/match"
	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/domain/save"
	"github.com/mskarstad/benchboss/internal/domain/schedule"
	"github.com/mskarstad/benchboss/internal/domain/season"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/infrastructure/prospects"
	"github.com/mskarstad/benchboss/internal/infrastructure/repository/file"
	"github.com/mskarstad/benchboss/internal/infrastructure/repository/postgres"
	"github.com/mskarstad/benchboss/internal/platform/cache"
	"github.com/mskarstad/benchboss/internal/platform/logging"
	"github.com/mskarstad/benchboss/internal/platform/random"
	"github.com/mskarstad/benchboss/internal/platform/resilience"
	"github.com/mskarstad/benchboss/internal/usecase"
)

// Re-exported types so a host application only imports this package.
type (
	Config   = config.Config
	Team     = team.Team
	Player   = player.Player
	Fixture  = schedule.Match
	Result   = match.Result
	State    = season.State
	Row      = season.Row
	Scout    = career.Scout
	Report   = career.Report
	JobOffer = career.JobOffer
	Metadata = save.Metadata
	MatchRun = usecase.MatchRun
)

// Re-exported enums the host UI needs for its controls.
const (
	UpgradeEquipment = usecase.UpgradeEquipment
	UpgradeSwag      = usecase.UpgradeSwag
	UpgradeFacility  = usecase.UpgradeFacility

	FocusGeneral   = player.FocusGeneral
	FocusTechnical = player.FocusTechnical
	FocusPhysical  = player.FocusPhysical
	FocusTactical  = player.FocusTactical
	FocusRest      = player.FocusRest
)

// Re-exported sentinels.
var (
	ErrNoSave             = save.ErrNoSave
	ErrNotFound           = usecase.ErrNotFound
	ErrInvalidInput       = usecase.ErrInvalidInput
	ErrInsufficientRoster = usecase.ErrInsufficientRoster
	ErrInsufficientFunds  = usecase.ErrInsufficientFunds
)

// ErrNoCareer is returned by operations that need a career before one has
// been started or loaded.
var ErrNoCareer = errors.New("no active career")

const textCacheTTL = 12 * time.Hour

// Options carries optional collaborators. Zero values get sensible
// defaults wired from the Config.
type Options struct {
	Logger    *logging.Logger
	Store     save.Store
	Narrator  usecase.Narrator
	Random    random.Source
	Prospects usecase.ProspectGenerator
}

// Game is the facade a host application holds. All season-state mutation
// goes through its methods; calls are serialized internally.
type Game struct {
	cfg   config.Config
	log   *logging.Logger
	store save.Store

	rosters *usecase.RosterService
	seasons *usecase.SeasonService

	mu    sync.Mutex
	state *season.State
}

func New(cfg config.Config, opts Options) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewJSON(cfg.LogLevel)
	}
	rnd := opts.Random
	if rnd == nil {
		rnd = random.New()
	}
	gen := opts.Prospects
	if gen == nil {
		gen = prospects.NewGenerator(rnd)
	}

	store := opts.Store
	if store == nil {
		var err error
		store, err = defaultStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	narrate := opts.Narrator
	if narrate == nil && cfg.NarratorEnabled {
		narrate = narrator.NewClient(narrator.ClientConfig{
			BaseURL: cfg.NarratorBaseURL,
			Timeout: cfg.NarratorTimeout,
			Logger:  log,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NarratorCircuitEnabled,
				FailureThreshold: cfg.NarratorCircuitFailures,
				OpenTimeout:      cfg.NarratorCircuitOpenFor,
				HalfOpenMaxReq:   cfg.NarratorCircuitHalfOpen,
			},
			Random: rnd,
		})
	}

	engine := usecase.NewMatchEngine(usecase.EngineConfig{}, rnd, log)
	schedules := usecase.NewScheduleService(log)
	rosters := usecase.NewRosterService(gen, log)
	seasons := usecase.NewSeasonService(
		engine,
		schedules,
		rosters,
		gen,
		narrate,
		cache.NewStore(textCacheTTL),
		rnd,
		cfg.AutoSimWorkers,
		log,
	)

	return &Game{
		cfg:     cfg,
		log:     log,
		store:   store,
		rosters: rosters,
		seasons: seasons,
	}, nil
}

func defaultStore(cfg config.Config) (save.Store, error) {
	if cfg.SaveDBURL != "" {
		if err := postgres.Migrate(cfg.SaveDBURL); err != nil {
			return nil, err
		}
		db, err := postgres.Open(cfg.SaveDBURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewSaveStore(db), nil
	}
	path := cfg.SaveFilePath
	if path == "" {
		path = "benchboss_save.json"
	}
	return file.NewSaveStore(path), nil
}

// Close drains background work. Call it on shutdown.
func (g *Game) Close() {
	g.seasons.Flush()
}

// NewCareer starts a fresh career. Pass nil teams to use the default
// league; empty rosters are filled before the schedule is generated.
func (g *Game) NewCareer(ctx context.Context, teams []team.Team, userTeamID, dreamTeamID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if teams == nil {
		teams = DefaultTeams()
	}
	if err := g.rosters.ReplenishAll(ctx, teams); err != nil {
		return err
	}
	st, err := g.seasons.NewCareer(ctx, teams, userTeamID, dreamTeamID)
	if err != nil {
		return err
	}
	g.state = st
	return nil
}

// Load restores the career from the store. save.ErrNoSave passes through
// untouched so callers can branch to NewCareer.
func (g *Game) Load(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := save.Validate(snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	st := snap.State
	if st.AdviceByWeek == nil {
		st.AdviceByWeek = make(map[int]string)
	}
	g.state = &st
	return nil
}

// Save persists the current career.
func (g *Game) Save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return ErrNoCareer
	}
	return g.store.Save(ctx, save.FromState(*g.state, time.Now().UTC()))
}

// Peek surfaces saved-game metadata for menu display without loading.
func (g *Game) Peek(ctx context.Context) (save.Metadata, error) {
	return g.store.Peek(ctx)
}

// State exposes the live aggregate for rendering. Treat it as read-only;
// mutation goes through the Game methods.
func (g *Game) State() *season.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Standings returns the current table.
func (g *Game) Standings() ([]season.Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return nil, ErrNoCareer
	}
	return g.state.Standings(), nil
}

// NextFixture resolves the user's next unplayed fixture.
func (g *Game) NextFixture() (schedule.Match, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return schedule.Match{}, false
	}
	return g.seasons.NextFixture(g.state)
}

// StartMatch begins an interactive run of the user's next fixture. The
// host drives run.Tick at its own pace and feeds the result back through
// CompleteMatch. Abandoning the run mutates nothing.
func (g *Game) StartMatch(ctx context.Context) (*usecase.MatchRun, schedule.Match, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return nil, schedule.Match{}, ErrNoCareer
	}
	return g.seasons.StartUserMatch(ctx, g.state)
}

// CompleteMatch applies a finished interactive run to the season.
func (g *Game) CompleteMatch(ctx context.Context, fixtureID string, result match.Result) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return ErrNoCareer
	}
	return g.seasons.HandleMatchComplete(ctx, g.state, fixtureID, result)
}

// PlayNextMatch runs the user's next fixture to completion synchronously
// and applies it. Batch-mode counterpart of StartMatch/CompleteMatch.
func (g *Game) PlayNextMatch(ctx context.Context) (match.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return match.Result{}, ErrNoCareer
	}
	run, fixture, err := g.seasons.StartUserMatch(ctx, g.state)
	if err != nil {
		return match.Result{}, err
	}
	for !run.Tick() {
	}
	result, err := run.Result()
	if err != nil {
		return match.Result{}, err
	}
	if err := g.seasons.HandleMatchComplete(ctx, g.state, fixture.ID, result); err != nil {
		return match.Result{}, err
	}
	return result, nil
}

// Advice returns this week's pre-match tip, cached per week.
func (g *Game) Advice(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return "", ErrNoCareer
	}
	return g.seasons.Advice(ctx, g.state), nil
}

// Recap returns the post-match writeup for a fixture once the background
// fetch has landed.
func (g *Game) Recap(ctx context.Context, fixtureID string) (string, bool) {
	return g.seasons.Recap(ctx, fixtureID)
}

// AcceptOffer signs an offseason job offer and rolls the career into the
// next season at the new club.
func (g *Game) AcceptOffer(ctx context.Context, offerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return ErrNoCareer
	}
	for _, offer := range g.state.JobOffers {
		if offer.ID == offerID {
			return g.seasons.StartNewSeason(ctx, g.state, offer.TeamID, offer.SigningBonus)
		}
	}
	return fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
}

// StayAtClub declines all offers and starts the next season at the
// current club.
func (g *Game) StayAtClub(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return ErrNoCareer
	}
	return g.seasons.StartNewSeason(ctx, g.state, g.state.UserTeamID, 0)
}

// Fundraise runs the weekly dugnad.
func (g *Game) Fundraise(ctx context.Context) error {
	return g.withState(func() error { return g.seasons.Fundraise(ctx, g.state) })
}

// HireScout puts a scout from the market on the payroll.
func (g *Game) HireScout(ctx context.Context, scout career.Scout) error {
	return g.withState(func() error { return g.seasons.HireScout(ctx, g.state, scout) })
}

// FireScout removes a hired scout.
func (g *Game) FireScout(ctx context.Context, scoutID string) error {
	return g.withState(func() error { return g.seasons.FireScout(ctx, g.state, scoutID) })
}

// SignProspect signs the player from a scouting report onto the roster.
func (g *Game) SignProspect(ctx context.Context, reportID string) error {
	return g.withState(func() error { return g.seasons.SignProspect(ctx, g.state, reportID) })
}

// SetTactics updates the user team's tactical setup.
func (g *Game) SetTactics(tactics team.Tactics) error {
	return g.withState(func() error { return g.seasons.SetTactics(g.state, tactics) })
}

// SetTrainingFocus changes one player's weekly drill.
func (g *Game) SetTrainingFocus(playerID string, focus player.Focus) error {
	return g.withState(func() error { return g.seasons.SetTrainingFocus(g.state, playerID, focus) })
}

// SetAllTrainingFocus changes the whole roster's weekly drill.
func (g *Game) SetAllTrainingFocus(focus player.Focus) error {
	return g.withState(func() error { return g.seasons.SetAllTrainingFocus(g.state, focus) })
}

// SetLine moves a player to a line slot.
func (g *Game) SetLine(playerID string, line player.Line) error {
	return g.withState(func() error { return g.seasons.SetLine(g.state, playerID, line) })
}

// UpgradeStaff levels up a staff member.
func (g *Game) UpgradeStaff(ctx context.Context, staffID string) error {
	return g.withState(func() error { return g.seasons.UpgradeStaff(ctx, g.state, staffID) })
}

// BuyUpgrade purchases the next level of a club upgrade.
func (g *Game) BuyUpgrade(ctx context.Context, kind usecase.UpgradeKind) error {
	return g.withState(func() error { return g.seasons.BuyUpgrade(ctx, g.state, kind) })
}

func (g *Game) withState(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == nil {
		return ErrNoCareer
	}
	return fn()
}
