package usecase

import (
	"context"
	"sort"

	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/platform/logging"
)

// ProspectGenerator supplies procedurally generated recruits for roster
// backfill and scouting reports.
type ProspectGenerator interface {
	Generate(pos player.Position, wonderkid bool, scoutSkill int) player.Player
	Mishap() string
}

// RosterService manages roster lifecycle across season boundaries: aging,
// graduation, recruit backfill and line assignment.
type RosterService struct {
	prospects ProspectGenerator
	log       *logging.Logger
}

func NewRosterService(prospects ProspectGenerator, log *logging.Logger) *RosterService {
	if log == nil {
		log = logging.Default()
	}
	return &RosterService{prospects: prospects, log: log}
}

// ReplenishAll runs the season-boundary lifecycle for every club in the
// league: players age one year, anyone past the age limit graduates out,
// recruits fill the composition floor, lines are redealt by skill and the
// season record resets. Career fields are left untouched.
func (s *RosterService) ReplenishAll(ctx context.Context, teams []team.Team) error {
	_, span := startUsecaseSpan(ctx, "RosterService.ReplenishAll")
	defer span.End()

	for i := range teams {
		s.replenish(&teams[i])
	}
	return nil
}

func (s *RosterService) replenish(t *team.Team) {
	kept := t.Roster[:0]
	graduated := 0
	for _, p := range t.Roster {
		p.Age++
		if p.Age > player.MaxYouthAge {
			graduated++
			continue
		}
		p.ResetSeasonCounters()
		p.TrainingPoints = player.WeeklyTrainingPoints
		kept = append(kept, p)
	}
	t.Roster = kept

	recruited := 0
	recruit := func(pos player.Position) {
		p := s.prospects.Generate(pos, false, 0)
		p.Age = player.RecruitAge
		t.Roster = append(t.Roster, p)
		recruited++
	}

	for t.CountPosition(player.PositionGoalie) < team.MinGoalies {
		recruit(player.PositionGoalie)
	}
	for t.CountPosition(player.PositionDefender) < team.MinDefenders {
		recruit(player.PositionDefender)
	}
	// Keep at least one faceoff specialist on the books.
	if t.CountPosition(player.PositionCenter) == 0 {
		recruit(player.PositionCenter)
	}
	for len(t.Roster) < team.MinRoster {
		recruit(player.PositionForward)
	}

	s.AssignLines(t)
	t.ResetRecord()

	s.log.Debug("roster replenished",
		"team", t.Name, "graduated", graduated, "recruited", recruited, "size", len(t.Roster))
}

// AssignLines redeals the depth chart by skill: the two best goalies take
// G1/G2, defenders fill four pairs, attackers fill four trios, everyone
// else sits.
func (s *RosterService) AssignLines(t *team.Team) {
	var goalies, defenders, attackers []*player.Player
	for i := range t.Roster {
		p := &t.Roster[i]
		switch p.Position {
		case player.PositionGoalie:
			goalies = append(goalies, p)
		case player.PositionDefender:
			defenders = append(defenders, p)
		default:
			attackers = append(attackers, p)
		}
	}
	bySkill := func(ps []*player.Player) {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Skill > ps[j].Skill })
	}
	bySkill(goalies)
	bySkill(defenders)
	bySkill(attackers)

	for i, p := range goalies {
		switch i {
		case 0:
			p.Line = player.LineG1
		case 1:
			p.Line = player.LineG2
		default:
			p.Line = player.LineBench
		}
	}

	lines := []player.Line{player.LineFirst, player.LineSecond, player.LineThird, player.LineFourth}
	for i, p := range defenders {
		if i < 8 {
			p.Line = lines[i/2]
		} else {
			p.Line = player.LineBench
		}
	}
	for i, p := range attackers {
		if i < 12 {
			p.Line = lines[i/3]
		} else {
			p.Line = player.LineBench
		}
	}
}
