package usecase

import (
	"context"
	"testing"

	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/infrastructure/prospects"
	"github.com/mskarstad/benchboss/internal/platform/random"
)

func TestReplenishAllLifecycle(t *testing.T) {
	t.Parallel()
	svc := NewRosterService(prospects.NewGenerator(random.NewSeeded(9, 9)), nil)

	old := testTeam("h", "Home", 22)
	for i := range old.Roster {
		old.Roster[i].Age = 18 // everyone graduates after aging
		old.Roster[i].Goals = 5
		old.Roster[i].Fatigue = 50
	}
	old.Wins = 10
	old.Points = 30
	old.Wallet = 7
	old.Championships = 2
	teams := []team.Team{*old}

	if err := svc.ReplenishAll(context.Background(), teams); err != nil {
		t.Fatalf("ReplenishAll: %v", err)
	}
	got := teams[0]

	if len(got.Roster) < team.MinRoster {
		t.Errorf("roster size = %d, want >= %d", len(got.Roster), team.MinRoster)
	}
	if n := got.CountPosition(player.PositionGoalie); n < team.MinGoalies {
		t.Errorf("goalies = %d, want >= %d", n, team.MinGoalies)
	}
	if n := got.CountPosition(player.PositionDefender); n < team.MinDefenders {
		t.Errorf("defenders = %d, want >= %d", n, team.MinDefenders)
	}
	for _, p := range got.Roster {
		if p.Age > player.MaxYouthAge {
			t.Errorf("player %s aged out at %d but still rostered", p.ID, p.Age)
		}
		if p.Goals != 0 || p.Fatigue != 0 {
			t.Errorf("player %s carries season counters across the boundary", p.ID)
		}
	}
	if got.Wins != 0 || got.Points != 0 {
		t.Error("season record must reset")
	}
	if got.Wallet != 7 || got.Championships != 2 {
		t.Error("career fields must survive the reset")
	}
}

func TestReplenishKeepsUnderagePlayers(t *testing.T) {
	t.Parallel()
	svc := NewRosterService(prospects.NewGenerator(random.NewSeeded(4, 4)), nil)

	tm := testTeam("h", "Home", 22)
	for i := range tm.Roster {
		tm.Roster[i].Age = 16
	}
	keptID := tm.Roster[0].ID
	teams := []team.Team{*tm}

	if err := svc.ReplenishAll(context.Background(), teams); err != nil {
		t.Fatalf("ReplenishAll: %v", err)
	}

	p, ok := teams[0].FindPlayer(keptID)
	if !ok {
		t.Fatalf("player %s dropped despite being under the limit", keptID)
	}
	if p.Age != 17 {
		t.Errorf("age = %d, want 17 after one season", p.Age)
	}
}

func TestAssignLinesBySkillRank(t *testing.T) {
	t.Parallel()
	svc := NewRosterService(prospects.NewGenerator(random.NewSeeded(6, 6)), nil)

	tm := testTeam("h", "Home", 22)
	tm.Roster[2].Position = player.PositionGoalie
	// Spread skills so ranks are unambiguous.
	for i := range tm.Roster {
		tm.Roster[i].Skill = 90 - i*2
	}
	svc.AssignLines(tm)

	var g1Skill, g2Skill int
	for _, p := range tm.Roster {
		switch p.Line {
		case player.LineG1:
			g1Skill = p.Skill
		case player.LineG2:
			g2Skill = p.Skill
		}
	}
	if g1Skill < g2Skill {
		t.Errorf("G1 skill %d below G2 skill %d", g1Skill, g2Skill)
	}

	perLine := make(map[player.Line]int)
	bestFourthAttacker, worstFirstAttacker := -1, 101
	for _, p := range tm.Roster {
		perLine[p.Line]++
		if p.Position == player.PositionGoalie || p.Position == player.PositionDefender {
			continue
		}
		switch p.Line {
		case player.LineFirst:
			if p.Skill < worstFirstAttacker {
				worstFirstAttacker = p.Skill
			}
		case player.LineFourth:
			if p.Skill > bestFourthAttacker {
				bestFourthAttacker = p.Skill
			}
		}
	}
	if bestFourthAttacker > worstFirstAttacker {
		t.Errorf("fourth line attacker (%d) outskills first line (%d)", bestFourthAttacker, worstFirstAttacker)
	}
	if perLine[player.LineG1] != 1 || perLine[player.LineG2] != 1 {
		t.Errorf("goalie slots = G1:%d G2:%d, want one each", perLine[player.LineG1], perLine[player.LineG2])
	}
}
