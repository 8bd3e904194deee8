package team

import (
	"testing"

	"github.com/mskarstad/benchboss/internal/domain/player"
)

func TestActiveRosterFiltersInjuredAndBenched(t *testing.T) {
	t.Parallel()

	tm := Team{
		ID:   "t1",
		Name: "Frost",
		Roster: []player.Player{
			{ID: "p1", Line: player.LineFirst},
			{ID: "p2", Line: player.LineBench},
			{ID: "p3", Line: player.LineSecond, IsInjured: true},
			{ID: "p4", Line: player.LineG1},
		},
	}

	active := tm.ActiveRoster()
	if len(active) != 2 {
		t.Fatalf("expected 2 active players, got %d", len(active))
	}
	if active[0].ID != "p1" || active[1].ID != "p4" {
		t.Fatalf("unexpected active roster: %+v", active)
	}
}

func TestValidateRejectsDuplicatePlayerIDs(t *testing.T) {
	t.Parallel()

	tm := Team{
		ID:   "t1",
		Name: "Frost",
		Roster: []player.Player{
			{ID: "p1"},
			{ID: "p1"},
		},
	}
	if err := tm.Validate(); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestResetRecordPreservesCareerFields(t *testing.T) {
	t.Parallel()

	tm := Team{Wins: 10, Points: 30, GoalsFor: 44, Wallet: 12, Championships: 2}
	tm.ResetRecord()

	if tm.Wins != 0 || tm.Points != 0 || tm.GoalsFor != 0 {
		t.Fatalf("season record not reset: %+v", tm)
	}
	if tm.Wallet != 12 || tm.Championships != 2 {
		t.Fatalf("career fields must survive a reset: %+v", tm)
	}
}

func TestStaffLevel(t *testing.T) {
	t.Parallel()

	tm := Team{Staff: []StaffMember{{Role: RoleHeadCoach, Level: 4}}}
	if got := tm.StaffLevel(RoleHeadCoach); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if got := tm.StaffLevel(RoleFixer); got != 0 {
		t.Fatalf("missing role should be level 0, got %d", got)
	}
}
