package schedule

import "testing"

func TestFindUserFixturePrefersCurrentWeek(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "m1", Week: 1, HomeTeamID: "a", AwayTeamID: "b", Played: true},
		{ID: "m2", Week: 2, HomeTeamID: "c", AwayTeamID: "a"},
		{ID: "m3", Week: 3, HomeTeamID: "a", AwayTeamID: "d"},
	}

	got, ok := FindUserFixture(matches, 2, PhaseRegularSeason, "a")
	if !ok || got.ID != "m2" {
		t.Fatalf("expected m2, got %+v ok=%v", got, ok)
	}

	// Week 3 fixture is invisible while it is not the current week.
	_, ok = FindUserFixture(matches, 1, PhaseRegularSeason, "a")
	if ok {
		t.Fatal("played current-week fixture should yield no result")
	}
}

func TestFindUserFixturePlayoffsIgnoresWeek(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "sf1", Week: 23, HomeTeamID: "a", AwayTeamID: "b"},
	}
	got, ok := FindUserFixture(matches, 24, PhasePlayoffs, "b")
	if !ok || got.ID != "sf1" {
		t.Fatalf("expected sf1 in playoffs regardless of week, got %+v ok=%v", got, ok)
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	m := Match{ID: "m1", Week: 1, HomeTeamID: "a", AwayTeamID: "a"}
	if err := m.Validate(); err == nil {
		t.Fatal("self-pairing must be rejected")
	}
	m.AwayTeamID = "b"
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
