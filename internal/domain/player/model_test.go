package player

import "testing"

func TestAssignPersonality(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                                    string
		skill, aggression, vision, puckHandling int
		stamina                                 int
		want                                    Personality
	}{
		{"enforcer beats everything", 50, 90, 80, 80, 90, PersonalityEnforcer},
		{"playmaker", 50, 40, 75, 75, 60, PersonalityPlaymaker},
		{"sniper", 80, 30, 40, 40, 60, PersonalitySniper},
		{"grinder", 60, 60, 40, 40, 85, PersonalityGrinder},
		{"two way", 60, 45, 55, 40, 75, PersonalityTwoWay},
		{"none", 50, 30, 30, 30, 50, PersonalityNone},
	}

	for _, tc := range cases {
		got := AssignPersonality(tc.skill, tc.aggression, tc.vision, tc.puckHandling, tc.stamina)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestPlayerActive(t *testing.T) {
	t.Parallel()

	p := Player{Line: LineFirst}
	if !p.Active() {
		t.Fatal("healthy lined-up player should be active")
	}
	p.IsInjured = true
	if p.Active() {
		t.Fatal("injured player must not be active")
	}
	p = Player{Line: LineBench}
	if p.Active() {
		t.Fatal("benched player must not be active")
	}
}

func TestClampRating(t *testing.T) {
	t.Parallel()

	if got := ClampRating(-5); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := ClampRating(140); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
	if got := ClampRating(55); got != 55 {
		t.Fatalf("got %d, want 55", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Player{ID: "p1", Name: "Lars Hansen", Position: PositionCenter, Skill: 60, Age: 17}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Position = "X"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for invalid position")
	}
}
