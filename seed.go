package benchboss

import (
	"github.com/mskarstad/benchboss/internal/domain/career"
	"github.com/mskarstad/benchboss/internal/domain/team"
)

// DefaultTeams returns the twelve clubs of the U18 Elite League with empty
// rosters. NewCareer backfills the rosters through the roster lifecycle
// before the first puck drops.
func DefaultTeams() []team.Team {
	clubs := []struct {
		id, name, city string
		colors         [2]string
	}{
		{"frisk-asker", "Frisk Asker U18", "Asker", [2]string{"#FFD700", "#000000"}},
		{"jar-jutul", "Jar/Jutul U18", "Bærum", [2]string{"#C8102E", "#FFFFFF"}},
		{"kongsvinger", "Kongsvinger U18", "Kongsvinger", [2]string{"#FF0000", "#FFFFFF"}},
		{"lillehammer", "Lillehammer U18", "Lillehammer", [2]string{"#005EB8", "#FFD100"}},
		{"lorenskog", "Lørenskog/Furuset U18", "Lørenskog", [2]string{"#FFDD00", "#003087"}},
		{"manglerud", "Manglerud Star U18", "Oslo", [2]string{"#00843D", "#FFFFFF"}},
		{"nidaros", "Nidaros U18", "Trondheim", [2]string{"#0033A0", "#C8102E"}},
		{"sparta", "Sparta Sarpsborg U18", "Sarpsborg", [2]string{"#00205B", "#FFFFFF"}},
		{"stavanger", "Stavanger U18", "Stavanger", [2]string{"#041E42", "#C8102E"}},
		{"stjernen", "Stjernen U18", "Fredrikstad", [2]string{"#D50032", "#000000"}},
		{"storhamar", "Storhamar U18", "Hamar", [2]string{"#FFB81C", "#00205B"}},
		{"valerenga", "Vålerenga U18", "Oslo", [2]string{"#002F6C", "#D22730"}},
	}

	out := make([]team.Team, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, team.Team{
			ID:     c.id,
			Name:   c.name,
			City:   c.city,
			Colors: c.colors,
			Staff: []team.StaffMember{
				{ID: "coach-" + c.id, Name: `Knut "The Whip" Knudsen`, Role: team.RoleHeadCoach, Level: 1, Specialty: "Old School"},
				{ID: "asst-" + c.id, Name: "Sven Svensen", Role: team.RoleAssistant, Level: 1, Specialty: "Drills"},
				{ID: "fixer-" + c.id, Name: `Rolf "Fixeren" Rolfsen`, Role: team.RoleFixer, Level: 1, Specialty: "Deals"},
			},
			Tactics: team.Tactics{Style: team.StyleBalanced, Aggression: team.AggressionMedium},
			Wallet:  10,
		})
	}
	return out
}

// AvailableScouts is the hirable scout market.
func AvailableScouts() []career.Scout {
	return []career.Scout{
		{ID: "s1", Name: "Jens Strakkølle", Region: "Oslo Area", CostPerWeek: 1, Skill: 3},
		{ID: "s2", Name: `Oddvar "The Eye" O`, Region: "Inlandet", CostPerWeek: 3, Skill: 7},
		{ID: "s3", Name: "Kjell B. Kjell", Region: "West Coast", CostPerWeek: 2, Skill: 5},
		{ID: "s4", Name: "Rolf Rølp", Region: "Østfold", CostPerWeek: 1, Skill: 2},
		{ID: "s5", Name: "Elite Einar", Region: "Any", CostPerWeek: 5, Skill: 9},
	}
}
