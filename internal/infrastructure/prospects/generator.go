// Package prospects procedurally generates young players for roster
// backfill and scouting reports.
package prospects

import (
	"fmt"
	"sync/atomic"

	"github.com/mskarstad/benchboss/internal/domain/player"
	"github.com/mskarstad/benchboss/internal/platform/random"
)

var firstNames = []string{
	"Lars", "Ole", "Magnus", "Henrik", "Kristian",
	"Anders", "Jonas", "Håkon", "Eirik", "Fredrik",
	"Sven", "Erik", "Bjørn", "Tor", "Leif",
}

var lastNames = []string{
	"Hansen", "Johansen", "Olsen", "Larsen", "Andersen",
	"Pedersen", "Nilsen", "Kristiansen", "Jensen", "Karlsen",
	"Berg", "Dahl", "Lund", "Haugen", "Bakke",
}

var mishaps = []string{
	"went to the pub instead of the rink and spent all his Pøkks.",
	"fell asleep on the bus and ended up in Sweden.",
	"forgot his glasses and scouted the Zamboni driver by mistake.",
	"got into an argument about waffle recipes and was banned from the arena.",
	"spent the travel budget on pølse i vaffel.",
}

// Generator builds recruits with attributes drawn from skill bands. A
// wonderkid starts from a higher floor; a scout's skill raises both the
// floor and the ceiling.
type Generator struct {
	rnd random.Source
	seq atomic.Uint64
}

func NewGenerator(rnd random.Source) *Generator {
	if rnd == nil {
		rnd = random.New()
	}
	return &Generator{rnd: rnd}
}

func (g *Generator) Generate(pos player.Position, wonderkid bool, scoutSkill int) player.Player {
	rnd := g.rnd
	scoutBonus := scoutSkill * 3

	baseSkill := 30 + rnd.IntN(40) + scoutBonus
	if wonderkid {
		baseSkill = 60 + scoutBonus
	}

	aggression := 20 + rnd.IntN(60)
	vision := 20 + rnd.IntN(60)
	puckHandling := 20 + rnd.IntN(60)
	stamina := 60 + rnd.IntN(30)
	skill := player.ClampRating(baseSkill)

	return player.Player{
		ID:       fmt.Sprintf("prospect-%d-%d", g.seq.Add(1), rnd.IntN(1000000)),
		Name:     fmt.Sprintf("%s %s", firstNames[rnd.IntN(len(firstNames))], lastNames[rnd.IntN(len(lastNames))]),
		Position: pos,

		Skill:     skill,
		Potential: player.ClampRating(baseSkill + 20 + scoutSkill),
		Stamina:   stamina,
		Morale:    80,
		Age:       player.RecruitAge + rnd.IntN(3),

		Line:        player.LineBench,
		Personality: player.AssignPersonality(skill, aggression, vision, puckHandling, stamina),

		Aggression:   aggression,
		Vision:       vision,
		PuckHandling: puckHandling,

		TrainingFocus:  player.FocusGeneral,
		TrainingPoints: player.WeeklyTrainingPoints,
	}
}

// Mishap returns a flavor line for a scouting trip gone wrong.
func (g *Generator) Mishap() string {
	return mishaps[g.rnd.IntN(len(mishaps))]
}
