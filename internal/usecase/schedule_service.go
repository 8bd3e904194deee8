package usecase

import (
	"context"
	"fmt"

	"github.com/mskarstad/benchboss/internal/domain/schedule"
	"github.com/mskarstad/benchboss/internal/domain/team"
	"github.com/mskarstad/benchboss/internal/platform/logging"
)

// ScheduleService builds the regular-season fixture list.
type ScheduleService struct {
	log *logging.Logger
}

func NewScheduleService(log *logging.Logger) *ScheduleService {
	if log == nil {
		log = logging.Default()
	}
	return &ScheduleService{log: log}
}

// Generate produces a double round-robin over 2x(N-1) weeks using the
// circle method: one team anchors while the rest rotate, and the second
// half mirrors the first with home ice swapped. Every ordered home/away
// pairing appears exactly once.
func (s *ScheduleService) Generate(ctx context.Context, teams []team.Team) ([]schedule.Match, error) {
	_, span := startUsecaseSpan(ctx, "ScheduleService.Generate")
	defer span.End()

	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two teams, got %d", ErrInvalidInput, n)
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: need an even number of teams, got %d", ErrInvalidInput, n)
	}

	ids := make([]string, n)
	for i, t := range teams {
		ids[i] = t.ID
	}

	rounds := n - 1
	matches := make([]schedule.Match, 0, n*rounds)
	matchID := 1

	// ids[0] anchors; the rest rotate one slot per round.
	rotation := make([]string, n-1)
	copy(rotation, ids[1:])

	for round := 0; round < rounds; round++ {
		week := round + 1
		pairs := make([][2]string, 0, n/2)
		pairs = append(pairs, [2]string{ids[0], rotation[len(rotation)-1]})
		for i := 0; i < (n/2)-1; i++ {
			pairs = append(pairs, [2]string{rotation[i], rotation[len(rotation)-2-i]})
		}
		for _, pair := range pairs {
			home, away := pair[0], pair[1]
			// Alternate anchor home ice so no team hosts a whole half.
			if round%2 == 1 {
				home, away = away, home
			}
			matches = append(matches, schedule.Match{
				ID:         fmt.Sprintf("match-%d", matchID),
				Week:       week,
				HomeTeamID: home,
				AwayTeamID: away,
			})
			matchID++
		}
		// Rotate clockwise: last element moves to the front.
		rotation = append([]string{rotation[len(rotation)-1]}, rotation[:len(rotation)-1]...)
	}

	// Mirror half: identical pairings, home ice swapped.
	firstHalf := len(matches)
	for i := 0; i < firstHalf; i++ {
		m := matches[i]
		matches = append(matches, schedule.Match{
			ID:         fmt.Sprintf("match-%d", matchID),
			Week:       m.Week + rounds,
			HomeTeamID: m.AwayTeamID,
			AwayTeamID: m.HomeTeamID,
		})
		matchID++
	}

	s.log.Debug("schedule generated", "teams", n, "weeks", rounds*2, "fixtures", len(matches))
	return matches, nil
}
