package save

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mskarstad/benchboss/internal/domain/season"
)

// ErrNoSave signals that no persisted snapshot exists. Callers fall back to
// fresh-career initialization; this is not a failure.
var ErrNoSave = errors.New("no saved game")

const Version = "1.0.0"

// Snapshot is the single serializable blob crossing the persistence
// boundary. The core does not care where it is stored.
type Snapshot struct {
	Version string    `json:"version" validate:"required"`
	SavedAt time.Time `json:"savedAt"`

	// Peek metadata, duplicated at the top level so stores can surface it
	// without deserializing the season state.
	TeamName    string `json:"teamName"`
	SeasonCount int    `json:"seasonCount"`

	State season.State `json:"state" validate:"required"`
}

// Metadata is the cheap preview a menu shows before loading a save.
type Metadata struct {
	TeamName    string    `json:"teamName"`
	SeasonCount int       `json:"seasonCount"`
	SavedAt     time.Time `json:"savedAt"`
}

// Store is the injectable load/save pair. Load and Peek return ErrNoSave
// when nothing has been persisted yet.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
	Peek(ctx context.Context) (Metadata, error)
}

var validate = validator.New()

// Validate rejects structurally invalid snapshots (e.g. hand-imported
// files missing required top-level fields). It must be called before a
// snapshot is applied; a failing snapshot is never partially applied.
func Validate(snap Snapshot) error {
	if err := validate.Struct(snap); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if snap.State.UserTeamID == "" || len(snap.State.Teams) == 0 {
		return fmt.Errorf("invalid snapshot: missing season state")
	}
	if err := snap.State.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}

// FromState builds a snapshot ready for persistence.
func FromState(st season.State, savedAt time.Time) Snapshot {
	name := ""
	if t, ok := st.Team(st.UserTeamID); ok {
		name = t.Name
	}
	return Snapshot{
		Version:     Version,
		SavedAt:     savedAt,
		TeamName:    name,
		SeasonCount: st.SeasonCount,
		State:       st,
	}
}
