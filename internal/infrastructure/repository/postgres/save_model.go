package postgres

import (
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mskarstad/benchboss/internal/domain/save"
	"github.com/mskarstad/benchboss/internal/domain/season"
)

type gameSaveTableModel struct {
	ID          int16     `db:"id"`
	Version     string    `db:"version"`
	TeamName    string    `db:"team_name"`
	SeasonCount int       `db:"season_count"`
	SavedAt     time.Time `db:"saved_at"`
	State       []byte    `db:"state"`
}

type gameSaveMetaModel struct {
	TeamName    string    `db:"team_name"`
	SeasonCount int       `db:"season_count"`
	SavedAt     time.Time `db:"saved_at"`
}

func gameSaveFromSnapshot(snap save.Snapshot) (gameSaveTableModel, error) {
	state, err := sonic.Marshal(snap.State)
	if err != nil {
		return gameSaveTableModel{}, crerr.Wrap(err, "encode season state")
	}
	return gameSaveTableModel{
		ID:          1,
		Version:     snap.Version,
		TeamName:    snap.TeamName,
		SeasonCount: snap.SeasonCount,
		SavedAt:     snap.SavedAt,
		State:       state,
	}, nil
}

func (m gameSaveTableModel) toSnapshot() (save.Snapshot, error) {
	var st season.State
	if err := sonic.Unmarshal(m.State, &st); err != nil {
		return save.Snapshot{}, crerr.Wrap(err, "decode season state")
	}
	return save.Snapshot{
		Version:     m.Version,
		SavedAt:     m.SavedAt,
		TeamName:    m.TeamName,
		SeasonCount: m.SeasonCount,
		State:       st,
	}, nil
}
