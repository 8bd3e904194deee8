package postgres

import (
	"context"
	"database/sql"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/mskarstad/benchboss/internal/domain/save"
)

type SaveStore struct {
	db *sqlx.DB
}

func NewSaveStore(db *sqlx.DB) *SaveStore {
	return &SaveStore{db: db}
}

func (s *SaveStore) Save(ctx context.Context, snap save.Snapshot) error {
	row, err := gameSaveFromSnapshot(snap)
	if err != nil {
		return err
	}

	const query = `INSERT INTO game_saves (id, version, team_name, season_count, saved_at, state)
VALUES (:id, :version, :team_name, :season_count, :saved_at, :state)
ON CONFLICT (id)
DO UPDATE SET
    version = EXCLUDED.version,
    team_name = EXCLUDED.team_name,
    season_count = EXCLUDED.season_count,
    saved_at = EXCLUDED.saved_at,
    state = EXCLUDED.state`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return crerr.Wrap(err, "upsert game save")
	}
	return nil
}

func (s *SaveStore) Load(ctx context.Context) (save.Snapshot, error) {
	var row gameSaveTableModel
	err := s.db.GetContext(ctx, &row, `SELECT * FROM game_saves WHERE id = 1`)
	if err != nil {
		if isNotFound(err) {
			return save.Snapshot{}, save.ErrNoSave
		}
		return save.Snapshot{}, crerr.Wrap(err, "get game save")
	}
	return row.toSnapshot()
}

func (s *SaveStore) Peek(ctx context.Context) (save.Metadata, error) {
	var row gameSaveMetaModel
	err := s.db.GetContext(ctx, &row,
		`SELECT team_name, season_count, saved_at FROM game_saves WHERE id = 1`)
	if err != nil {
		if isNotFound(err) {
			return save.Metadata{}, save.ErrNoSave
		}
		return save.Metadata{}, crerr.Wrap(err, "peek game save")
	}
	return save.Metadata{
		TeamName:    row.TeamName,
		SeasonCount: row.SeasonCount,
		SavedAt:     row.SavedAt,
	}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
