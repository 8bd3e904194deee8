package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mskarstad/benchboss/internal/domain/save"
	"github.com/mskarstad/benchboss/internal/domain/schedule"
	"github.com/mskarstad/benchboss/internal/domain/season"
)

func TestGameSaveModelRoundTrip(t *testing.T) {
	t.Parallel()
	snap := save.Snapshot{
		Version:     save.Version,
		SavedAt:     time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		TeamName:    "Storhamar U18",
		SeasonCount: 4,
		State:       season.State{UserTeamID: "t0", Week: 9, Phase: schedule.PhaseRegularSeason},
	}

	row, err := gameSaveFromSnapshot(snap)
	if err != nil {
		t.Fatalf("gameSaveFromSnapshot: %v", err)
	}
	if row.ID != 1 {
		t.Errorf("row ID = %d, want the single-row key 1", row.ID)
	}

	got, err := row.toSnapshot()
	if err != nil {
		t.Fatalf("toSnapshot: %v", err)
	}
	if got.TeamName != snap.TeamName || got.SeasonCount != snap.SeasonCount {
		t.Errorf("round-tripped metadata = %+v", got)
	}
	if got.State.UserTeamID != "t0" || got.State.Week != 9 || got.State.Phase != schedule.PhaseRegularSeason {
		t.Errorf("round-tripped state = %+v", got.State)
	}
}

func TestToSnapshotRejectsCorruptState(t *testing.T) {
	t.Parallel()
	row := gameSaveTableModel{ID: 1, Version: save.Version, State: []byte("{broken")}
	if _, err := row.toSnapshot(); err == nil {
		t.Fatal("toSnapshot of corrupt state succeeded, want decode error")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	if !isNotFound(sql.ErrNoRows) {
		t.Error("sql.ErrNoRows not recognized")
	}
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Error("wrapped sql.ErrNoRows not recognized")
	}
	if isNotFound(errors.New("pq: relation game_saves does not exist")) {
		t.Error("unrelated error treated as not found")
	}
}

// TestSaveStoreIntegration exercises the real table. It needs a reachable
// database and is skipped otherwise.
func TestSaveStoreIntegration(t *testing.T) {
	dbURL := os.Getenv("BENCHBOSS_TEST_DB_URL")
	if dbURL == "" {
		t.Skip("BENCHBOSS_TEST_DB_URL not set")
	}

	if err := Migrate(dbURL); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	db, err := Open(dbURL)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	store := NewSaveStore(db)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `DELETE FROM game_saves`); err != nil {
		t.Fatalf("reset table: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Load on empty table = %v, want ErrNoSave", err)
	}

	snap := save.Snapshot{
		Version:     save.Version,
		SavedAt:     time.Now().UTC().Truncate(time.Microsecond),
		TeamName:    "Frisk Asker U18",
		SeasonCount: 1,
		State:       season.State{UserTeamID: "t2", Week: 3},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Second save must upsert, not duplicate.
	snap.SeasonCount = 2
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SeasonCount != 2 || got.State.UserTeamID != "t2" {
		t.Errorf("loaded snapshot = %+v", got)
	}

	meta, err := store.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if meta.TeamName != "Frisk Asker U18" || meta.SeasonCount != 2 {
		t.Errorf("Peek = %+v", meta)
	}
}
