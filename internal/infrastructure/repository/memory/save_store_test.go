package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mskarstad/benchboss/internal/domain/save"
	"github.com/mskarstad/benchboss/internal/domain/season"
)

func TestSaveStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewSaveStore()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Load on empty store = %v, want ErrNoSave", err)
	}
	if _, err := store.Peek(ctx); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Peek on empty store = %v, want ErrNoSave", err)
	}

	snap := save.Snapshot{
		Version:     save.Version,
		SavedAt:     time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		TeamName:    "Storhamar U18",
		SeasonCount: 3,
		State:       season.State{UserTeamID: "t0", Week: 7},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.State.UserTeamID != "t0" || got.State.Week != 7 {
		t.Errorf("loaded state = %+v, want round-tripped fields", got.State)
	}

	meta, err := store.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if meta.TeamName != "Storhamar U18" || meta.SeasonCount != 3 || !meta.SavedAt.Equal(snap.SavedAt) {
		t.Errorf("Peek = %+v, want snapshot metadata", meta)
	}
}

func TestSaveStoreOverwrites(t *testing.T) {
	t.Parallel()
	store := NewSaveStore()
	ctx := context.Background()

	first := save.Snapshot{Version: save.Version, TeamName: "Old", SeasonCount: 1}
	second := save.Snapshot{Version: save.Version, TeamName: "New", SeasonCount: 2}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	meta, err := store.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if meta.TeamName != "New" || meta.SeasonCount != 2 {
		t.Errorf("Peek after overwrite = %+v, want latest snapshot", meta)
	}
}
