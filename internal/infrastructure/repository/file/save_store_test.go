package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mskarstad/benchboss/internal/domain/save"
	"github.com/mskarstad/benchboss/internal/domain/season"
)

func TestSaveStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "career.json")
	store := NewSaveStore(path)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Load with no file = %v, want ErrNoSave", err)
	}
	if _, err := store.Peek(ctx); !errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Peek with no file = %v, want ErrNoSave", err)
	}

	snap := save.Snapshot{
		Version:     save.Version,
		SavedAt:     time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		TeamName:    "Frisk Asker U18",
		SeasonCount: 2,
		State:       season.State{UserTeamID: "t3", Week: 11},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Version != save.Version || got.State.UserTeamID != "t3" || got.State.Week != 11 {
		t.Errorf("loaded snapshot = %+v, want round-tripped fields", got)
	}

	meta, err := store.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if meta.TeamName != "Frisk Asker U18" || meta.SeasonCount != 2 || !meta.SavedAt.Equal(snap.SavedAt) {
		t.Errorf("Peek = %+v, want snapshot metadata", meta)
	}
}

func TestSaveStoreOverwriteIsAtomicReplacement(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "career.json")
	store := NewSaveStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, save.Snapshot{Version: save.Version, TeamName: "Old"}); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := store.Save(ctx, save.Snapshot{Version: save.Version, TeamName: "New"}); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	meta, err := store.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if meta.TeamName != "New" {
		t.Errorf("Peek after overwrite = %q, want latest save", meta.TeamName)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("save dir has %d entries, want only the save file (no temp leftovers)", len(entries))
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "career.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	store := NewSaveStore(path)

	if _, err := store.Load(context.Background()); err == nil || errors.Is(err, save.ErrNoSave) {
		t.Fatalf("Load of corrupt file = %v, want a decode error", err)
	}
}
