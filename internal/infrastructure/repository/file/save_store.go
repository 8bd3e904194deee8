// Package file persists the career to a single JSON file on disk, the
// default store for desktop builds.
package file

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mskarstad/benchboss/internal/domain/save"
)

const fileMode = 0o644

type SaveStore struct {
	path string
}

func NewSaveStore(path string) *SaveStore {
	return &SaveStore{path: path}
}

func (s *SaveStore) Save(ctx context.Context, snap save.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := sonic.Marshal(snap)
	if err != nil {
		return crerr.Wrap(err, "encode snapshot")
	}

	// Write-then-rename so a crash mid-write never clobbers the previous
	// save.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".benchboss-save-*")
	if err != nil {
		return crerr.Wrap(err, "create temp save file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return crerr.Wrap(err, "write snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return crerr.Wrap(err, "close temp save file")
	}
	if err := os.Chmod(tmpPath, fileMode); err != nil {
		os.Remove(tmpPath)
		return crerr.Wrap(err, "chmod save file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return crerr.Wrap(err, "replace save file")
	}
	return nil
}

func (s *SaveStore) Load(ctx context.Context) (save.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return save.Snapshot{}, err
	}

	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return save.Snapshot{}, save.ErrNoSave
		}
		return save.Snapshot{}, crerr.Wrap(err, "read save file")
	}

	var snap save.Snapshot
	if err := sonic.Unmarshal(body, &snap); err != nil {
		return save.Snapshot{}, crerr.Wrap(err, "decode snapshot")
	}
	return snap, nil
}

// Peek decodes only the top-level metadata fields, skipping the season
// state blob that dominates the file.
func (s *SaveStore) Peek(ctx context.Context) (save.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return save.Metadata{}, err
	}

	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return save.Metadata{}, save.ErrNoSave
		}
		return save.Metadata{}, crerr.Wrap(err, "read save file")
	}

	var head struct {
		TeamName    string    `json:"teamName"`
		SeasonCount int       `json:"seasonCount"`
		SavedAt     time.Time `json:"savedAt"`
	}
	if err := sonic.Unmarshal(body, &head); err != nil {
		return save.Metadata{}, crerr.Wrap(err, "decode snapshot metadata")
	}
	return save.Metadata{
		TeamName:    head.TeamName,
		SeasonCount: head.SeasonCount,
		SavedAt:     head.SavedAt,
	}, nil
}
