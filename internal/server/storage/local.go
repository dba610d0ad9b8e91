package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/filex"
	"github.com/neogulmap/zonemap/internal/logging"
)

// Local stores files on the local filesystem: staged entries under
// <baseDir>/temp/zones, permanent entries under <baseDir>/zones.
type Local struct {
	baseDir string
	logger  logging.Logger
}

// NewLocal creates a filesystem-backed store rooted at baseDir.
func NewLocal(baseDir string, logger logging.Logger) *Local {
	return &Local{baseDir: baseDir, logger: logger.With("store", "local")}
}

func (l *Local) tempDir() []string  { return []string{l.baseDir, "temp", "zones"} }
func (l *Local) finalDir() []string { return []string{l.baseDir, "zones"} }

func (l *Local) SaveTemp(ctx context.Context, data []byte, kind, originalName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("save temp %q: %w", originalName, common.ErrEmptyUpload)
	}

	dir, err := filex.EnsureDir(l.tempDir()...)
	if err != nil {
		return "", fmt.Errorf("save temp: %w", err)
	}

	name := TempFileName(kind, originalName)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o660); err != nil {
		return "", fmt.Errorf("save temp %q: %w", name, err)
	}

	l.logger.Info(ctx, "temp file saved", "name", name)
	return name, nil
}

func (l *Local) Confirm(ctx context.Context, tempName, finalName string) error {
	tempPath := filepath.Join(append(l.tempDir(), tempName)...)
	if _, err := os.Stat(tempPath); errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn(ctx, "temp file absent on confirm, skipping", "name", tempName)
		return nil
	}

	dir, err := filex.EnsureDir(l.finalDir()...)
	if err != nil {
		return fmt.Errorf("confirm %q: %w", finalName, err)
	}

	if err := os.Rename(tempPath, filepath.Join(dir, finalName)); err != nil {
		return fmt.Errorf("confirm %q: %w", finalName, err)
	}

	l.logger.Info(ctx, "file confirmed", "temp", tempName, "final", finalName)
	return nil
}

func (l *Local) DeleteQuietly(ctx context.Context, fileName string) {
	if fileName == "" {
		return
	}
	for _, path := range []string{
		filepath.Join(append(l.finalDir(), fileName)...),
		filepath.Join(append(l.tempDir(), fileName)...),
	} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn(ctx, "file delete failed", "path", path, "error", err.Error())
		}
	}
}

func (l *Local) Exists(ctx context.Context, fileName string) bool {
	if fileName == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(append(l.finalDir(), fileName)...))
	return err == nil
}

func (l *Local) Open(ctx context.Context, fileName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(append(l.finalDir(), fileName)...))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("open %q: %w", fileName, err)
	}
	return data, nil
}
