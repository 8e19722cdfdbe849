package drive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource reads files under a base directory, typically a synced copy
// of the document library. Paths never leave the directory.
type LocalSource struct {
	baseDir string
}

func NewLocalSource(baseDir string) (*LocalSource, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: DRIVE_LOCAL_DIR is required", ErrInvalidConfig)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &LocalSource{baseDir: abs}, nil
}

func (s *LocalSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolvePath(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, p)
	default:
		return nil, errors.Join(ErrFetch, err)
	}
}

// resolvePath keeps the resolved path inside baseDir.
func (s *LocalSource) resolvePath(p string) (string, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return full, nil
}
