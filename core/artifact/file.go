package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSink writes artifacts to the local filesystem.
type FileSink struct {
	// Root is joined with relative artifact paths. Empty means the working directory.
	Root   string
	logger *zap.Logger
}

// NewFileSink creates a sink rooted at the working directory.
func NewFileSink(logger *zap.Logger) *FileSink {
	return &FileSink{logger: logger}
}

// NewFileSinkAt creates a sink rooted at root.
func NewFileSinkAt(root string, logger *zap.Logger) *FileSink {
	return &FileSink{Root: root, logger: logger}
}

func (s *FileSink) resolve(path string) string {
	if s.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

// rename is swapped in tests to simulate a failing filesystem.
var rename = os.Rename

type pendingWrite struct {
	target string
	temp   string
	// prev is the content replaced by the write; existed is false when the
	// target was created.
	prev    []byte
	existed bool
}

// Flush writes all changed artifacts via temporary files and renames them into
// place only once every temporary file is complete. When a rename fails the
// targets already replaced are restored.
func (s *FileSink) Flush(ctx context.Context, artifacts []Artifact) error {
	_, err := s.FlushRevertible(ctx, artifacts)
	return err
}

// FlushRevertible implements Reverter. The returned Revert puts back the
// previous content of every file the flush replaced and removes the files it
// created.
func (s *FileSink) FlushRevertible(ctx context.Context, artifacts []Artifact) (Revert, error) {
	var pending []pendingWrite
	cleanup := func() {
		for _, p := range pending {
			_ = os.Remove(p.temp)
		}
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			cleanup()
			return nil, err
		}

		target := s.resolve(a.Path)
		prev, existed, err := readExisting(target)
		if err != nil {
			cleanup()
			return nil, err
		}
		if existed && bytes.Equal(prev, a.Data) {
			s.logger.Debug("Artifact unchanged", zap.String("path", target))
			continue
		}

		temp, err := writeTemp(target, a.Data)
		if err != nil {
			cleanup()
			return nil, err
		}
		pending = append(pending, pendingWrite{target: target, temp: temp, prev: prev, existed: existed})
	}

	for i, p := range pending {
		if err := rename(p.temp, p.target); err != nil {
			for _, rest := range pending[i:] {
				_ = os.Remove(rest.temp)
			}
			if restoreErr := s.restore(pending[:i]); restoreErr != nil {
				s.logger.Error("Failed to restore artifacts", zap.Error(restoreErr))
			}
			return nil, fmt.Errorf("failed to move %s into place: %w", p.target, err)
		}
		s.logger.Info("Wrote artifact", zap.String("path", p.target))
	}

	return func() error { return s.restore(pending) }, nil
}

// restore undoes written in reverse order.
func (s *FileSink) restore(written []pendingWrite) error {
	var errs []error
	for i := len(written) - 1; i >= 0; i-- {
		p := written[i]
		if !p.existed {
			if err := os.Remove(p.target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("failed to remove %s: %w", p.target, err))
			}
			continue
		}

		temp, err := writeTemp(p.target, p.prev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := rename(temp, p.target); err != nil {
			_ = os.Remove(temp)
			errs = append(errs, fmt.Errorf("failed to restore %s: %w", p.target, err))
			continue
		}
		s.logger.Warn("Restored artifact", zap.String("path", p.target))
	}
	return errors.Join(errs...)
}

// Stale returns the paths whose on-disk content differs from the artifact, in
// artifact order. Missing files are stale.
func (s *FileSink) Stale(artifacts []Artifact) ([]string, error) {
	var stale []string
	for _, a := range artifacts {
		target := s.resolve(a.Path)
		prev, existed, err := readExisting(target)
		if err != nil {
			return nil, err
		}
		if !existed || !bytes.Equal(prev, a.Data) {
			stale = append(stale, target)
		}
	}
	return stale, nil
}

func readExisting(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

func writeTemp(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", target, err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	return name, nil
}
