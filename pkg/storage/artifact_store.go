package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactStore keeps rendered timetable exports on local disk, laid out as
// <base>/<sessionID>/<exportID>.<format>. Artifacts are throwaway render
// products; anything a cleanup pass removes can be regenerated from the
// session.
type ArtifactStore struct {
	baseDir string
}

// NewArtifactStore ensures the base directory exists and returns a handle.
func NewArtifactStore(baseDir string) (*ArtifactStore, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &ArtifactStore{baseDir: baseDir}, nil
}

// Save writes a rendered artifact under its session-relative path.
func (s *ArtifactStore) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return name, nil
}

// Open returns a read-only handle on a stored artifact.
func (s *ArtifactStore) Open(name string) (*os.File, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return file, nil
}

// Delete removes a stored artifact if present.
func (s *ArtifactStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// CleanupOlderThan removes artifacts whose files are older than the TTL and
// returns the session-relative names it deleted. Empty session directories
// are left behind; they cost nothing.
func (s *ArtifactStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup artifacts: %w", err)
	}
	return deleted, nil
}

// resolve confines every artifact name to the base directory. Names arrive
// from signed tokens, so a tampered or malformed path must not reach the
// filesystem.
func (s *ArtifactStore) resolve(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("artifact name escapes the export directory: %q", name)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
