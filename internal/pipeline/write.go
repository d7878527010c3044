package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is a file to be written by WriteArtifacts.
type Artifact struct {
	Path    string
	Content string
}

// WriteArtifacts stages every artifact in a temp file beside its target and
// only renames them into place once all of them were written. A failure
// leaves existing targets untouched.
func WriteArtifacts(artifacts ...Artifact) error {
	staged := make([]string, 0, len(artifacts))
	defer func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}()

	for _, a := range artifacts {
		tmp, err := stageFile(a.Path, a.Content)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}
	for i, a := range artifacts {
		if err := os.Rename(staged[i], a.Path); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", a.Path, err)
		}
	}
	return nil
}

func stageFile(path, content string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil { //nolint:gosec // plain text artifacts
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	return name, nil
}
