package baseline

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactWriter persists on-failure copies of the actual canonical text
// for post-mortem inspection. Artifacts are ephemeral: overwritten on each
// failing run and never consulted as input to future verifications.
type ArtifactWriter struct {
	dir string
}

// NewArtifactWriter creates a writer rooted at dir.
func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{dir: dir}
}

// Write stores the actual canonical text for name and returns the path.
func (w *ArtifactWriter) Write(name, text string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}

	path := filepath.Join(w.dir, name+".actual.json")
	if err := writeAtomic(path, []byte(text)); err != nil {
		return "", fmt.Errorf("write mismatch artifact for %q: %w", name, err)
	}
	return path, nil
}
