package baseline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact suffixes for the per-specification pair.
const (
	digestSuffix   = ".sha256"
	snapshotSuffix = ".snap.json"
)

// ErrNotFound is returned by Load when no baseline exists for a name.
// The first verification under a name hits this path and creates the
// baseline; it is not an error condition for the caller.
var ErrNotFound = errors.New("baseline not found")

// Spec is a named, persisted baseline.
type Spec struct {
	// Name uniquely identifies the specification.
	Name string

	// Fingerprint is the lowercase hex digest of the canonical form.
	Fingerprint string

	// Snapshot is the pretty-printed canonical text, newline-terminated.
	Snapshot string
}

// Store manages baseline artifact pairs under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the baseline directory.
func (s *Store) Dir() string {
	return s.dir
}

// ValidateName rejects names that are empty or would escape the baseline
// directory when used as a file stem.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("specification name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("specification name %q contains path separators", name)
	}
	return nil
}

// Load reads the artifact pair for name. Returns ErrNotFound (wrapped) when
// the digest file does not exist. A digest without its sibling snapshot is
// corrupt storage and reported as an error, not as NotFound.
func (s *Store) Load(name string) (*Spec, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	digest, err := os.ReadFile(filepath.Join(s.dir, name+digestSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("read digest for %q: %w", name, err)
	}

	snapshot, err := os.ReadFile(filepath.Join(s.dir, name+snapshotSuffix))
	if err != nil {
		return nil, fmt.Errorf("read snapshot for %q: %w", name, err)
	}

	return &Spec{
		Name:        name,
		Fingerprint: strings.TrimSpace(string(digest)),
		Snapshot:    string(snapshot),
	}, nil
}

// Save persists the artifact pair for spec.Name, creating the baseline
// directory if absent. Each artifact is written atomically (temp file +
// rename); the pair itself is written sequentially.
func (s *Store) Save(spec *Spec) error {
	if err := ValidateName(spec.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create baseline directory: %w", err)
	}

	digestPath := filepath.Join(s.dir, spec.Name+digestSuffix)
	if err := writeAtomic(digestPath, []byte(spec.Fingerprint+"\n")); err != nil {
		return fmt.Errorf("write digest for %q: %w", spec.Name, err)
	}

	snapPath := filepath.Join(s.dir, spec.Name+snapshotSuffix)
	if err := writeAtomic(snapPath, []byte(spec.Snapshot)); err != nil {
		return fmt.Errorf("write snapshot for %q: %w", spec.Name, err)
	}

	return nil
}

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial write.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
