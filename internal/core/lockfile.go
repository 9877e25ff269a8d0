package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tailscale/hujson"

	"github.com/ai-open-source/ai-skills/internal/logger"
)

// CurrentLockfileVersion is the lockfile schema version written by this package.
const CurrentLockfileVersion = 1

// LockfileStore owns read-modify-write access to the lockfile. Every mutation
// reads the whole document, applies the change and writes it back. There is
// no cross-process locking: concurrent writers race and the last write wins.
type LockfileStore struct {
	path string
	now  func() time.Time
}

// NewLockfileStore creates a store for the lockfile at path.
func NewLockfileStore(path string) *LockfileStore {
	return &LockfileStore{path: path, now: time.Now}
}

// Path returns the lockfile path.
func (s *LockfileStore) Path() string { return s.path }

// EmptyLockfile returns the canonical empty lockfile.
func EmptyLockfile() *Lockfile {
	return &Lockfile{
		Version:         CurrentLockfileVersion,
		InstalledSkills: map[string]LockfileEntry{},
	}
}

// Read returns the persisted lockfile. A missing or unparsable file yields the
// empty lockfile; only genuine read failures (e.g. permissions) are errors.
func (s *LockfileStore) Read() (*Lockfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyLockfile(), nil
		}
		return nil, fmt.Errorf("reading lockfile: %w", err)
	}

	lf, err := parseLockfile(data)
	if err != nil {
		logger.L.WithField("path", s.path).WithError(err).Warn("lockfile is corrupt, starting from an empty lockfile")
		return EmptyLockfile(), nil
	}
	return lf, nil
}

// parseLockfile decodes a lockfile, tolerating comments and trailing commas
// left behind by hand edits. Entries without install paths are dropped.
func parseLockfile(data []byte) (*Lockfile, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	var lf Lockfile
	if err := json.Unmarshal(std, &lf); err != nil {
		return nil, err
	}
	if lf.Version == 0 {
		lf.Version = CurrentLockfileVersion
	}
	if lf.InstalledSkills == nil {
		lf.InstalledSkills = map[string]LockfileEntry{}
	}
	for name, e := range lf.InstalledSkills {
		if len(e.InstallPaths) == 0 {
			delete(lf.InstalledSkills, name)
			continue
		}
		if e.Name == "" {
			e.Name = name
			lf.InstalledSkills[name] = e
		}
	}
	return &lf, nil
}

// Write persists lf atomically, creating the parent directory first.
func (s *LockfileStore) Write(lf *Lockfile) error {
	if lf.Version == 0 {
		lf.Version = CurrentLockfileVersion
	}
	if lf.InstalledSkills == nil {
		lf.InstalledSkills = map[string]LockfileEntry{}
	}

	// Map keys are emitted sorted, so output is deterministic.
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lockfile: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing lockfile: %w", err)
	}
	return nil
}

// Upsert replaces or inserts the entry for name with a fresh timestamp.
func (s *LockfileStore) Upsert(name, version, hash string, installPaths []string) (LockfileEntry, error) {
	paths := normalizePaths(installPaths)
	if len(paths) == 0 {
		return LockfileEntry{}, fmt.Errorf("upserting %q: no install paths", name)
	}

	lf, err := s.Read()
	if err != nil {
		return LockfileEntry{}, err
	}

	entry := LockfileEntry{
		Name:         name,
		Version:      version,
		Hash:         hash,
		Timestamp:    s.now().UTC(),
		InstallPaths: paths,
	}
	lf.InstalledSkills[name] = entry

	if err := s.Write(lf); err != nil {
		return LockfileEntry{}, err
	}
	return entry, nil
}

// UpdatePaths replaces only the install paths of an existing entry. An empty
// path list deletes the entry, since empty entries never persist.
func (s *LockfileStore) UpdatePaths(name string, installPaths []string) error {
	lf, err := s.Read()
	if err != nil {
		return err
	}
	entry, ok := lf.InstalledSkills[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	paths := normalizePaths(installPaths)
	if len(paths) == 0 {
		delete(lf.InstalledSkills, name)
	} else {
		entry.InstallPaths = paths
		lf.InstalledSkills[name] = entry
	}
	return s.Write(lf)
}

// Remove deletes the entry for name. Removing an absent entry is a no-op
// and does not touch the file.
func (s *LockfileStore) Remove(name string) error {
	lf, err := s.Read()
	if err != nil {
		return err
	}
	if _, ok := lf.InstalledSkills[name]; !ok {
		return nil
	}
	delete(lf.InstalledSkills, name)
	return s.Write(lf)
}

// GetEntry returns the entry for name.
func (s *LockfileStore) GetEntry(name string) (LockfileEntry, bool, error) {
	lf, err := s.Read()
	if err != nil {
		return LockfileEntry{}, false, err
	}
	e, ok := lf.InstalledSkills[name]
	return e, ok, nil
}

// ListEntries returns all entries sorted by name.
func (s *LockfileStore) ListEntries() ([]LockfileEntry, error) {
	lf, err := s.Read()
	if err != nil {
		return nil, err
	}
	entries := make([]LockfileEntry, 0, len(lf.InstalledSkills))
	for _, e := range lf.InstalledSkills {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// normalizePaths cleans, deduplicates and sorts paths.
func normalizePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// subtractPaths returns the paths in from that are not in remove.
func subtractPaths(from, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, p := range remove {
		drop[filepath.Clean(p)] = true
	}
	var out []string
	for _, p := range from {
		if !drop[filepath.Clean(p)] {
			out = append(out, p)
		}
	}
	return out
}
