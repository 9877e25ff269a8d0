package core

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	homeDirName    = ".ai-skills"
	lockfileName   = ".skill-lock.json"
	configFileName = "config.yaml"
)

// Home locates the ai-skills state directory (~/.ai-skills/).
type Home struct {
	dir string
}

// NewHome creates a Home using the default path (~/.ai-skills/).
func NewHome() (*Home, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &Home{dir: filepath.Join(home, homeDirName)}, nil
}

// NewHomeWithDir creates a Home rooted at a custom directory.
// Useful for testing.
func NewHomeWithDir(dir string) *Home {
	return &Home{dir: dir}
}

// Dir returns the state directory path.
func (h *Home) Dir() string { return h.dir }

// LockfilePath returns the full path to the lockfile.
func (h *Home) LockfilePath() string {
	return filepath.Join(h.dir, lockfileName)
}

// ConfigPath returns the full path to the optional config file.
func (h *Home) ConfigPath() string {
	return filepath.Join(h.dir, configFileName)
}

// LockfileStore returns a store bound to this home's lockfile.
func (h *Home) LockfileStore() *LockfileStore {
	return NewLockfileStore(h.LockfilePath())
}
