package system

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// BaseSystem provides default implementations for common system patterns.
// Individual systems embed this and override methods as needed.
type BaseSystem struct {
	id            ID
	displayName   string
	marker        string   // configuration directory, e.g. ".claude"
	detectPaths   []string // files/dirs to check for global installation
	configSignals []string // project files indicating active use
}

func (b *BaseSystem) ID() ID              { return b.id }
func (b *BaseSystem) Name() string        { return string(b.id) }
func (b *BaseSystem) DisplayName() string { return b.displayName }
func (b *BaseSystem) Marker() string      { return b.marker }

func (b *BaseSystem) SkillsDir(root string) string {
	return filepath.Join(root, b.marker, SkillsDirName)
}

func (b *BaseSystem) IsInstalled() bool {
	for _, p := range b.detectPaths {
		if dirExists(expandPath(p)) {
			return true
		}
	}
	return false
}

func (b *BaseSystem) IsActiveInFolder(folderPath string) bool {
	for _, sig := range b.configSignals {
		if pathExists(filepath.Join(folderPath, sig)) {
			return true
		}
	}
	return dirExists(b.SkillsDir(folderPath))
}

// DetectPaths returns the global detection paths (expanded).
func (b *BaseSystem) DetectPaths() []string {
	result := make([]string, len(b.detectPaths))
	for i, p := range b.detectPaths {
		result[i] = expandPath(p)
	}
	return result
}

// --- Shared Helpers ---

// expandPath expands ~, $XDG_CONFIG (the XDG config home) and other
// environment variables.
func expandPath(p string) string {
	if strings.Contains(p, "$XDG_CONFIG") {
		p = strings.ReplaceAll(p, "$XDG_CONFIG", xdg.ConfigHome)
	}

	// Handle other env vars like $CODEX_HOME.
	if strings.Contains(p, "$") {
		p = os.Expand(p, os.Getenv)
	}

	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
