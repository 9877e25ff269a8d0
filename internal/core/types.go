// Package core provides the skill installation and lockfile reconciliation
// engine for ai-skills. It has zero UI dependencies and is independently
// testable.
package core

import (
	"time"

	"github.com/ai-open-source/ai-skills/internal/core/system"
)

// Location selects the base root that target directories are built under.
type Location int

const (
	// LocationGlobal installs under the user's home directory.
	LocationGlobal Location = iota
	// LocationLocal installs under the current working directory.
	LocationLocal
)

func (l Location) String() string {
	if l == LocationLocal {
		return "local"
	}
	return "global"
}

// ScopeOptions is the normalized scope selection handed over by the CLI.
// The zero value selects every platform at the global location.
type ScopeOptions struct {
	Local     bool
	Global    bool
	All       bool
	Platforms []string
}

// Scope is a validated ScopeOptions.
type Scope struct {
	Location  Location
	Platforms []system.System
	SelectAll bool
}

// Target is one resolved skills directory, e.g. ~/.claude/skills.
type Target struct {
	Platform system.System // nil when the directory does not belong to a known platform
	Dir      string
}

// PlatformName returns the platform's machine name, or the directory when
// the platform is unknown.
func (t Target) PlatformName() string {
	if t.Platform == nil {
		return t.Dir
	}
	return t.Platform.Name()
}

// InstallMetadata is the sidecar written next to every installed SKILLS.md.
type InstallMetadata struct {
	Skill       string    `json:"skill"`
	Hash        string    `json:"hash"`
	InstalledAt time.Time `json:"installedAt"`
	File        string    `json:"file"`
}

// Lockfile is the persisted ledger of installed skills.
type Lockfile struct {
	Version         int                      `json:"version"`
	InstalledSkills map[string]LockfileEntry `json:"installedSkills"`
}

// LockfileEntry records one installed skill. InstallPaths holds exactly the
// content-file paths known to exist for the skill and is never empty.
type LockfileEntry struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Hash         string    `json:"hash"`
	Timestamp    time.Time `json:"timestamp"`
	InstallPaths []string  `json:"installPaths"`
}

// SkillFrontmatter is the YAML frontmatter of a SKILLS.md document.
type SkillFrontmatter struct {
	Name          string   `yaml:"name"`
	Version       string   `yaml:"version"`
	Domains       []string `yaml:"domains"`
	LastGenerated string   `yaml:"lastGenerated"`
}

// TargetResult is the outcome of one install or remove against one target.
type TargetResult struct {
	Target Target
	Path   string // content file path
	Err    error
}

// OK reports whether the target succeeded.
func (r TargetResult) OK() bool { return r.Err == nil }

// UpdateInfo holds version information for one installed skill.
type UpdateInfo struct {
	Name      string `json:"name"`
	Installed string `json:"installed"`
	Available string `json:"available"`
	HasUpdate bool   `json:"hasUpdate"`
	Removed   bool   `json:"removed,omitempty"` // no longer published in the registry
}
