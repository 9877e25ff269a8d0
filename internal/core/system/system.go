// Package system defines the platform catalog for ai-skills.
//
// A System represents an AI agent tool (Claude, Gemini, VS Code, etc.) that
// reads skills from a marker directory such as ".claude/skills". The catalog
// is a closed set: every platform identifier accepted from user input must
// resolve to one of the systems registered here.
package system

import (
	"path/filepath"
	"strings"
)

// ID identifies one agent platform in the catalog.
type ID string

const (
	Claude   ID = "claude"
	Gemini   ID = "gemini"
	VSCode   ID = "vscode"
	OpenCode ID = "opencode"
	Codex    ID = "codex"
	Agents   ID = "agents"
)

// SkillsDirName is the directory under each platform marker that holds skills.
const SkillsDirName = "skills"

// System describes how an AI agent tool lays out its skill directory.
type System interface {
	// Identity
	ID() ID
	Name() string        // machine name: "claude", "vscode"
	DisplayName() string // human name: "Claude", "VS Code"

	// Marker is the platform's configuration directory name, e.g. ".claude".
	Marker() string

	// SkillsDir returns root/<marker>/skills.
	SkillsDir(root string) string

	// Detection
	IsInstalled() bool                       // globally installed on this machine
	IsActiveInFolder(folderPath string) bool // has config artifacts in this folder
	DetectPaths() []string
}

// --- Catalog ---

var systems = []System{
	NewClaude(),
	NewGemini(),
	NewVSCode(),
	NewOpenCode(),
	NewCodex(),
	NewAgents(),
}

// All returns every system in catalog order.
func All() []System {
	out := make([]System, len(systems))
	copy(out, systems)
	return out
}

// Normalize canonicalizes user input for comparison: surrounding whitespace
// is trimmed, the value is lower-cased and a leading "." marker is ensured.
// "claude", ".claude" and " Claude " all normalize to ".claude".
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return name
}

// ByName returns the system matching name after normalization.
func ByName(name string) (System, bool) {
	marker := Normalize(name)
	if marker == "" {
		return nil, false
	}
	for _, s := range systems {
		if s.Marker() == marker {
			return s, true
		}
	}
	return nil, false
}

// ByID returns the system with the given identifier.
func ByID(id ID) (System, bool) {
	for _, s := range systems {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// FromSkillsDir returns the system owning a skills directory of the form
// <root>/<marker>/skills, if any.
func FromSkillsDir(dir string) (System, bool) {
	if filepath.Base(dir) != SkillsDirName {
		return nil, false
	}
	return ByName(filepath.Base(filepath.Dir(dir)))
}

// Names returns the machine names of the given systems.
func Names(systems []System) []string {
	names := make([]string, len(systems))
	for i, s := range systems {
		names[i] = s.Name()
	}
	return names
}

// DisplayNames returns the display names of the given systems.
func DisplayNames(systems []System) []string {
	names := make([]string, len(systems))
	for i, s := range systems {
		names[i] = s.DisplayName()
	}
	return names
}

// Detect returns all globally installed systems.
func Detect() []System {
	var detected []System
	for _, s := range systems {
		if s.IsInstalled() {
			detected = append(detected, s)
		}
	}
	return detected
}
