package system

// CodexSystem implements the System interface for the Codex CLI.
type CodexSystem struct {
	BaseSystem
}

// NewCodex creates a configured Codex system.
func NewCodex() *CodexSystem {
	return &CodexSystem{BaseSystem{
		id:            Codex,
		displayName:   "Codex",
		marker:        ".codex",
		detectPaths:   []string{"~/.codex", "$CODEX_HOME"},
		configSignals: []string{"codex.md", ".codex"},
	}}
}
