package system

// ClaudeSystem implements the System interface for Claude Code.
type ClaudeSystem struct {
	BaseSystem
}

// NewClaude creates a configured Claude system.
func NewClaude() *ClaudeSystem {
	return &ClaudeSystem{BaseSystem{
		id:            Claude,
		displayName:   "Claude",
		marker:        ".claude",
		detectPaths:   []string{"~/.claude"},
		configSignals: []string{"CLAUDE.md", ".claude", ".mcp.json"},
	}}
}
