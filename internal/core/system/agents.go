package system

// AgentsSystem is the tool-neutral ".agents" directory shared by agents that
// follow the AGENTS.md convention.
type AgentsSystem struct {
	BaseSystem
}

// NewAgents creates the shared .agents system.
func NewAgents() *AgentsSystem {
	return &AgentsSystem{BaseSystem{
		id:            Agents,
		displayName:   "Agents (shared)",
		marker:        ".agents",
		detectPaths:   []string{"~/.agents"},
		configSignals: []string{"AGENTS.md", ".agents"},
	}}
}
