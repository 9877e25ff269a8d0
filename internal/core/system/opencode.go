package system

// OpenCodeSystem implements the System interface for the OpenCode AI coding tool.
type OpenCodeSystem struct {
	BaseSystem
}

// NewOpenCode creates a configured OpenCode system.
func NewOpenCode() *OpenCodeSystem {
	return &OpenCodeSystem{BaseSystem{
		id:            OpenCode,
		displayName:   "OpenCode",
		marker:        ".opencode",
		detectPaths:   []string{"$XDG_CONFIG/opencode", "~/.opencode"},
		configSignals: []string{"opencode.json", "opencode.jsonc", ".opencode"},
	}}
}
