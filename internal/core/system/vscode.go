package system

// VSCodeSystem implements the System interface for VS Code with GitHub Copilot.
type VSCodeSystem struct {
	BaseSystem
}

// NewVSCode creates a configured VS Code system.
func NewVSCode() *VSCodeSystem {
	return &VSCodeSystem{BaseSystem{
		id:            VSCode,
		displayName:   "VS Code",
		marker:        ".vscode",
		detectPaths:   []string{"~/.vscode", "~/.copilot"},
		configSignals: []string{".vscode", ".github/copilot-instructions.md"},
	}}
}
