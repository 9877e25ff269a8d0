package system

// GeminiSystem implements the System interface for the Gemini CLI.
type GeminiSystem struct {
	BaseSystem
}

// NewGemini creates a configured Gemini CLI system.
func NewGemini() *GeminiSystem {
	return &GeminiSystem{BaseSystem{
		id:            Gemini,
		displayName:   "Gemini CLI",
		marker:        ".gemini",
		detectPaths:   []string{"~/.gemini"},
		configSignals: []string{"GEMINI.md", ".gemini"},
	}}
}
