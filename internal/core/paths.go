package core

import (
	"path/filepath"
	"strings"

	"github.com/ai-open-source/ai-skills/internal/core/system"
)

const (
	// SkillFileName is the skill document written into every target.
	SkillFileName = "SKILLS.md"
	// MetadataFileName is the sidecar written next to SkillFileName.
	MetadataFileName = ".skill-metadata.json"
)

// SkillPaths returns the content and metadata paths for skillName under targetDir.
func SkillPaths(targetDir, skillName string) (contentPath, metadataPath string, err error) {
	if err := validateSkillName(skillName); err != nil {
		return "", "", err
	}
	skillDir := filepath.Join(targetDir, skillName)
	return filepath.Join(skillDir, SkillFileName), filepath.Join(skillDir, MetadataFileName), nil
}

// TargetFromPath recovers the target a content path was written to:
// <dir>/<skill>/SKILLS.md belongs to target <dir>.
func TargetFromPath(contentPath string) Target {
	dir := filepath.Dir(filepath.Dir(contentPath))
	t := Target{Dir: dir}
	if s, ok := system.FromSkillsDir(dir); ok {
		t.Platform = s
	}
	return t
}

// validateSkillName rejects names that are empty or would escape the target directory.
func validateSkillName(name string) error {
	if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
		return &InvalidSkillNameError{Name: name}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &InvalidSkillNameError{Name: name}
	}
	return nil
}
