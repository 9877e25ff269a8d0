package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ScannedSkill is a skill found on disk in one target directory.
type ScannedSkill struct {
	Name     string
	Path     string // content file path
	Target   Target
	Hash     string // hash recorded in the metadata sidecar, if any
	Version  string // frontmatter version, if any
	Metadata bool   // whether a metadata sidecar was found
}

// Scanner finds installed skills in target directories, independent of
// what the lockfile records.
type Scanner struct {
	resolver *Resolver
}

// NewScanner creates a Scanner over every catalog target of resolver.
func NewScanner(resolver *Resolver) *Scanner {
	return &Scanner{resolver: resolver}
}

// Scan returns every skill found under the local and global targets,
// sorted by name then path.
func (s *Scanner) Scan() ([]ScannedSkill, error) {
	var skills []ScannedSkill
	for _, t := range s.resolver.AllTargets() {
		found, err := ScanTarget(t)
		if err != nil {
			return nil, err
		}
		skills = append(skills, found...)
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Name != skills[j].Name {
			return skills[i].Name < skills[j].Name
		}
		return skills[i].Path < skills[j].Path
	})
	return skills, nil
}

// ScanTarget lists the skills installed in a single target directory. A
// missing directory holds no skills.
func ScanTarget(t Target) ([]ScannedSkill, error) {
	entries, err := os.ReadDir(t.Dir)
	if err != nil {
		if os.IsNotExist(err) || !dirExists(t.Dir) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading skills directory: %w", err)
	}

	var skills []ScannedSkill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		contentPath := filepath.Join(t.Dir, entry.Name(), SkillFileName)
		if !fileExists(contentPath) {
			continue
		}

		skill := ScannedSkill{Name: entry.Name(), Path: contentPath, Target: t}
		if meta, err := ReadInstallMetadata(contentPath); err == nil {
			skill.Metadata = true
			skill.Hash = meta.Hash
		}
		if content, err := os.ReadFile(contentPath); err == nil {
			if fm, _, err := ParseFrontmatter(content); err == nil {
				skill.Version = fm.Version
			}
		}
		skills = append(skills, skill)
	}
	return skills, nil
}
