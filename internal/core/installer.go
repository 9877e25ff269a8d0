package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ai-open-source/ai-skills/internal/logger"
)

// Installer writes skill documents and their metadata sidecars into target
// directories. It never touches the lockfile.
type Installer struct {
	now func() time.Time
}

// NewInstaller creates an Installer.
func NewInstaller() *Installer {
	return &Installer{now: time.Now}
}

// InstallResult holds one result per requested target, in target order.
type InstallResult struct {
	Skill   string
	Hash    string
	Results []TargetResult
}

// Succeeded returns the content paths that were written.
func (r *InstallResult) Succeeded() []string {
	return succeededPaths(r.Results)
}

// Failed returns the targets that could not be written.
func (r *InstallResult) Failed() []TargetResult {
	return failedResults(r.Results)
}

// Install writes content to every target, one target at a time. A failing
// target is recorded and skipped; it never aborts the remaining targets.
// The returned error is a *TotalFailureError when no target succeeded, or a
// configuration error for an invalid skill name. The result is returned in
// both cases so callers can report per-target warnings.
func (inst *Installer) Install(ctx context.Context, skill string, content []byte, targets []Target) (*InstallResult, error) {
	if err := validateSkillName(skill); err != nil {
		return nil, err
	}

	hash := ComputeHash(content)
	result := &InstallResult{Skill: skill, Hash: hash}
	log := logger.G(ctx).WithField("skill", skill)

	for _, t := range targets {
		contentPath, err := inst.installTarget(t, skill, hash, content)
		if err != nil {
			terr := &TargetError{Op: OpWrite, Target: t, Err: err}
			log.WithField("platform", t.PlatformName()).WithField("path", t.Dir).WithError(err).Warn("install failed for target")
			result.Results = append(result.Results, TargetResult{Target: t, Path: contentPath, Err: terr})
			continue
		}
		log.WithField("path", contentPath).Debug("installed skill")
		result.Results = append(result.Results, TargetResult{Target: t, Path: contentPath})
	}

	if len(result.Succeeded()) == 0 {
		return result, newTotalFailure(OpWrite, skill, result.Results)
	}
	return result, nil
}

func (inst *Installer) installTarget(t Target, skill, hash string, content []byte) (string, error) {
	contentPath, metadataPath, err := SkillPaths(t.Dir, skill)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(contentPath), 0o755); err != nil {
		return contentPath, fmt.Errorf("creating skill directory: %w", err)
	}
	if err := os.WriteFile(contentPath, content, 0o644); err != nil {
		return contentPath, fmt.Errorf("writing %s: %w", SkillFileName, err)
	}

	meta := InstallMetadata{
		Skill:       skill,
		Hash:        hash,
		InstalledAt: inst.now().UTC(),
		File:        SkillFileName,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return contentPath, fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath, append(data, '\n'), 0o644); err != nil {
		return contentPath, fmt.Errorf("writing metadata: %w", err)
	}
	return contentPath, nil
}

// ReadInstallMetadata reads the sidecar next to a content path.
func ReadInstallMetadata(contentPath string) (*InstallMetadata, error) {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(contentPath), MetadataFileName))
	if err != nil {
		return nil, err
	}
	var meta InstallMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return &meta, nil
}

func succeededPaths(results []TargetResult) []string {
	var paths []string
	for _, r := range results {
		if r.OK() {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func failedResults(results []TargetResult) []TargetResult {
	var failed []TargetResult
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
