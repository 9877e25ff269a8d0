package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ai-open-source/ai-skills/internal/logger"
)

// Remover deletes installed skills from target directories. It never
// touches the lockfile.
type Remover struct{}

// NewRemover creates a Remover.
func NewRemover() *Remover {
	return &Remover{}
}

// RemoveResult holds one result per requested target, in target order.
type RemoveResult struct {
	Skill   string
	Results []TargetResult
	existed map[string]bool
}

// Removed returns the content paths that no longer exist after removal,
// including paths that were already absent.
func (r *RemoveResult) Removed() []string {
	return succeededPaths(r.Results)
}

// Failed returns the targets that could not be cleaned up.
func (r *RemoveResult) Failed() []TargetResult {
	return failedResults(r.Results)
}

// Existed reports whether anything was on disk for the skill in the given
// target before removal.
func (r *RemoveResult) Existed(path string) bool {
	return r.existed[path]
}

// AnyExisted reports whether the skill was found in at least one target.
func (r *RemoveResult) AnyExisted() bool {
	for _, ok := range r.existed {
		if ok {
			return true
		}
	}
	return false
}

// Remove deletes the content file, the metadata sidecar and the skill
// directory from every target, one target at a time. Missing files are not
// errors. A failing target is recorded and skipped. The returned error is a
// *TotalFailureError only when every target failed.
func (r *Remover) Remove(ctx context.Context, skill string, targets []Target) (*RemoveResult, error) {
	if err := validateSkillName(skill); err != nil {
		return nil, err
	}

	result := &RemoveResult{Skill: skill, existed: make(map[string]bool)}
	log := logger.G(ctx).WithField("skill", skill)

	for _, t := range targets {
		contentPath, metadataPath, _ := SkillPaths(t.Dir, skill)
		skillDir := filepath.Dir(contentPath)
		result.existed[contentPath] = pathExists(skillDir)

		if err := removeTarget(contentPath, metadataPath, skillDir); err != nil {
			terr := &TargetError{Op: OpRemove, Target: t, Err: err}
			log.WithField("platform", t.PlatformName()).WithField("path", t.Dir).WithError(err).Warn("remove failed for target")
			result.Results = append(result.Results, TargetResult{Target: t, Path: contentPath, Err: terr})
			continue
		}

		cleanupEmptyDir(t.Dir)
		result.Results = append(result.Results, TargetResult{Target: t, Path: contentPath})
	}

	if len(targets) > 0 && len(result.Removed()) == 0 {
		return result, newTotalFailure(OpRemove, skill, result.Results)
	}
	return result, nil
}

func removeTarget(contentPath, metadataPath, skillDir string) error {
	for _, p := range []string{contentPath, metadataPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", filepath.Base(p), err)
		}
	}
	if err := os.RemoveAll(skillDir); err != nil {
		return fmt.Errorf("removing skill directory: %w", err)
	}
	return nil
}
