package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/ai-open-source/ai-skills/internal/logger"
	"github.com/ai-open-source/ai-skills/internal/registry"
)

// Status is the per-skill result of a Manager operation.
type Status string

const (
	StatusInstalled    Status = "installed"
	StatusUpdated      Status = "updated"
	StatusUpToDate     Status = "up-to-date"
	StatusRemoved      Status = "removed"
	StatusNotInstalled Status = "not-installed"
	StatusFailed       Status = "failed"
)

// SkillOutcome reports what happened to one skill.
type SkillOutcome struct {
	Name    string
	Version string
	Hash    string
	Status  Status
	Results []TargetResult
	Err     error
}

// Succeeded returns the content paths the operation succeeded on.
func (o SkillOutcome) Succeeded() []string { return succeededPaths(o.Results) }

// Failed returns the targets the operation failed on.
func (o SkillOutcome) Failed() []TargetResult { return failedResults(o.Results) }

// InstallOptions configures Manager.Install.
type InstallOptions struct {
	Force bool // rewrite targets even when the content hash is unchanged
}

// UpdateOptions configures Manager.Update.
type UpdateOptions struct {
	Force bool
}

// Manager runs install, update and remove against the filesystem and keeps
// the lockfile reconciled with what is on disk.
type Manager struct {
	store     *LockfileStore
	resolver  *Resolver
	source    SkillSource
	installer *Installer
	remover   *Remover
	scanner   *Scanner
}

// NewManager creates a Manager.
func NewManager(store *LockfileStore, resolver *Resolver, source SkillSource) *Manager {
	return &Manager{
		store:     store,
		resolver:  resolver,
		source:    source,
		installer: NewInstaller(),
		remover:   NewRemover(),
		scanner:   NewScanner(resolver),
	}
}

// Install fetches each named skill and writes it to the targets selected by
// opts. Configuration errors abort before any I/O. Per-skill failures are
// reported in the outcomes; use Failures to collect them.
func (m *Manager) Install(ctx context.Context, names []string, opts ScopeOptions, iopts InstallOptions) ([]SkillOutcome, error) {
	if err := validateNames(names); err != nil {
		return nil, err
	}
	targets, err := m.resolver.Resolve(opts)
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("targets", targetDirs(targets)).Debug("resolved install targets")

	idx := m.fetchIndex(ctx)

	outcomes := make([]SkillOutcome, 0, len(names))
	for _, name := range dedupe(names) {
		outcomes = append(outcomes, m.installSkill(ctx, name, targets, idx, iopts.Force))
	}
	return outcomes, nil
}

func (m *Manager) installSkill(ctx context.Context, name string, targets []Target, idx *registry.Index, force bool) SkillOutcome {
	out := SkillOutcome{Name: name}

	indexVersion, err := lookupVersion(idx, name)
	if err != nil {
		return failed(out, err)
	}
	content, err := m.source.FetchSkill(ctx, name)
	if err != nil {
		return failed(out, err)
	}

	entry, found, err := m.store.GetEntry(name)
	if err != nil {
		return failed(out, err)
	}
	var prev *LockfileEntry
	if found {
		prev = &entry
	}

	hash, changed := NeedsUpdate(content, prev, force)
	out.Hash = hash
	out.Version = resolveVersion(indexVersion, content)

	existing := existingPaths(entry.InstallPaths)
	var writeTargets []Target
	if changed {
		writeTargets = append(writeTargets, targets...)
		writeTargets = append(writeTargets, targetsOutside(existing, targets, name)...)
	} else {
		// Copies that drifted from the recorded hash count as missing.
		writeTargets = missingTargets(targets, currentPaths(existing, entry.Hash), name)
		if len(writeTargets) == 0 {
			out.Version = entry.Version
			out.Status = StatusUpToDate
			return out
		}
	}

	res, err := m.installer.Install(ctx, name, content, writeTargets)
	if res != nil {
		out.Results = res.Results
	}
	if err != nil {
		return failed(out, err)
	}

	paths := append(existing, res.Succeeded()...)
	if _, err := m.store.Upsert(name, out.Version, hash, paths); err != nil {
		return failed(out, fmt.Errorf("updating lockfile: %w", err))
	}

	if found && changed {
		out.Status = StatusUpdated
	} else {
		out.Status = StatusInstalled
	}
	return out
}

// Update refreshes installed skills from the registry. With no names every
// skill in the lockfile is updated. Every recorded install path is
// rewritten, regardless of scope.
func (m *Manager) Update(ctx context.Context, names []string, uopts UpdateOptions) ([]SkillOutcome, error) {
	if len(names) == 0 {
		entries, err := m.store.ListEntries()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			names = append(names, e.Name)
		}
		if len(names) == 0 {
			return nil, nil
		}
	}
	if err := validateNames(names); err != nil {
		return nil, err
	}

	idx := m.fetchIndex(ctx)

	outcomes := make([]SkillOutcome, 0, len(names))
	for _, name := range dedupe(names) {
		outcomes = append(outcomes, m.updateSkill(ctx, name, idx, uopts.Force))
	}
	return outcomes, nil
}

func (m *Manager) updateSkill(ctx context.Context, name string, idx *registry.Index, force bool) SkillOutcome {
	out := SkillOutcome{Name: name}

	entry, found, err := m.store.GetEntry(name)
	if err != nil {
		return failed(out, err)
	}
	if !found {
		out.Status = StatusNotInstalled
		out.Err = fmt.Errorf("%w: %s", ErrNotInstalled, name)
		return out
	}
	out.Version = entry.Version
	out.Hash = entry.Hash

	indexVersion, err := lookupVersion(idx, name)
	if err != nil {
		return failed(out, err)
	}
	content, err := m.source.FetchSkill(ctx, name)
	if err != nil {
		return failed(out, err)
	}

	rewrite := entry.InstallPaths
	hash, needed := NeedsUpdate(content, &entry, force)
	if !needed {
		// Recorded copies left behind by an earlier failed rewrite no longer
		// match the entry hash and are repaired here.
		rewrite = stalePaths(entry.InstallPaths, entry.Hash)
		if len(rewrite) == 0 {
			out.Status = StatusUpToDate
			return out
		}
	}

	targets := make([]Target, 0, len(rewrite))
	for _, p := range rewrite {
		targets = append(targets, TargetFromPath(p))
	}

	res, err := m.installer.Install(ctx, name, content, targets)
	if res != nil {
		out.Results = res.Results
	}
	if err != nil {
		return failed(out, err)
	}

	paths := append(subtractPaths(entry.InstallPaths, rewrite), res.Succeeded()...)
	for _, f := range res.Failed() {
		if fileExists(f.Path) {
			paths = append(paths, f.Path)
		}
	}

	out.Hash = hash
	out.Version = resolveVersion(indexVersion, content)
	if _, err := m.store.Upsert(name, out.Version, hash, paths); err != nil {
		return failed(out, fmt.Errorf("updating lockfile: %w", err))
	}
	out.Status = StatusUpdated
	return out
}

// Remove deletes each named skill from the targets selected by opts and
// drops the removed paths from the lockfile. A skill missing from the
// lockfile is still removed from disk.
func (m *Manager) Remove(ctx context.Context, names []string, opts ScopeOptions) ([]SkillOutcome, error) {
	if err := validateNames(names); err != nil {
		return nil, err
	}
	targets, err := m.resolver.Resolve(opts)
	if err != nil {
		return nil, err
	}

	outcomes := make([]SkillOutcome, 0, len(names))
	for _, name := range dedupe(names) {
		outcomes = append(outcomes, m.removeSkill(ctx, name, targets))
	}
	return outcomes, nil
}

func (m *Manager) removeSkill(ctx context.Context, name string, targets []Target) SkillOutcome {
	out := SkillOutcome{Name: name}

	entry, found, err := m.store.GetEntry(name)
	if err != nil {
		return failed(out, err)
	}
	out.Version = entry.Version
	out.Hash = entry.Hash

	res, err := m.remover.Remove(ctx, name, targets)
	if res != nil {
		// Targets that never held the skill are not worth reporting.
		for _, r := range res.Results {
			if !r.OK() || res.Existed(r.Path) {
				out.Results = append(out.Results, r)
			}
		}
	}
	if err != nil {
		return failed(out, err)
	}

	if !found {
		if res.AnyExisted() {
			out.Status = StatusRemoved
		} else {
			out.Status = StatusNotInstalled
		}
		return out
	}

	remaining := subtractPaths(entry.InstallPaths, res.Removed())
	if !res.AnyExisted() && len(remaining) == len(entry.InstallPaths) {
		// Installed, but not within the requested scope.
		out.Status = StatusNotInstalled
		return out
	}
	if err := m.store.UpdatePaths(name, remaining); err != nil {
		return failed(out, fmt.Errorf("updating lockfile: %w", err))
	}
	out.Status = StatusRemoved
	return out
}

// List returns the lockfile entries sorted by name.
func (m *Manager) List() ([]LockfileEntry, error) {
	return m.store.ListEntries()
}

// DriftState describes how an installed copy compares to the lockfile.
type DriftState string

const (
	DriftOK        DriftState = "ok"
	DriftModified  DriftState = "modified"
	DriftMissing   DriftState = "missing"
	DriftUntracked DriftState = "untracked"
)

// PathStatus is the drift state of one installed copy.
type PathStatus struct {
	Skill    string     `json:"skill"`
	Path     string     `json:"path"`
	Platform string     `json:"platform"`
	State    DriftState `json:"state"`
}

// Status compares every recorded install path with the disk and reports
// skill copies found on disk that the lockfile does not record.
func (m *Manager) Status() ([]PathStatus, error) {
	entries, err := m.store.ListEntries()
	if err != nil {
		return nil, err
	}

	var report []PathStatus
	recorded := make(map[string]bool)
	for _, e := range entries {
		for _, p := range e.InstallPaths {
			recorded[filepath.Clean(p)] = true
			report = append(report, PathStatus{
				Skill:    e.Name,
				Path:     p,
				Platform: TargetFromPath(p).PlatformName(),
				State:    driftState(p, e.Hash),
			})
		}
	}

	scanned, err := m.scanner.Scan()
	if err != nil {
		return nil, err
	}
	for _, s := range scanned {
		if recorded[filepath.Clean(s.Path)] {
			continue
		}
		report = append(report, PathStatus{
			Skill:    s.Name,
			Path:     s.Path,
			Platform: s.Target.PlatformName(),
			State:    DriftUntracked,
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		if report[i].Skill != report[j].Skill {
			return report[i].Skill < report[j].Skill
		}
		return report[i].Path < report[j].Path
	})
	return report, nil
}

func driftState(path, hash string) DriftState {
	content, err := os.ReadFile(path)
	if err != nil {
		return DriftMissing
	}
	if ComputeHash(content) != hash {
		return DriftModified
	}
	return DriftOK
}

// Outdated compares installed versions with the registry index.
func (m *Manager) Outdated(ctx context.Context) ([]UpdateInfo, error) {
	entries, err := m.store.ListEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	idx, err := m.source.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]UpdateInfo, 0, len(entries))
	for _, e := range entries {
		info := UpdateInfo{Name: e.Name, Installed: e.Version}
		ie, ok := idx.Lookup(e.Name)
		if !ok {
			info.Removed = true
			infos = append(infos, info)
			continue
		}
		info.Available = ie.Version
		info.HasUpdate = IsNewer(e.Version, ie.Version)
		infos = append(infos, info)
	}
	return infos, nil
}

// Failures aggregates the errors of failed outcomes, or returns nil.
func Failures(outcomes []SkillOutcome) error {
	var merr *multierror.Error
	for _, o := range outcomes {
		if o.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", o.Name, o.Err))
		}
	}
	return merr.ErrorOrNil()
}

// fetchIndex returns the registry index, or nil when it cannot be fetched.
// Installs still proceed without it; versions then come from frontmatter.
func (m *Manager) fetchIndex(ctx context.Context) *registry.Index {
	idx, err := m.source.FetchIndex(ctx)
	if err != nil {
		logger.G(ctx).WithError(err).Warn("registry index unavailable")
		return nil
	}
	return idx
}

func lookupVersion(idx *registry.Index, name string) (string, error) {
	if idx == nil {
		return "", nil
	}
	e, ok := idx.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", registry.ErrSkillNotFound, name)
	}
	return e.Version, nil
}

func failed(out SkillOutcome, err error) SkillOutcome {
	out.Status = StatusFailed
	out.Err = err
	return out
}

func validateNames(names []string) error {
	if len(names) == 0 {
		return &InvalidSkillNameError{}
	}
	for _, n := range names {
		if err := validateSkillName(n); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// existingPaths returns the recorded paths still present on disk.
func existingPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if fileExists(p) {
			out = append(out, p)
		}
	}
	return out
}

// currentPaths returns the paths whose content still hashes to hash.
func currentPaths(paths []string, hash string) []string {
	var out []string
	for _, p := range paths {
		if driftState(p, hash) == DriftOK {
			out = append(out, p)
		}
	}
	return out
}

// stalePaths returns the paths that are missing or no longer hash to hash.
func stalePaths(paths []string, hash string) []string {
	var out []string
	for _, p := range paths {
		if driftState(p, hash) != DriftOK {
			out = append(out, p)
		}
	}
	return out
}

// missingTargets returns the targets whose content path is not among existing.
func missingTargets(targets []Target, existing []string, name string) []Target {
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[filepath.Clean(p)] = true
	}
	var out []Target
	for _, t := range targets {
		contentPath, _, _ := SkillPaths(t.Dir, name)
		if !have[filepath.Clean(contentPath)] {
			out = append(out, t)
		}
	}
	return out
}

// targetsOutside returns the targets of recorded paths not covered by targets.
func targetsOutside(recorded []string, targets []Target, name string) []Target {
	inScope := make(map[string]bool, len(targets))
	for _, t := range targets {
		contentPath, _, _ := SkillPaths(t.Dir, name)
		inScope[filepath.Clean(contentPath)] = true
	}
	var out []Target
	for _, p := range recorded {
		if !inScope[filepath.Clean(p)] {
			out = append(out, TargetFromPath(p))
		}
	}
	return out
}

func targetDirs(targets []Target) []string {
	dirs := make([]string, len(targets))
	for i, t := range targets {
		dirs[i] = t.Dir
	}
	return dirs
}

// IsConfigurationError reports whether err was raised by input validation.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
