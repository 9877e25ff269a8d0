package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ai-open-source/ai-skills/internal/core/mocks"
	"github.com/ai-open-source/ai-skills/internal/registry"
)

type managerEnv struct {
	local, global string
	store         *LockfileStore
	source        *mocks.MockSkillSource
	mgr           *Manager
}

func newManagerEnv(t *testing.T) *managerEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &managerEnv{
		local:  t.TempDir(),
		global: t.TempDir(),
		source: mocks.NewMockSkillSource(ctrl),
	}
	env.store = NewLockfileStore(filepath.Join(env.global, homeDirName, lockfileName))
	env.mgr = NewManager(env.store, NewResolverWithRoots(env.local, env.global), env.source)
	return env
}

// serve makes the mock registry publish the given skills. The maps are read
// on every call, so tests can change them between operations.
func (e *managerEnv) serve(skills map[string]string, versions map[string]string) {
	e.source.EXPECT().FetchIndex(gomock.Any()).DoAndReturn(
		func(context.Context) (*registry.Index, error) {
			idx := &registry.Index{Skills: map[string]registry.IndexEntry{}}
			for name := range skills {
				idx.Skills[name] = registry.IndexEntry{Version: versions[name]}
			}
			return idx, nil
		}).AnyTimes()
	e.source.EXPECT().FetchSkill(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string) ([]byte, error) {
			c, ok := skills[name]
			if !ok {
				return nil, registry.ErrSkillNotFound
			}
			return []byte(c), nil
		}).AnyTimes()
}

func (e *managerEnv) contentPath(root, platform, skill string) string {
	return filepath.Join(root, "."+platform, "skills", skill, SkillFileName)
}

func mustEntry(t *testing.T, s *LockfileStore, name string) LockfileEntry {
	t.Helper()
	e, ok, err := s.GetEntry(name)
	if err != nil || !ok {
		t.Fatalf("GetEntry(%q): ok=%v err=%v", name, ok, err)
	}
	return e
}

func TestManager_InstallGlobalAll(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, map[string]string{"go-testing": "1.0.0"})

	outcomes, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{}, InstallOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Status != StatusInstalled {
		t.Fatalf("outcomes = %+v, want one installed", outcomes)
	}
	if len(outcomes[0].Succeeded()) != 6 {
		t.Errorf("succeeded = %d targets, want 6", len(outcomes[0].Succeeded()))
	}

	e := mustEntry(t, env.store, "go-testing")
	if e.Version != "1.0.0" || e.Hash != ComputeHash([]byte("# v1")) {
		t.Errorf("entry = %+v", e)
	}
	if len(e.InstallPaths) != 6 {
		t.Errorf("installPaths = %v, want 6", e.InstallPaths)
	}
}

func TestManager_InstallIsIdempotent(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, map[string]string{"go-testing": "1.0.0"})
	ctx := context.Background()
	scope := ScopeOptions{Platforms: []string{"claude"}}

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, scope, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	before := mustEntry(t, env.store, "go-testing")
	path := env.contentPath(env.global, "claude", "go-testing")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Install(ctx, []string{"go-testing"}, scope, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusUpToDate {
		t.Errorf("status = %q, want up-to-date", outcomes[0].Status)
	}
	if len(outcomes[0].Results) != 0 {
		t.Errorf("results = %v, want no writes", outcomes[0].Results)
	}
	after := mustEntry(t, env.store, "go-testing")
	if !after.Timestamp.Equal(before.Timestamp) {
		t.Error("lockfile entry should not be rewritten")
	}
	info2, _ := os.Stat(path)
	if !info2.ModTime().Equal(info.ModTime()) {
		t.Error("content file should not be rewritten")
	}
}

func TestManager_InstallSameHashNewTargets(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	outcomes, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude", "gemini"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := outcomes[0].Succeeded(); len(got) != 1 || got[0] != env.contentPath(env.global, "gemini", "go-testing") {
		t.Errorf("succeeded = %v, want only the new gemini target", got)
	}
	e := mustEntry(t, env.store, "go-testing")
	if len(e.InstallPaths) != 2 {
		t.Errorf("installPaths = %v, want claude and gemini", e.InstallPaths)
	}
	if e.Version != UnknownVersion {
		t.Errorf("version = %q, want %q", e.Version, UnknownVersion)
	}
}

func TestManager_InstallChangedHashRewritesRecordedCopies(t *testing.T) {
	env := newManagerEnv(t)
	skills := map[string]string{"go-testing": "# v1"}
	env.serve(skills, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Local: true, Platforms: []string{"codex"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	skills["go-testing"] = "# v2"
	outcomes, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusUpdated {
		t.Errorf("status = %q, want updated", outcomes[0].Status)
	}

	localCopy := env.contentPath(env.local, "codex", "go-testing")
	got, _ := os.ReadFile(localCopy)
	if string(got) != "# v2" {
		t.Errorf("recorded copy outside scope = %q, want rewritten to v2", got)
	}
	e := mustEntry(t, env.store, "go-testing")
	if e.Hash != ComputeHash([]byte("# v2")) || len(e.InstallPaths) != 2 {
		t.Errorf("entry = %+v", e)
	}
}

func TestManager_InstallUnknownPlatformWritesNothing(t *testing.T) {
	env := newManagerEnv(t)

	_, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{Platforms: []string{"cursor"}}, InstallOptions{})
	var upe *UnknownPlatformError
	if !errors.As(err, &upe) {
		t.Fatalf("err = %v, want UnknownPlatformError", err)
	}
	for _, root := range []string{env.local, env.global} {
		if entries, _ := os.ReadDir(root); len(entries) != 0 {
			t.Errorf("%s should be untouched, has %d entries", root, len(entries))
		}
	}
}

func TestManager_InstallPartialFailure(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	blocked := Target{Dir: filepath.Join(env.global, ".gemini", "skills")}
	blockTarget(t, blocked)

	outcomes, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude", "gemini"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	o := outcomes[0]
	if o.Err != nil || o.Status != StatusInstalled {
		t.Fatalf("outcome = %+v, want installed", o)
	}
	if len(o.Failed()) != 1 || o.Failed()[0].Target.PlatformName() != "gemini" {
		t.Errorf("failed = %v, want gemini", o.Failed())
	}
	e := mustEntry(t, env.store, "go-testing")
	if len(e.InstallPaths) != 1 || e.InstallPaths[0] != env.contentPath(env.global, "claude", "go-testing") {
		t.Errorf("installPaths = %v, want only claude", e.InstallPaths)
	}
}

func TestManager_InstallTotalFailureSkipsLockfile(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	blockTarget(t, Target{Dir: filepath.Join(env.global, ".claude", "skills")})

	outcomes, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var tfe *TotalFailureError
	if !errors.As(outcomes[0].Err, &tfe) {
		t.Fatalf("err = %v, want TotalFailureError", outcomes[0].Err)
	}
	if _, err := os.Stat(env.store.Path()); !os.IsNotExist(err) {
		t.Error("lockfile should not be created on total failure")
	}
	if Failures(outcomes) == nil {
		t.Error("Failures should report the failed skill")
	}
}

func TestManager_InstallOverCorruptLockfile(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	if err := os.MkdirAll(filepath.Dir(env.store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusInstalled {
		t.Fatalf("status = %q, want installed", outcomes[0].Status)
	}

	data, err := os.ReadFile(env.store.Path())
	if err != nil {
		t.Fatal(err)
	}
	lf, err := parseLockfile(data)
	if err != nil {
		t.Fatalf("lockfile not rewritten as valid JSON: %v", err)
	}
	e, ok := lf.InstalledSkills["go-testing"]
	if !ok || len(e.InstallPaths) != 1 || lf.Version != CurrentLockfileVersion {
		t.Errorf("lockfile = %+v, want one go-testing entry", lf)
	}
}

func TestManager_InstallSkillMissingFromRegistry(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)

	outcomes, err := env.mgr.Install(context.Background(), []string{"nope", "go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(outcomes[0].Err, registry.ErrSkillNotFound) {
		t.Errorf("err = %v, want ErrSkillNotFound", outcomes[0].Err)
	}
	if outcomes[1].Status != StatusInstalled {
		t.Errorf("second skill status = %q, want installed", outcomes[1].Status)
	}
}

func TestManager_InstallWithoutIndex(t *testing.T) {
	env := newManagerEnv(t)
	env.source.EXPECT().FetchIndex(gomock.Any()).Return(nil, errors.New("offline"))
	env.source.EXPECT().FetchSkill(gomock.Any(), "go-testing").Return([]byte("---\nversion: 0.9.0\n---\n"), nil)

	outcomes, err := env.mgr.Install(context.Background(), []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Version != "0.9.0" {
		t.Errorf("version = %q, want frontmatter version", outcomes[0].Version)
	}
}

func TestManager_RoundTrip(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()
	scope := ScopeOptions{Local: true}

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, scope, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	outcomes, err := env.mgr.Remove(ctx, []string{"go-testing"}, scope)
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusRemoved {
		t.Errorf("status = %q, want removed", outcomes[0].Status)
	}
	if _, ok, _ := env.store.GetEntry("go-testing"); ok {
		t.Error("lockfile entry should be deleted")
	}
	for _, p := range []string{"claude", "gemini", "vscode", "opencode", "codex", "agents"} {
		if dirExists(filepath.Join(env.local, "."+p, "skills")) {
			t.Errorf("%s skills dir should be removed", p)
		}
	}
}

func TestManager_PartialRemovalKeepsRemainder(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude", "gemini", "codex"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	before := mustEntry(t, env.store, "go-testing")

	if _, err := env.mgr.Remove(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"gemini"}}); err != nil {
		t.Fatal(err)
	}
	after := mustEntry(t, env.store, "go-testing")
	if len(after.InstallPaths) != 2 {
		t.Fatalf("installPaths = %v, want claude and codex", after.InstallPaths)
	}
	for _, p := range after.InstallPaths {
		if p == env.contentPath(env.global, "gemini", "go-testing") {
			t.Error("gemini path should be gone")
		}
	}
	if after.Hash != before.Hash || after.Version != before.Version || !after.Timestamp.Equal(before.Timestamp) {
		t.Error("only install paths should change on partial removal")
	}
}

func TestManager_RemoveUntracked(t *testing.T) {
	env := newManagerEnv(t)
	ctx := context.Background()
	dir := filepath.Dir(env.contentPath(env.global, "claude", "handmade"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SkillFileName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Remove(ctx, []string{"handmade", "ghost"}, ScopeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusRemoved {
		t.Errorf("handmade status = %q, want removed", outcomes[0].Status)
	}
	if outcomes[1].Status != StatusNotInstalled || outcomes[1].Err != nil {
		t.Errorf("ghost outcome = %+v, want not-installed without error", outcomes[1])
	}
	if dirExists(dir) {
		t.Error("untracked skill should be removed from disk")
	}
}

func TestManager_RemoveOutsideRecordedScope(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	before := mustEntry(t, env.store, "go-testing")
	lockInfo, err := os.Stat(env.store.Path())
	if err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Remove(ctx, []string{"go-testing"}, ScopeOptions{Local: true})
	if err != nil {
		t.Fatal(err)
	}
	o := outcomes[0]
	if o.Status != StatusNotInstalled || o.Err != nil {
		t.Errorf("outcome = %+v, want not-installed without error", o)
	}
	if len(o.Results) != 0 {
		t.Errorf("results = %v, want none", o.Results)
	}

	after := mustEntry(t, env.store, "go-testing")
	if len(after.InstallPaths) != 1 || after.InstallPaths[0] != before.InstallPaths[0] {
		t.Errorf("installPaths = %v, want %v", after.InstallPaths, before.InstallPaths)
	}
	if info, _ := os.Stat(env.store.Path()); !info.ModTime().Equal(lockInfo.ModTime()) {
		t.Error("lockfile should not be rewritten")
	}
	if !fileExists(env.contentPath(env.global, "claude", "go-testing")) {
		t.Error("global copy should be untouched")
	}
}

func TestManager_UpdateHashGated(t *testing.T) {
	env := newManagerEnv(t)
	skills := map[string]string{"go-testing": "# v1"}
	versions := map[string]string{"go-testing": "1.0.0"}
	env.serve(skills, versions)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Update(ctx, nil, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusUpToDate {
		t.Errorf("status = %q, want up-to-date", outcomes[0].Status)
	}

	skills["go-testing"] = "# v2"
	versions["go-testing"] = "1.1.0"
	outcomes, err = env.mgr.Update(ctx, []string{"go-testing"}, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusUpdated {
		t.Fatalf("status = %q, want updated", outcomes[0].Status)
	}
	got, _ := os.ReadFile(env.contentPath(env.global, "claude", "go-testing"))
	if string(got) != "# v2" {
		t.Errorf("content = %q, want v2", got)
	}
	e := mustEntry(t, env.store, "go-testing")
	if e.Hash != ComputeHash([]byte("# v2")) || e.Version != "1.1.0" {
		t.Errorf("entry = %+v, want v2 hash and version 1.1.0", e)
	}
}

func TestManager_UpdateForce(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	path := env.contentPath(env.global, "claude", "go-testing")
	if err := os.WriteFile(path, []byte("local edit"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Update(ctx, []string{"go-testing"}, UpdateOptions{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status != StatusUpdated {
		t.Errorf("status = %q, want updated", outcomes[0].Status)
	}
	if got, _ := os.ReadFile(path); string(got) != "# v1" {
		t.Errorf("content = %q, want restored", got)
	}
}

func TestManager_UpdateRepairsCopyLeftByFailedRewrite(t *testing.T) {
	const unwritable = "/proc/version"
	if !fileExists(unwritable) {
		t.Skip("needs a readable file that cannot be written")
	}
	env := newManagerEnv(t)
	skills := map[string]string{"go-testing": "# v1"}
	env.serve(skills, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude", "gemini"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	gemini := env.contentPath(env.global, "gemini", "go-testing")
	if err := os.Remove(gemini); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(unwritable, gemini); err != nil {
		t.Fatal(err)
	}

	skills["go-testing"] = "# v2"
	outcomes, err := env.mgr.Update(ctx, nil, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if o := outcomes[0]; o.Status != StatusUpdated || len(o.Failed()) != 1 {
		t.Fatalf("outcome = %+v, want updated with one failed target", o)
	}
	if e := mustEntry(t, env.store, "go-testing"); len(e.InstallPaths) != 2 {
		t.Errorf("installPaths = %v, want the failed copy still recorded", e.InstallPaths)
	}

	// Same hash, but the gemini copy is stale: retried, not skipped.
	outcomes, err = env.mgr.Update(ctx, nil, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if o := outcomes[0]; o.Status == StatusUpToDate {
		t.Fatalf("status = %q, stale copy must not be reported up to date", o.Status)
	}

	if err := os.Remove(gemini); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gemini, []byte("# v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	claudeInfo, err := os.Stat(env.contentPath(env.global, "claude", "go-testing"))
	if err != nil {
		t.Fatal(err)
	}

	outcomes, err = env.mgr.Update(ctx, nil, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	o := outcomes[0]
	if o.Status != StatusUpdated || len(o.Results) != 1 || o.Results[0].Path != gemini {
		t.Fatalf("outcome = %+v, want only the gemini copy rewritten", o)
	}
	if got, _ := os.ReadFile(gemini); string(got) != "# v2" {
		t.Errorf("gemini content = %q, want v2", got)
	}
	if info, _ := os.Stat(env.contentPath(env.global, "claude", "go-testing")); !info.ModTime().Equal(claudeInfo.ModTime()) {
		t.Error("current claude copy should not be rewritten")
	}

	report, err := env.mgr.Status()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range report {
		if r.State != DriftOK {
			t.Errorf("state(%s) = %q, want ok", r.Path, r.State)
		}
	}
}

func TestManager_InstallRewritesDriftedCopyInScope(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()
	scope := ScopeOptions{Platforms: []string{"claude"}}

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, scope, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	path := env.contentPath(env.global, "claude", "go-testing")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcomes, err := env.mgr.Install(ctx, []string{"go-testing"}, scope, InstallOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Status == StatusUpToDate {
		t.Error("drifted copy should be rewritten")
	}
	if got, _ := os.ReadFile(path); string(got) != "# v1" {
		t.Errorf("content = %q, want v1", got)
	}
}

func TestManager_UpdateNotInstalled(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{}, nil)

	outcomes, err := env.mgr.Update(context.Background(), []string{"ghost"}, UpdateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(outcomes[0].Err, ErrNotInstalled) {
		t.Errorf("err = %v, want ErrNotInstalled", outcomes[0].Err)
	}
}

func TestManager_Status(t *testing.T) {
	env := newManagerEnv(t)
	env.serve(map[string]string{"go-testing": "# v1"}, nil)
	ctx := context.Background()

	if _, err := env.mgr.Install(ctx, []string{"go-testing"}, ScopeOptions{Platforms: []string{"claude", "gemini", "codex"}}, InstallOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.contentPath(env.global, "gemini", "go-testing"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Dir(env.contentPath(env.global, "codex", "go-testing"))); err != nil {
		t.Fatal(err)
	}
	untracked := env.contentPath(env.local, "agents", "handmade")
	if err := os.MkdirAll(filepath.Dir(untracked), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(untracked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := env.mgr.Status()
	if err != nil {
		t.Fatal(err)
	}
	states := map[string]DriftState{}
	for _, r := range report {
		states[r.Path] = r.State
	}
	want := map[string]DriftState{
		env.contentPath(env.global, "claude", "go-testing"): DriftOK,
		env.contentPath(env.global, "gemini", "go-testing"): DriftModified,
		env.contentPath(env.global, "codex", "go-testing"):  DriftMissing,
		untracked: DriftUntracked,
	}
	if len(states) != len(want) {
		t.Errorf("report = %+v, want %d paths", report, len(want))
	}
	for p, s := range want {
		if states[p] != s {
			t.Errorf("state(%s) = %q, want %q", p, states[p], s)
		}
	}
}

func TestManager_Outdated(t *testing.T) {
	env := newManagerEnv(t)
	ctx := context.Background()
	for name, version := range map[string]string{"current": "1.0.0", "stale": "1.0.0", "gone": "0.1.0"} {
		if _, err := env.store.Upsert(name, version, "h", []string{"/x/" + name + "/SKILLS.md"}); err != nil {
			t.Fatal(err)
		}
	}
	env.source.EXPECT().FetchIndex(gomock.Any()).Return(&registry.Index{Skills: map[string]registry.IndexEntry{
		"current": {Version: "1.0.0"},
		"stale":   {Version: "1.2.0"},
	}}, nil)

	infos, err := env.mgr.Outdated(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]UpdateInfo{}
	for _, i := range infos {
		got[i.Name] = i
	}
	if got["current"].HasUpdate {
		t.Error("current should not have an update")
	}
	if !got["stale"].HasUpdate || got["stale"].Available != "1.2.0" {
		t.Errorf("stale = %+v, want update to 1.2.0", got["stale"])
	}
	if !got["gone"].Removed {
		t.Errorf("gone = %+v, want removed", got["gone"])
	}
}

func TestManager_List(t *testing.T) {
	env := newManagerEnv(t)
	if _, err := env.store.Upsert("b", "1", "h", []string{"/b/SKILLS.md"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.store.Upsert("a", "1", "h", []string{"/a/SKILLS.md"}); err != nil {
		t.Fatal(err)
	}
	entries, err := env.mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name != "a" {
		t.Errorf("entries = %+v, want sorted a, b", entries)
	}
}

func TestManager_InvalidNames(t *testing.T) {
	env := newManagerEnv(t)
	ctx := context.Background()
	if _, err := env.mgr.Install(ctx, nil, ScopeOptions{}, InstallOptions{}); !IsConfigurationError(err) {
		t.Errorf("Install(nil) err = %v, want configuration error", err)
	}
	if _, err := env.mgr.Remove(ctx, []string{"../etc"}, ScopeOptions{}); !IsConfigurationError(err) {
		t.Errorf("Remove(../etc) err = %v, want configuration error", err)
	}
	if _, err := env.mgr.Remove(ctx, []string{"x"}, ScopeOptions{Local: true, Global: true}); !IsConfigurationError(err) {
		t.Errorf("Remove with both locations err = %v, want configuration error", err)
	}
}
