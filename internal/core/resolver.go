package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/ai-open-source/ai-skills/internal/core/system"
)

// Resolver turns scope options into concrete target directories.
type Resolver struct {
	localRoot  string
	globalRoot string
}

// NewResolver creates a Resolver rooted at the working directory (local)
// and the user's home directory (global).
func NewResolver() (*Resolver, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &Resolver{localRoot: cwd, globalRoot: home}, nil
}

// NewResolverWithRoots creates a Resolver with explicit base roots.
// Useful for testing.
func NewResolverWithRoots(localRoot, globalRoot string) *Resolver {
	return &Resolver{localRoot: localRoot, globalRoot: globalRoot}
}

// BaseRoot returns the directory targets for loc are built under.
func (r *Resolver) BaseRoot(loc Location) string {
	if loc == LocationLocal {
		return r.localRoot
	}
	return r.globalRoot
}

// Scope validates opts. Both location flags together, or an unknown
// platform name, is a configuration error.
func (r *Resolver) Scope(opts ScopeOptions) (Scope, error) {
	if opts.Local && opts.Global {
		return Scope{}, &ConflictingLocationError{}
	}

	scope := Scope{Location: LocationGlobal}
	if opts.Local {
		scope.Location = LocationLocal
	}

	seen := make(map[system.ID]bool)
	var selected []system.System
	for _, name := range opts.Platforms {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, ok := system.ByName(name)
		if !ok {
			return Scope{}, &UnknownPlatformError{
				Value: name,
				Valid: system.Names(system.All()),
			}
		}
		if seen[s.ID()] {
			continue
		}
		seen[s.ID()] = true
		selected = append(selected, s)
	}

	if opts.All || len(selected) == 0 {
		scope.SelectAll = true
		scope.Platforms = system.All()
		return scope, nil
	}
	scope.Platforms = selected
	return scope, nil
}

// Resolve validates opts and returns one target per resolved platform, in
// request order (catalog order when every platform is selected).
func (r *Resolver) Resolve(opts ScopeOptions) ([]Target, error) {
	scope, err := r.Scope(opts)
	if err != nil {
		return nil, err
	}
	return r.Targets(scope), nil
}

// Targets builds the target directories for a validated scope.
func (r *Resolver) Targets(scope Scope) []Target {
	root := r.BaseRoot(scope.Location)
	targets := make([]Target, 0, len(scope.Platforms))
	for _, s := range scope.Platforms {
		targets = append(targets, Target{Platform: s, Dir: s.SkillsDir(root)})
	}
	return targets
}

// AllTargets returns the targets of every platform at both locations,
// local first. Used by the scanner to find skills on disk.
func (r *Resolver) AllTargets() []Target {
	var targets []Target
	seen := make(map[string]bool)
	for _, loc := range []Location{LocationLocal, LocationGlobal} {
		for _, t := range r.Targets(Scope{Location: loc, Platforms: system.All(), SelectAll: true}) {
			if seen[t.Dir] {
				continue
			}
			seen[t.Dir] = true
			targets = append(targets, t)
		}
	}
	return targets
}
