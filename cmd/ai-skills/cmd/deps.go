package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/registry"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	home     *core.Home
	store    *core.LockfileStore
	resolver *core.Resolver
	registry *registry.Client
	manager  *core.Manager
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps() (*deps, error) {
	home, err := core.NewHome()
	if err != nil {
		return nil, fmt.Errorf("initializing home: %w", err)
	}
	resolver, err := core.NewResolver()
	if err != nil {
		return nil, err
	}

	var cacheDir string
	if settings.CacheIndex {
		cacheDir = filepath.Join(xdg.CacheHome, "ai-skills")
	}
	client, err := registry.New(registry.Options{
		BaseURL:  settings.RegistryURL,
		Timeout:  settings.RequestTimeout,
		Attempts: settings.Retry.Attempts,
		Delay:    settings.Retry.Delay,
		MaxDelay: settings.Retry.MaxDelay,
		CacheDir: cacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing registry: %w", err)
	}

	store := home.LockfileStore()
	return &deps{
		home:     home,
		store:    store,
		resolver: resolver,
		registry: client,
		manager:  core.NewManager(store, resolver, client),
	}, nil
}
