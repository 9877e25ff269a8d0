package core

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks SkillSource

import (
	"context"

	"github.com/ai-open-source/ai-skills/internal/registry"
)

// SkillSource supplies the registry index and skill documents.
// *registry.Client implements it.
type SkillSource interface {
	FetchIndex(ctx context.Context) (*registry.Index, error)
	FetchSkill(ctx context.Context, name string) ([]byte, error)
}

var _ SkillSource = (*registry.Client)(nil)
