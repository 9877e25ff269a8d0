package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrConfiguration matches every input error raised before any I/O.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotInstalled is returned for skills missing from the lockfile.
	ErrNotInstalled = errors.New("skill is not installed")
)

// ConflictingLocationError is returned when both local and global are requested.
type ConflictingLocationError struct{}

func (e *ConflictingLocationError) Error() string {
	return "--local and --global are mutually exclusive"
}

func (e *ConflictingLocationError) Is(target error) bool { return target == ErrConfiguration }

// UnknownPlatformError is returned for a platform name outside the catalog.
type UnknownPlatformError struct {
	Value string
	Valid []string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q; available: %s", e.Value, strings.Join(e.Valid, ", "))
}

func (e *UnknownPlatformError) Is(target error) bool { return target == ErrConfiguration }

// InvalidSkillNameError is returned for names that cannot be a directory name.
type InvalidSkillNameError struct {
	Name string
}

func (e *InvalidSkillNameError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return "skill name is required"
	}
	return fmt.Sprintf("invalid skill name %q", e.Name)
}

func (e *InvalidSkillNameError) Is(target error) bool { return target == ErrConfiguration }

// Target operations reported by TargetError.
const (
	OpWrite  = "write"
	OpRemove = "remove"
)

// TargetError is a failure confined to a single target directory.
type TargetError struct {
	Op     string
	Target Target
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Target.Dir, e.Target.PlatformName(), e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// TotalFailureError is returned when no target succeeded.
type TotalFailureError struct {
	Op    string
	Skill string
	Errs  *multierror.Error
}

func (e *TotalFailureError) Error() string {
	verb := "install"
	if e.Op == OpRemove {
		verb = "remove"
	}
	if e.Errs == nil || len(e.Errs.Errors) == 0 {
		return fmt.Sprintf("failed to %s %s: no targets", verb, e.Skill)
	}
	return fmt.Sprintf("failed to %s %s to any target: %s", verb, e.Skill, flattenErrors(e.Errs))
}

func (e *TotalFailureError) Unwrap() error { return e.Errs.ErrorOrNil() }

// newTotalFailure aggregates the failed target results.
func newTotalFailure(op, skill string, results []TargetResult) *TotalFailureError {
	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
		}
	}
	return &TotalFailureError{Op: op, Skill: skill, Errs: merr}
}

func flattenErrors(merr *multierror.Error) string {
	msgs := make([]string, len(merr.Errors))
	for i, err := range merr.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
