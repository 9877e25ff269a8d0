package core

import (
	"strings"

	"golang.org/x/mod/semver"
)

// normalizeSemver returns v as a canonical semver string with a "v" prefix,
// or "" when v is not a semantic version.
func normalizeSemver(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// CompareVersions compares two versions as semver. ok is false when either
// side is not a semantic version.
func CompareVersions(a, b string) (cmp int, ok bool) {
	va, vb := normalizeSemver(a), normalizeSemver(b)
	if va == "" || vb == "" {
		return 0, false
	}
	return semver.Compare(va, vb), true
}

// IsNewer reports whether available supersedes installed. Non-semver
// versions fall back to plain inequality.
func IsNewer(installed, available string) bool {
	if strings.TrimSpace(available) == "" {
		return false
	}
	if cmp, ok := CompareVersions(installed, available); ok {
		return cmp < 0
	}
	return strings.TrimSpace(installed) != strings.TrimSpace(available)
}
