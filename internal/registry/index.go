package registry

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// IndexFileName is the registry index served at the registry root.
const IndexFileName = ".index.json"

var skillNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Index is the parsed registry index.
type Index struct {
	Skills map[string]IndexEntry `json:"skills"`
}

// IndexEntry describes one published skill.
type IndexEntry struct {
	Version       string   `json:"version"`
	Domains       []string `json:"domains"`
	LastGenerated string   `json:"lastGenerated"`
}

// ParseIndex parses an index document. Comments and trailing commas are
// tolerated so hand-maintained registries keep working.
func ParseIndex(data []byte) (*Index, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse registry index")
	}
	var idx Index
	if err := json.Unmarshal(std, &idx); err != nil {
		return nil, errors.Wrap(err, "failed to decode registry index")
	}
	if idx.Skills == nil {
		idx.Skills = map[string]IndexEntry{}
	}
	return &idx, nil
}

// Lookup returns the entry for name.
func (i *Index) Lookup(name string) (IndexEntry, bool) {
	if i == nil {
		return IndexEntry{}, false
	}
	e, ok := i.Skills[name]
	return e, ok
}

// Names returns all skill names, sorted.
func (i *Index) Names() []string {
	if i == nil {
		return nil
	}
	names := make([]string, 0, len(i.Skills))
	for name := range i.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filter returns the sorted names whose name matches namePattern and which
// carry at least one domain matching domainPattern. Empty patterns match
// everything. A pattern without glob metacharacters matches as a
// case-insensitive substring.
func (i *Index) Filter(namePattern, domainPattern string) ([]string, error) {
	nameMatch, err := compileMatcher(namePattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid name pattern %q", namePattern)
	}
	domainMatch, err := compileMatcher(domainPattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid domain pattern %q", domainPattern)
	}

	var out []string
	for _, name := range i.Names() {
		if !nameMatch(name) {
			continue
		}
		if domainPattern != "" {
			found := false
			for _, d := range i.Skills[name].Domains {
				if domainMatch(d) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, name)
	}
	return out, nil
}

func compileMatcher(pattern string) (func(string) bool, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		return func(s string) bool { return strings.Contains(strings.ToLower(s), pattern) }, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(s string) bool { return g.Match(strings.ToLower(s)) }, nil
}

// ValidateName rejects names that cannot be used as a single URL or path segment.
func ValidateName(name string) error {
	if !skillNamePattern.MatchString(name) || strings.Contains(name, "..") {
		return errors.Errorf("invalid skill name %q", name)
	}
	return nil
}
