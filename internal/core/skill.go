package core

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownVersion is recorded when neither the registry nor the document
// declares a version.
const UnknownVersion = "unknown"

const frontmatterDelimiter = "---"

// ParseFrontmatter splits a SKILLS.md document into its YAML frontmatter and
// body. A document without frontmatter yields zero metadata and the whole
// content as body. Only malformed YAML inside a delimited block is an error.
func ParseFrontmatter(content []byte) (SkillFrontmatter, []byte, error) {
	var fm SkillFrontmatter

	rest := bytes.TrimPrefix(content, []byte("\ufeff"))
	line, rest := nextLine(rest)
	if strings.TrimSpace(line) != frontmatterDelimiter {
		return fm, content, nil
	}

	var block strings.Builder
	for len(rest) > 0 {
		line, rest = nextLine(rest)
		if strings.TrimSpace(line) == frontmatterDelimiter {
			if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
				return SkillFrontmatter{}, content, fmt.Errorf("parsing frontmatter: %w", err)
			}
			return fm, bytes.TrimLeft(rest, "\r\n"), nil
		}
		block.WriteString(line)
		block.WriteString("\n")
	}

	// Unterminated block: treat the document as plain markdown.
	return SkillFrontmatter{}, content, nil
}

// nextLine returns the first line of b without its line ending, and the remainder.
func nextLine(b []byte) (string, []byte) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return strings.TrimSuffix(string(b), "\r"), nil
	}
	return strings.TrimSuffix(string(b[:i]), "\r"), b[i+1:]
}

// resolveVersion picks the version recorded in the lockfile: the registry
// index version, then the document's frontmatter version, then UnknownVersion.
func resolveVersion(indexVersion string, content []byte) string {
	if v := strings.TrimSpace(indexVersion); v != "" {
		return v
	}
	if fm, _, err := ParseFrontmatter(content); err == nil {
		if v := strings.TrimSpace(fm.Version); v != "" {
			return v
		}
	}
	return UnknownVersion
}
