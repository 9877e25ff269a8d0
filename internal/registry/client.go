// Package registry fetches the skills index and skill documents from a
// remote (http/https) or local (file:// or directory path) registry.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/ai-open-source/ai-skills/internal/logger"
)

// SkillFileName is the document served for each skill.
const SkillFileName = "SKILLS.md"

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 8 << 20

var (
	// ErrNotFound is returned when the registry has no document at the requested path.
	ErrNotFound = errors.New("not found in registry")
	// ErrSkillNotFound is returned when a skill is absent from the index or registry.
	ErrSkillNotFound = errors.New("skill not found in registry")
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Attempts   uint
	Delay      time.Duration
	MaxDelay   time.Duration
	CacheDir   string // empty disables the index cache
	HTTPClient *http.Client
}

// Client fetches registry documents.
type Client struct {
	base     string // URL for remote registries, directory for local ones
	local    bool
	http     *http.Client
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
	cacheDir string
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errors.New("registry URL is required")
	}

	c := &Client{
		attempts: opts.Attempts,
		delay:    opts.Delay,
		maxDelay: opts.MaxDelay,
		cacheDir: opts.CacheDir,
		http:     opts.HTTPClient,
	}
	if c.attempts == 0 {
		c.attempts = 1
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}

	u, err := url.Parse(base)
	switch {
	case err == nil && (u.Scheme == "http" || u.Scheme == "https"):
		c.base = strings.TrimRight(base, "/")
	case err == nil && u.Scheme == "file":
		c.base = filepath.FromSlash(u.Path)
		c.local = true
	default:
		abs, absErr := filepath.Abs(base)
		if absErr != nil {
			return nil, errors.Wrapf(absErr, "failed to resolve registry path %q", base)
		}
		c.base = abs
		c.local = true
	}
	return c, nil
}

// BaseURL returns the resolved registry location.
func (c *Client) BaseURL() string { return c.base }

// FetchIndex downloads and parses the registry index. When the registry is
// unreachable and a cached copy exists, the cached index is returned.
func (c *Client) FetchIndex(ctx context.Context) (*Index, error) {
	log := logger.G(ctx).WithField("registry", c.base)

	data, err := c.get(ctx, IndexFileName)
	if err != nil {
		cached, cacheErr := c.readCache()
		if cacheErr != nil {
			return nil, errors.Wrap(err, "failed to fetch registry index")
		}
		log.WithError(err).Warn("registry unreachable, using cached index")
		return ParseIndex(cached)
	}

	idx, err := ParseIndex(data)
	if err != nil {
		return nil, err
	}
	if err := c.writeCache(data); err != nil {
		log.WithError(err).Debug("failed to cache registry index")
	}
	return idx, nil
}

// FetchSkill downloads the SKILLS.md document for name.
func (c *Client) FetchSkill(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := c.get(ctx, path.Join(name, SkillFileName))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errors.Wrapf(ErrSkillNotFound, "%s", name)
		}
		return nil, errors.Wrapf(err, "failed to fetch skill %s", name)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, rel string) ([]byte, error) {
	if c.local {
		return c.readLocal(rel)
	}
	target := c.base + "/" + rel
	log := logger.G(ctx).WithField("url", target)

	return retry.DoWithData(
		func() ([]byte, error) {
			log.Debug("fetching")
			return c.fetch(ctx, target)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(c.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithField("attempt", n+1).Debug("retrying registry request")
		}),
	)
}

func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "failed to build request"))
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Wrap(ErrNotFound, target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return data, nil
}

func (c *Client) readLocal(rel string) ([]byte, error) {
	p := filepath.Join(c.base, filepath.FromSlash(rel))
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, p)
		}
		return nil, errors.Wrapf(err, "failed to read %s", p)
	}
	return data, nil
}

// isRetryable retries transport failures, 429 and 5xx responses.
func isRetryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	return true
}

// --- Index cache ---

func (c *Client) cachePath() string {
	if c.cacheDir == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(c.base))
	return filepath.Join(c.cacheDir, "index-"+hex.EncodeToString(sum[:])[:12]+".json")
}

func (c *Client) readCache() ([]byte, error) {
	p := c.cachePath()
	if p == "" {
		return nil, errors.New("index cache disabled")
	}
	return os.ReadFile(p)
}

func (c *Client) writeCache(data []byte) error {
	p := c.cachePath()
	if p == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write index cache")
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to save index cache")
	}
	return nil
}
