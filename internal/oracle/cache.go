package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached wraps a provider with a two-layer response cache (memory,
// then disk). Oracle answers for a sentence are stable, so repeated
// sentences across runs never re-hit the API.
type Cached struct {
	inner Provider
	mem   *gocache.Cache
	dir   string
	ttl   time.Duration
}

type cachedResponse struct {
	Response  Response  `json:"response"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCached wraps p with a cache persisted under dir.
func NewCached(p Provider, dir string, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Cached{
		inner: p,
		mem:   gocache.New(ttl, 10*time.Minute),
		dir:   dir,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider's name
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Classify returns a cached response when one exists, otherwise
// delegates and stores the answer in both layers. Cache failures are
// invisible to callers; the worst case is an extra API call.
func (c *Cached) Classify(ctx context.Context, req Request) (*Response, error) {
	key := cacheKey(c.inner.Name(), req.Sentence)

	if resp, ok := c.lookup(key); ok {
		return resp, nil
	}

	resp, err := c.inner.Classify(ctx, req)
	if err != nil {
		return nil, err
	}
	c.store(key, resp)
	return resp, nil
}

// IsAvailable delegates to the wrapped provider
func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

func (c *Cached) lookup(key string) (*Response, bool) {
	if v, ok := c.mem.Get(key); ok {
		resp := v.(Response)
		return &resp, true
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var entry cachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return nil, false
	}

	// Promote to the memory layer.
	c.mem.Set(key, entry.Response, gocache.DefaultExpiration)
	return &entry.Response, true
}

func (c *Cached) store(key string, resp *Response) {
	c.mem.Set(key, *resp, gocache.DefaultExpiration)

	entry := cachedResponse{
		Response:  *resp,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.path(key), data, 0o644)
}

func (c *Cached) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func cacheKey(provider, sentence string) string {
	hash := sha256.Sum256([]byte(provider + ":" + sentence))
	return "imradgraph-v1-" + hex.EncodeToString(hash[:])
}
