package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/marmoset/ast"
)

// CacheCapacity is the number of distinct source texts the parse cache
// holds. Once full, the oldest entry is evicted for each new one.
const CacheCapacity = 256

// globalCache stores parse results keyed by the xxh3 digest of the source.
var globalCache = newParseCache(CacheCapacity)

// entry is the parse result of one source text. The first caller parses;
// concurrent callers for the same text wait on once.
type entry struct {
	once   sync.Once
	source string
	prog   *ast.Program
	err    error
}

// parseCache is a digest-keyed map with first-in first-out eviction.
type parseCache struct {
	mu      sync.Mutex
	limit   int
	entries map[uint64]*entry
	order   []uint64 // oldest first
}

func newParseCache(limit int) *parseCache {
	return &parseCache{limit: max(limit, 1), entries: map[uint64]*entry{}}
}

// load returns the entry for digest, adding an empty one for source if
// none exists. hit reports whether the entry was already present.
func (c *parseCache) load(digest uint64, source string) (e *entry, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[digest]; ok {
		return e, true
	}

	e = &entry{source: source}
	c.entries[digest] = e
	c.order = append(c.order, digest)

	for len(c.order) > c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}

	return e, false
}

func (c *parseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *parseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = nil
}

// parseCached parses source at most once while it remains cached.
func parseCached(ctx context.Context, cfg config, source string) (*ast.Program, error) {
	digest := xxh3.HashString(source)

	e, hit := globalCache.load(digest, source)
	if e.source != source {
		// Digest collision: fall back to an uncached parse.
		cfg.logger.TraceContext(ctx, "cache bypass",
			slog.String("source_hash", strconv.FormatUint(digest, 16)))

		return parse(ctx, cfg, source)
	}

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(digest, 16)),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		e.prog, e.err = parse(ctx, cfg, source)
	})

	return e.prog, e.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.clear()
}
