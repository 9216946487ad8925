package cache

import (
	"context"
	"log"
	"time"

	"dnscache/internal/database"
	"dnscache/internal/model"
	"dnscache/internal/resolver"
)

// Cache memoizes successful resolutions in the record store so repeated
// lookups inside the freshness window skip the resolver chain entirely.
type Cache struct {
	db     *database.DB
	chain  resolver.Resolver
	logger *log.Logger
	now    func() time.Time
}

type Option func(*Cache)

// WithClock replaces the wall clock, letting tests drive expiry
// deterministically instead of sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New builds a cache over an open store. The cache owns the store's
// connection from here on; release it with Close.
func New(db *database.DB, chain resolver.Resolver, logger *log.Logger, opts ...Option) *Cache {
	c := &Cache{db: db, chain: chain, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the record for (hostname, recordType) while it is fresh.
// Expired entries are treated as absent even before a sweep removes them.
func (c *Cache) Get(hostname, recordType string) (*model.Record, error) {
	rec, err := c.db.GetRecord(hostname, recordType, c.now())
	if err != nil {
		return nil, err
	}
	if rec != nil {
		c.logger.Printf("Cache hit for %s: %s", hostname, rec.IPAddress)
	} else {
		c.logger.Printf("Cache miss for %s", hostname)
	}
	return rec, nil
}

// Put stores or overwrites the record for (hostname, recordType) with a
// freshness window of ttlSeconds starting now. The write always wins over
// whatever was there before.
func (c *Cache) Put(hostname, ip, recordType string, ttlSeconds int64) error {
	if err := c.db.PutRecord(hostname, ip, recordType, ttlSeconds, c.now()); err != nil {
		return err
	}
	c.logger.Printf("Added/Updated record for %s: %s", hostname, ip)
	return nil
}

// LookupAndCache returns the cached address for hostname when one is fresh;
// otherwise it invokes the resolver chain, stores a successful result with
// the given TTL, and returns it. Resolution failure surfaces as
// resolver.ErrUnresolvable and writes nothing.
func (c *Cache) LookupAndCache(ctx context.Context, hostname string, ttlSeconds int64) (string, error) {
	rec, err := c.Get(hostname, model.RecordTypeA)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.IPAddress, nil
	}

	ip, err := c.chain.Resolve(ctx, hostname)
	if err != nil {
		c.logger.Printf("Failed to resolve %s", hostname)
		return "", err
	}

	if err := c.Put(hostname, ip, model.RecordTypeA, ttlSeconds); err != nil {
		return "", err
	}
	return ip, nil
}

// ListFresh returns every unexpired record, ordered by hostname.
func (c *Cache) ListFresh() ([]model.Record, error) {
	return c.db.ListFresh(c.now())
}

// SweepExpired deletes every record already past its expiry and returns the
// number removed.
func (c *Cache) SweepExpired() (int64, error) {
	count, err := c.db.DeleteExpired(c.now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		c.logger.Printf("Cleaned up %d expired records", count)
	}
	return count, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
