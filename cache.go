package flexql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"
	lru "github.com/hashicorp/golang-lru"
	"github.com/klauspost/compress/zstd"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/flexgraphdb/flexql/ir"
)

// planCache is a two-tier compiled-plan cache: an in-process LRU in front of
// an optional Redis tier shared across processes.
type planCache struct {
	local *lru.Cache
	pool  *redis.Pool
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// newPlanCache builds a planCache with an in-process LRU of size entries
// and, if redisAddr is non-empty, a Redis-backed second tier.
func newPlanCache(size int, redisAddr string) (*planCache, error) {
	local, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("flexql: new plan cache: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("flexql: new zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("flexql: new zstd decoder: %w", err)
	}
	c := &planCache{local: local, enc: enc, dec: dec}
	if redisAddr != "" {
		c.pool = &redis.Pool{
			MaxIdle:     8,
			MaxActive:   64,
			DialContext: func(ctx context.Context) (redis.Conn, error) {
				return redis.DialContext(ctx, "tcp", redisAddr)
			},
		}
	}
	return c, nil
}

// planCacheKey derives a structural cache key by hashing the whole node
// tree, literal values and Variable ids included: two queries differing only
// in literal parameter values get separate entries, and the same tree always
// hashes to the same key (§8 property 1: determinism).
func planCacheKey(node ir.Node) (string, error) {
	h, err := hashstructure.Hash(node, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("flexql: hash plan key: %w", err)
	}
	return fmt.Sprintf("%x", h), nil
}

func (c *planCache) get(key string) (CompoundQuery, bool) {
	if raw, ok := c.local.Get(key); ok {
		return raw.(CompoundQuery), true
	}
	if c.pool == nil {
		return CompoundQuery{}, false
	}
	conn, err := c.pool.GetContext(context.Background())
	if err != nil {
		return CompoundQuery{}, false
	}
	defer conn.Close()
	compressed, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		return CompoundQuery{}, false
	}
	plain, err := c.dec.DecodeAll(compressed, nil)
	if err != nil {
		return CompoundQuery{}, false
	}
	var cq CompoundQuery
	if err := json.NewDecoder(bytes.NewReader(plain)).Decode(&cq); err != nil {
		return CompoundQuery{}, false
	}
	c.local.Add(key, cq)
	return cq, true
}

func (c *planCache) put(key string, cq CompoundQuery) {
	c.local.Add(key, cq)
	if c.pool == nil {
		return
	}
	plain, err := json.Marshal(cq)
	if err != nil {
		return
	}
	compressed := c.enc.EncodeAll(plain, nil)
	conn, err := c.pool.GetContext(context.Background())
	if err != nil {
		return
	}
	defer conn.Close()
	_, _ = conn.Do("SET", key, compressed, "EX", 3600)
}
