// Package redisblob реализует те же хранилища, что и jsonfile, но поверх
// удаленного blob-хранилища: каждая коллекция — один JSON-массив под
// фиксированным ключом Redis. Чтения проходят через локальный кеш с коротким
// TTL, записи всегда идут в Redis и синхронно обновляют кеш.
package redisblob

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const opTimeout = 10 * time.Second

// ttlCache — локальный кеш одного blob-а с ограниченным временем жизни.
// В пределах TTL чтения могут возвращать устаревшие относительно Redis данные;
// это осознанное ограничение blob-варианта хранилища.
type ttlCache struct {
	mu        sync.Mutex
	data      []byte
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, now: time.Now}
}

// get возвращает закешированный blob, если он еще не протух
func (c *ttlCache) get() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil || c.ttl <= 0 {
		return nil, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

// refresh заменяет содержимое кеша и сбрасывает отсчет TTL
func (c *ttlCache) refresh(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.fetchedAt = c.now()
}

// invalidate принудительно очищает кеш: следующее чтение пойдет в Redis
func (c *ttlCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.fetchedAt = time.Time{}
}

// blobStore читает и пишет один JSON-массив целиком под фиксированным ключом
type blobStore struct {
	client redis.UniversalClient
	key    string
	cache  *ttlCache
	mu     sync.Mutex
}

func newBlobStore(client redis.UniversalClient, key string, cacheTTL time.Duration) *blobStore {
	return &blobStore{
		client: client,
		key:    key,
		cache:  newTTLCache(cacheTTL),
	}
}

// load возвращает содержимое blob-а: из кеша, если он свежий, иначе из Redis.
// Отсутствующий ключ трактуется как пустая коллекция.
func (b *blobStore) load() ([]byte, error) {
	if data, ok := b.cache.get(); ok {
		return data, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []byte("[]"), nil
		}
		return nil, fmt.Errorf("failed to load blob %s: %w", b.key, err)
	}
	b.cache.refresh(data)
	return data, nil
}

// store перезаписывает blob целиком и синхронно обновляет кеш
func (b *blobStore) store(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", b.key, err)
	}
	b.cache.refresh(data)
	return nil
}

// Invalidate сбрасывает локальный кеш blob-а
func (b *blobStore) Invalidate() {
	b.cache.invalidate()
}
