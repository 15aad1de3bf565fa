package redisblob

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// AttemptRepo реализует repository.AttemptRepository поверх одного ключа Redis
type AttemptRepo struct {
	blob *blobStore
}

// NewAttemptRepo создает blob-хранилище истории викторин под ключом key
func NewAttemptRepo(client redis.UniversalClient, key string, cacheTTL time.Duration) *AttemptRepo {
	return &AttemptRepo{blob: newBlobStore(client, key, cacheTTL)}
}

// Invalidate сбрасывает локальный кеш истории
func (r *AttemptRepo) Invalidate() {
	r.blob.Invalidate()
}

func (r *AttemptRepo) readAll() ([]entity.QuizAttempt, error) {
	data, err := r.blob.load()
	if err != nil {
		return nil, err
	}
	var attempts []entity.QuizAttempt
	if err := json.Unmarshal(data, &attempts); err != nil {
		return nil, fmt.Errorf("failed to parse attempts blob: %w", err)
	}
	return attempts, nil
}

// GetAll возвращает все попытки в порядке добавления
func (r *AttemptRepo) GetAll() ([]entity.QuizAttempt, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()
	return r.readAll()
}

// Add сохраняет новую попытку
func (r *AttemptRepo) Add(attempt *entity.QuizAttempt) error {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	attempts, err := r.readAll()
	if err != nil {
		return err
	}
	data, err := json.Marshal(append(attempts, *attempt))
	if err != nil {
		return fmt.Errorf("failed to marshal attempts blob: %w", err)
	}
	return r.blob.store(data)
}

// GetRecent возвращает последние попытки по дате по убыванию, не больше limit
func (r *AttemptRepo) GetRecent(limit int) ([]entity.QuizAttempt, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	attempts, err := r.readAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Date.After(attempts[j].Date)
	})
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}
	return attempts, nil
}
