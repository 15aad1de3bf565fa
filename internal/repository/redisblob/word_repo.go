package redisblob

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// WordRepo реализует repository.WordRepository поверх одного ключа Redis.
// Мьютекс blob-хранилища сериализует цикл read-modify-write только внутри
// процесса; между инстансами приложения возможны потерянные обновления.
type WordRepo struct {
	blob *blobStore
}

// NewWordRepo создает blob-хранилище словаря под ключом key
func NewWordRepo(client redis.UniversalClient, key string, cacheTTL time.Duration) *WordRepo {
	return &WordRepo{blob: newBlobStore(client, key, cacheTTL)}
}

// Invalidate сбрасывает локальный кеш словаря
func (r *WordRepo) Invalidate() {
	r.blob.Invalidate()
}

func (r *WordRepo) readAll() ([]entity.Word, error) {
	data, err := r.blob.load()
	if err != nil {
		return nil, err
	}
	var words []entity.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse words blob: %w", err)
	}
	return words, nil
}

func (r *WordRepo) writeAll(words []entity.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to marshal words blob: %w", err)
	}
	return r.blob.store(data)
}

// GetAll возвращает все слова в порядке добавления
func (r *WordRepo) GetAll() ([]entity.Word, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()
	return r.readAll()
}

// GetByID возвращает слово по идентификатору
func (r *WordRepo) GetByID(id string) (*entity.Word, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range words {
		if words[i].ID == id {
			return &words[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// FindByText ищет слово по точному совпадению без учета регистра
func (r *WordRepo) FindByText(text string) (*entity.Word, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return nil, err
	}
	normalized := entity.NormalizeText(text)
	for i := range words {
		if strings.ToLower(words[i].Text) == normalized {
			return &words[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Search возвращает слова, в тексте или определении которых есть подстрока query
func (r *WordRepo) Search(query string) ([]entity.Word, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return nil, err
	}
	lowerQuery := strings.ToLower(query)
	matched := make([]entity.Word, 0)
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Text), lowerQuery) ||
			strings.Contains(strings.ToLower(w.Meaning), lowerQuery) {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// Add добавляет новую запись, отклоняя дубликаты текста без учета регистра
func (r *WordRepo) Add(word *entity.Word) error {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return err
	}
	normalized := entity.NormalizeText(word.Text)
	for i := range words {
		if strings.ToLower(words[i].Text) == normalized {
			return apperrors.ErrDuplicateWord
		}
	}
	return r.writeAll(append(words, *word))
}

// Update накладывает частичное обновление на запись
func (r *WordRepo) Update(id string, update entity.WordUpdate) (*entity.Word, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range words {
		if words[i].ID == id {
			update.Apply(&words[i])
			if err := r.writeAll(words); err != nil {
				return nil, err
			}
			updated := words[i]
			return &updated, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// UpdateStats инкрементирует счетчики викторин; отсутствие записи — не ошибка
func (r *WordRepo) UpdateStats(id string, wasCorrect bool) error {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range words {
		if words[i].ID == id {
			words[i].TimesQuizzed++
			if !wasCorrect {
				words[i].TimesWrong++
			}
			words[i].UpdatedAt = time.Now().UTC()
			return r.writeAll(words)
		}
	}
	return nil
}

// Delete удаляет запись; возвращает true, если запись существовала
func (r *WordRepo) Delete(id string) (bool, error) {
	r.blob.mu.Lock()
	defer r.blob.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return false, err
	}
	filtered := words[:0:0]
	for _, w := range words {
		if w.ID != id {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == len(words) {
		return false, nil
	}
	if err := r.writeAll(filtered); err != nil {
		return false, err
	}
	return true, nil
}
