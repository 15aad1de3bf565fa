package jsonfile

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// WordRepo реализует repository.WordRepository поверх words.json.
// Мьютекс сериализует цикл read-modify-write внутри процесса;
// от конкурирующих процессов файл не защищен.
type WordRepo struct {
	path string
	mu   sync.Mutex
}

// NewWordRepo создает файловое хранилище словаря в каталоге dataDir
func NewWordRepo(dataDir string) (*WordRepo, error) {
	path := filepath.Join(dataDir, wordsFileName)
	if err := ensureFile(path); err != nil {
		return nil, err
	}
	return &WordRepo{path: path}, nil
}

func (r *WordRepo) readAll() ([]entity.Word, error) {
	var words []entity.Word
	if err := readJSON(r.path, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// GetAll возвращает все слова в порядке добавления
func (r *WordRepo) GetAll() ([]entity.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

// GetByID возвращает слово по идентификатору
func (r *WordRepo) GetByID(id string) (*entity.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	r.mu.Lock()
	defer r.mu.Unlock()

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
	r.mu.Lock()
	defer r.mu.Unlock()

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
	r.mu.Lock()
	defer r.mu.Unlock()

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
	words = append(words, *word)
	return writeJSON(r.path, words)
}

// Update накладывает частичное обновление на запись
func (r *WordRepo) Update(id string, update entity.WordUpdate) (*entity.Word, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	words, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range words {
		if words[i].ID == id {
			update.Apply(&words[i])
			if err := writeJSON(r.path, words); err != nil {
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
	r.mu.Lock()
	defer r.mu.Unlock()

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
			return writeJSON(r.path, words)
		}
	}
	return nil
}

// Delete удаляет запись; возвращает true, если запись существовала
func (r *WordRepo) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	if err := writeJSON(r.path, filtered); err != nil {
		return false, err
	}
	return true, nil
}
