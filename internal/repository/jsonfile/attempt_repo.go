package jsonfile

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// AttemptRepo реализует repository.AttemptRepository поверх quiz_attempts.json
type AttemptRepo struct {
	path string
	mu   sync.Mutex
}

// NewAttemptRepo создает файловое хранилище истории викторин в каталоге dataDir
func NewAttemptRepo(dataDir string) (*AttemptRepo, error) {
	path := filepath.Join(dataDir, attemptsFileName)
	if err := ensureFile(path); err != nil {
		return nil, err
	}
	return &AttemptRepo{path: path}, nil
}

func (r *AttemptRepo) readAll() ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	if err := readJSON(r.path, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// GetAll возвращает все попытки в порядке добавления
func (r *AttemptRepo) GetAll() ([]entity.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

// Add сохраняет новую попытку
func (r *AttemptRepo) Add(attempt *entity.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts, err := r.readAll()
	if err != nil {
		return err
	}
	attempts = append(attempts, *attempt)
	return writeJSON(r.path, attempts)
}

// GetRecent возвращает последние попытки по дате по убыванию, не больше limit
func (r *AttemptRepo) GetRecent(limit int) ([]entity.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
