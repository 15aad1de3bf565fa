package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с историей викторин
type AttemptRepository interface {
	// GetAll возвращает все попытки в порядке добавления
	GetAll() ([]entity.QuizAttempt, error)

	// Add сохраняет новую попытку
	Add(attempt *entity.QuizAttempt) error

	// GetRecent возвращает последние попытки, отсортированные по дате
	// по убыванию, не больше limit штук
	GetRecent(limit int) ([]entity.QuizAttempt, error)
}
