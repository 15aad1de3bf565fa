package repository

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// WordRepository определяет методы для работы со словарем.
// Каждая мутация перечитывает и перезаписывает коллекцию целиком:
// реализации не дают транзакционных гарантий между процессами.
type WordRepository interface {
	// GetAll возвращает все слова в порядке добавления
	GetAll() ([]entity.Word, error)

	// GetByID возвращает слово по его идентификатору.
	// Возвращает apperrors.ErrNotFound, если записи нет.
	GetByID(id string) (*entity.Word, error)

	// FindByText ищет слово по точному совпадению текста без учета регистра.
	// Возвращает apperrors.ErrNotFound, если записи нет.
	FindByText(text string) (*entity.Word, error)

	// Search возвращает слова, в тексте или определении которых встречается
	// подстрока query (без учета регистра)
	Search(query string) ([]entity.Word, error)

	// Add добавляет новую запись. Возвращает apperrors.ErrDuplicateWord,
	// если слово с таким текстом уже есть (без учета регистра); коллекция
	// при этом не изменяется.
	Add(word *entity.Word) error

	// Update накладывает частичное обновление и возвращает измененную запись.
	// Возвращает apperrors.ErrNotFound, если записи нет.
	Update(id string, update entity.WordUpdate) (*entity.Word, error)

	// UpdateStats инкрементирует timesQuizzed и, при неправильном ответе,
	// timesWrong. Отсутствие записи не считается ошибкой.
	UpdateStats(id string, wasCorrect bool) error

	// Delete удаляет запись. Возвращает true, если запись была удалена.
	Delete(id string) (bool, error)
}
