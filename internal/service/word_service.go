package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// WordEnricher получает определение, связи и пример для нового слова из
// внешних источников. Не возвращает ошибок: при недоступности источников
// отдает запасные значения.
type WordEnricher interface {
	Enrich(ctx context.Context, word string) entity.Enrichment
}

// AddWordInput описывает запрос на добавление слова. Все поля кроме Text
// опциональны: пустое Meaning включает автоматическое обогащение.
type AddWordInput struct {
	Text       string
	Meaning    string
	Synonyms   []string
	Antonyms   []string
	Example    string
	Difficulty string
}

// VocabStats агрегирует статистику словаря
type VocabStats struct {
	TotalWords      int `json:"totalWords"`
	WordsToday      int `json:"wordsToday"`
	WeakWords       int `json:"weakWords"`
	AverageAccuracy int `json:"averageAccuracy"`
}

// WordService предоставляет методы для работы со словарем
type WordService struct {
	wordRepo repository.WordRepository
	enricher WordEnricher
}

// NewWordService создает новый сервис словаря
func NewWordService(wordRepo repository.WordRepository, enricher WordEnricher) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		enricher: enricher,
	}
}

// AddWord добавляет слово в словарь. Если определение не передано,
// запускает обогащение через внешние источники.
// Возвращает apperrors.ErrDuplicateWord, если слово уже есть.
func (s *WordService) AddWord(ctx context.Context, input AddWordInput) (*entity.Word, error) {
	text := entity.NormalizeText(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: текст слова не может быть пустым", apperrors.ErrValidation)
	}

	// Проверяем дубликат до обогащения, чтобы не жечь внешние запросы впустую
	if _, err := s.wordRepo.FindByText(text); err == nil {
		return nil, fmt.Errorf("%w: слово '%s' уже в словаре", apperrors.ErrDuplicateWord, text)
	}

	var enriched entity.Enrichment
	if input.Meaning != "" {
		enriched = entity.Enrichment{
			Meaning:    input.Meaning,
			Synonyms:   input.Synonyms,
			Antonyms:   input.Antonyms,
			Example:    input.Example,
			Difficulty: entity.Difficulty(input.Difficulty),
		}
	} else {
		log.Printf("[WordService] Обогащаем слово '%s' через внешние источники", text)
		enriched = s.enricher.Enrich(ctx, text)
	}

	word := entity.NewWord(text, enriched)
	if err := s.wordRepo.Add(word); err != nil {
		return nil, err
	}

	log.Printf("[WordService] Добавлено слово '%s' (сложность: %s)", word.Text, word.Difficulty)
	return word, nil
}

// GetAllWords возвращает весь словарь в порядке добавления
func (s *WordService) GetAllWords() ([]entity.Word, error) {
	return s.wordRepo.GetAll()
}

// GetWord возвращает слово по идентификатору
func (s *WordService) GetWord(id string) (*entity.Word, error) {
	return s.wordRepo.GetByID(id)
}

// FindWordByText возвращает слово по точному тексту (без учета регистра).
// Используется обработчиком для ответа 409 при добавлении дубликата.
func (s *WordService) FindWordByText(text string) (*entity.Word, error) {
	return s.wordRepo.FindByText(text)
}

// SearchWords ищет слова по подстроке в тексте или определении
func (s *WordService) SearchWords(query string) ([]entity.Word, error) {
	if entity.NormalizeText(query) == "" {
		return nil, fmt.Errorf("%w: поисковый запрос не может быть пустым", apperrors.ErrValidation)
	}
	return s.wordRepo.Search(query)
}

// UpdateWord накладывает частичное обновление на запись словаря
func (s *WordService) UpdateWord(id string, update entity.WordUpdate) (*entity.Word, error) {
	if update.Difficulty != nil && !update.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: недопустимая сложность '%s'", apperrors.ErrValidation, *update.Difficulty)
	}
	return s.wordRepo.Update(id, update)
}

// DeleteWord удаляет слово из словаря
func (s *WordService) DeleteWord(id string) error {
	deleted, err := s.wordRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: слово с id '%s' не найдено", apperrors.ErrNotFound, id)
	}
	log.Printf("[WordService] Удалено слово с id '%s'", id)
	return nil
}

// GetStats подсчитывает агрегированную статистику словаря.
// Слова, ни разу не попадавшие в викторину, считаются со стопроцентной
// точностью, wordsToday отсчитывается от локальной полуночи.
func (s *WordService) GetStats() (*VocabStats, error) {
	words, err := s.wordRepo.GetAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &VocabStats{TotalWords: len(words)}
	accuracySum := 0.0
	for i := range words {
		w := &words[i]
		if !w.DateAdded.Before(midnight) {
			stats.WordsToday++
		}
		if w.IsWeak() {
			stats.WeakWords++
		}
		if w.TimesQuizzed > 0 {
			accuracySum += float64(w.TimesQuizzed-w.TimesWrong) / float64(w.TimesQuizzed)
		} else {
			accuracySum += 1
		}
	}
	if len(words) > 0 {
		stats.AverageAccuracy = int(math.Round(accuracySum / float64(len(words)) * 100))
	}

	return stats, nil
}
