package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service/quizgen"
)

// QuizGenerator строит набор вопросов из словаря
type QuizGenerator interface {
	Generate(ctx context.Context, words []entity.Word, quizType quizgen.QuizType) ([]entity.Question, error)
}

// SubmittedResult — ответ пользователя на один вопрос викторины
type SubmittedResult struct {
	Word         string   `json:"word" binding:"required"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	UserAnswer   int      `json:"userAnswer"`
}

// QuizGrade — итог проверки сданной викторины
type QuizGrade struct {
	Score          int    `json:"score"`
	CorrectCount   int    `json:"correctCount"`
	TotalQuestions int    `json:"totalQuestions"`
	Message        string `json:"message"`
}

// QuizService предоставляет методы генерации, проверки и истории викторин
type QuizService struct {
	wordRepo     repository.WordRepository
	attemptRepo  repository.AttemptRepository
	generator    QuizGenerator
	historyLimit int
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	wordRepo repository.WordRepository,
	attemptRepo repository.AttemptRepository,
	generator QuizGenerator,
	historyLimit int,
) *QuizService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &QuizService{
		wordRepo:     wordRepo,
		attemptRepo:  attemptRepo,
		generator:    generator,
		historyLimit: historyLimit,
	}
}

// GenerateQuiz строит викторину заданного типа из всего словаря пользователя
func (s *QuizService) GenerateQuiz(ctx context.Context, quizType quizgen.QuizType) ([]entity.Question, error) {
	words, err := s.wordRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: словарь пуст", apperrors.ErrNotFound)
	}

	questions, err := s.generator.Generate(ctx, words, quizType)
	if err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Сгенерирована викторина: тип=%s, вопросов=%d", quizType, len(questions))
	return questions, nil
}

// SubmitQuiz проверяет ответы, обновляет статистику слов и сохраняет попытку.
// Оценка — процент правильных ответов, округленный до целого.
func (s *QuizService) SubmitQuiz(results []SubmittedResult, expectedTotal int) (*QuizGrade, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: пустой список ответов", apperrors.ErrInvalidSubmission)
	}
	if expectedTotal > 0 && expectedTotal != len(results) {
		return nil, fmt.Errorf("%w: получено %d ответов, ожидалось %d",
			apperrors.ErrInvalidSubmission, len(results), expectedTotal)
	}
	for i, r := range results {
		if r.Word == "" {
			return nil, fmt.Errorf("%w: в ответе %d не указано слово", apperrors.ErrInvalidSubmission, i)
		}
		if len(r.Options) > 0 && (r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options)) {
			return nil, fmt.Errorf("%w: в ответе %d correctIndex вне диапазона", apperrors.ErrInvalidSubmission, i)
		}
	}

	correctCount := 0
	attemptResults := make([]entity.QuestionResult, 0, len(results))
	for _, r := range results {
		question := entity.Question{
			Word:         r.Word,
			Text:         r.Question,
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
		}
		correct := question.IsCorrect(r.UserAnswer)

		// Статистика обновляется по тексту слова: викторина могла быть
		// выдана до переименования или удаления записи
		word, err := s.wordRepo.FindByText(r.Word)
		if err == nil {
			if statsErr := s.wordRepo.UpdateStats(word.ID, correct); statsErr != nil {
				log.Printf("[QuizService] Не удалось обновить статистику слова '%s': %v", r.Word, statsErr)
			}
		}

		if correct {
			correctCount++
		}
		attemptResults = append(attemptResults, entity.QuestionResult{
			Word:         r.Word,
			Question:     r.Question,
			Options:      r.Options,
			CorrectIndex: r.CorrectIndex,
			UserAnswer:   r.UserAnswer,
			Correct:      correct,
		})
	}

	score := int(math.Round(float64(correctCount) / float64(len(results)) * 100))
	attempt := entity.NewQuizAttempt(score, correctCount, len(results), attemptResults)
	if err := s.attemptRepo.Add(attempt); err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Викторина сдана: %d/%d (%d%%)", correctCount, len(results), score)
	return &QuizGrade{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(results),
		Message:        gradeMessage(score),
	}, nil
}

// GetHistory возвращает последние попытки, новые первыми. Настроенный
// history_limit применяется только когда limit не задан.
func (s *QuizService) GetHistory(limit int) ([]entity.QuizAttempt, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.attemptRepo.GetRecent(limit)
}

func gradeMessage(score int) string {
	switch {
	case score >= 80:
		return "Excellent work!"
	case score >= 60:
		return "Good job!"
	default:
		return "Keep practicing!"
	}
}
