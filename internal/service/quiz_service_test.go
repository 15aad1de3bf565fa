package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service/quizgen"
)

// ============================================================================
// Моки для QuizService
// ============================================================================

// MockAttemptRepo реализует repository.AttemptRepository
type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) GetAll() ([]entity.QuizAttempt, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepo) Add(attempt *entity.QuizAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetRecent(limit int) ([]entity.QuizAttempt, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

// MockGenerator реализует QuizGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, words []entity.Word, quizType quizgen.QuizType) ([]entity.Question, error) {
	args := m.Called(ctx, words, quizType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// ============================================================================
// Тесты GenerateQuiz
// ============================================================================

func TestGenerateQuiz(t *testing.T) {
	wordRepo := new(MockWordRepo)
	attemptRepo := new(MockAttemptRepo)
	generator := new(MockGenerator)
	svc := NewQuizService(wordRepo, attemptRepo, generator, 10)

	words := []entity.Word{{ID: "1", Text: "lucid"}}
	questions := []entity.Question{{Word: "lucid", Type: "meaning", Text: "What does \"lucid\" mean?",
		Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0}}

	wordRepo.On("GetAll").Return(words, nil)
	generator.On("Generate", mock.Anything, words, quizgen.QuizTypeMixed).Return(questions, nil)

	got, err := svc.GenerateQuiz(context.Background(), quizgen.QuizTypeMixed)
	require.NoError(t, err)
	assert.Equal(t, questions, got)
}

func TestGenerateQuiz_EmptyVocabulary(t *testing.T) {
	wordRepo := new(MockWordRepo)
	svc := NewQuizService(wordRepo, new(MockAttemptRepo), new(MockGenerator), 10)

	wordRepo.On("GetAll").Return([]entity.Word{}, nil)

	_, err := svc.GenerateQuiz(context.Background(), quizgen.QuizTypeMixed)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Тесты SubmitQuiz
// ============================================================================

func submittedResults() []SubmittedResult {
	return []SubmittedResult{
		{Word: "lucid", Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, UserAnswer: 0},
		{Word: "terse", Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1, UserAnswer: 1},
		{Word: "obdurate", Question: "q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2, UserAnswer: 0},
	}
}

func TestSubmitQuiz_GradesAndPersists(t *testing.T) {
	wordRepo := new(MockWordRepo)
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(wordRepo, attemptRepo, new(MockGenerator), 10)

	for _, text := range []string{"lucid", "terse", "obdurate"} {
		wordRepo.On("FindByText", text).Return(&entity.Word{ID: "id-" + text, Text: text}, nil)
	}
	wordRepo.On("UpdateStats", "id-lucid", true).Return(nil)
	wordRepo.On("UpdateStats", "id-terse", true).Return(nil)
	wordRepo.On("UpdateStats", "id-obdurate", false).Return(nil)

	var saved *entity.QuizAttempt
	attemptRepo.On("Add", mock.AnythingOfType("*entity.QuizAttempt")).
		Run(func(args mock.Arguments) { saved = args.Get(0).(*entity.QuizAttempt) }).
		Return(nil)

	grade, err := svc.SubmitQuiz(submittedResults(), 3)
	require.NoError(t, err)

	assert.Equal(t, 67, grade.Score, "2 из 3 — 67% после округления")
	assert.Equal(t, 2, grade.CorrectCount)
	assert.Equal(t, 3, grade.TotalQuestions)
	assert.Equal(t, "Good job!", grade.Message)

	require.NotNil(t, saved)
	assert.Equal(t, 67, saved.Score)
	assert.Len(t, saved.Results, 3)
	assert.True(t, saved.Results[0].Correct)
	assert.False(t, saved.Results[2].Correct)

	wordRepo.AssertExpectations(t)
	attemptRepo.AssertExpectations(t)
}

func TestSubmitQuiz_PerfectScore(t *testing.T) {
	wordRepo := new(MockWordRepo)
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(wordRepo, attemptRepo, new(MockGenerator), 10)

	results := []SubmittedResult{
		{Word: "lucid", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, UserAnswer: 0},
		{Word: "terse", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 3, UserAnswer: 3},
	}
	wordRepo.On("FindByText", mock.Anything).Return(nil, apperrors.ErrNotFound)
	attemptRepo.On("Add", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	grade, err := svc.SubmitQuiz(results, 0)
	require.NoError(t, err)

	assert.Equal(t, 100, grade.Score)
	assert.Equal(t, grade.TotalQuestions, grade.CorrectCount)
	assert.Equal(t, "Excellent work!", grade.Message)
}

func TestSubmitQuiz_SkipsStatsForUnknownWords(t *testing.T) {
	wordRepo := new(MockWordRepo)
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(wordRepo, attemptRepo, new(MockGenerator), 10)

	// Слово удалили между выдачей викторины и сдачей ответов
	wordRepo.On("FindByText", "deleted").Return(nil, apperrors.ErrNotFound)
	attemptRepo.On("Add", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	results := []SubmittedResult{
		{Word: "deleted", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, UserAnswer: 1},
	}
	grade, err := svc.SubmitQuiz(results, 0)
	require.NoError(t, err, "Отсутствие слова не должно ломать сдачу")

	assert.Equal(t, 0, grade.Score)
	wordRepo.AssertNotCalled(t, "UpdateStats", mock.Anything, mock.Anything)
}

func TestSubmitQuiz_InvalidSubmission(t *testing.T) {
	svc := NewQuizService(new(MockWordRepo), new(MockAttemptRepo), new(MockGenerator), 10)

	tests := []struct {
		name     string
		results  []SubmittedResult
		expected int
	}{
		{
			name:     "Пустой список ответов",
			results:  nil,
			expected: 0,
		},
		{
			name:     "Длина не совпадает с количеством вопросов",
			results:  submittedResults(),
			expected: 5,
		},
		{
			name: "Не указано слово",
			results: []SubmittedResult{
				{Word: "", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, UserAnswer: 0},
			},
			expected: 0,
		},
		{
			name: "correctIndex вне диапазона",
			results: []SubmittedResult{
				{Word: "lucid", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 7, UserAnswer: 0},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitQuiz(tt.results, tt.expected)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSubmission)
		})
	}
}

// ============================================================================
// Тесты GetHistory
// ============================================================================

func TestGetHistory_DefaultLimit(t *testing.T) {
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(new(MockWordRepo), attemptRepo, new(MockGenerator), 10)

	attemptRepo.On("GetRecent", 10).Return([]entity.QuizAttempt{}, nil)

	// Нулевой лимит заменяется значением по умолчанию
	_, err := svc.GetHistory(0)
	require.NoError(t, err)

	attemptRepo.AssertExpectations(t)
}

func TestGetHistory_RespectsLargeLimit(t *testing.T) {
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(new(MockWordRepo), attemptRepo, new(MockGenerator), 10)

	attemptRepo.On("GetRecent", 100).Return([]entity.QuizAttempt{}, nil)

	// Явно запрошенный лимит не урезается до настроенного
	_, err := svc.GetHistory(100)
	require.NoError(t, err)

	attemptRepo.AssertExpectations(t)
}

func TestGetHistory_PassesThroughSmallLimit(t *testing.T) {
	attemptRepo := new(MockAttemptRepo)
	svc := NewQuizService(new(MockWordRepo), attemptRepo, new(MockGenerator), 10)

	attemptRepo.On("GetRecent", 3).Return([]entity.QuizAttempt{}, nil)

	_, err := svc.GetHistory(3)
	require.NoError(t, err)

	attemptRepo.AssertExpectations(t)
}
