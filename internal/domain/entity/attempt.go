package entity

import (
	"strconv"
	"time"
)

// QuestionResult фиксирует итог одного вопроса в сданной викторине
type QuestionResult struct {
	Word         string   `json:"word"`
	Question     string   `json:"question,omitempty"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"correctIndex"`
	UserAnswer   int      `json:"userAnswer"`
	Correct      bool     `json:"correct"`
}

// QuizAttempt представляет одну завершенную викторину.
// Запись неизменяема после создания.
// Score — процент правильных ответов (0–100, округленный до целого).
type QuizAttempt struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Results        []QuestionResult `json:"results"`
	CompletedAt    time.Time        `json:"completedAt"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// NewQuizAttempt собирает запись о сданной викторине.
// ID — непрозрачная строка, производная от времени создания.
func NewQuizAttempt(score, correctCount, totalQuestions int, results []QuestionResult) *QuizAttempt {
	now := time.Now().UTC()
	return &QuizAttempt{
		ID:             strconv.FormatInt(now.UnixNano(), 10),
		Date:           now,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Results:        results,
		CompletedAt:    now,
		CreatedAt:      now,
	}
}
