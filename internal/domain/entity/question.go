package entity

import (
	"errors"
	"fmt"
)

// QuestionType определяет вид вопроса викторины
type QuestionType string

const (
	QuestionTypeMeaning    QuestionType = "meaning"
	QuestionTypeSynonym    QuestionType = "synonym"
	QuestionTypeAntonym    QuestionType = "antonym"
	QuestionTypeCompletion QuestionType = "completion"
)

// OptionCount — фиксированное число вариантов ответа в каждом вопросе
const OptionCount = 4

// Question представляет один вопрос викторины.
// Вопросы не хранятся отдельно: они живут только в ответе на запрос генерации
// и в составе записи QuizAttempt после сдачи.
// CorrectIndex намеренно отдается клиенту: SPA показывает правильный ответ сразу
// после выбора варианта и считает результат локально.
type Question struct {
	Word         string       `json:"word"`
	Type         QuestionType `json:"type"`
	Text         string       `json:"question"`
	Sentence     string       `json:"sentence,omitempty"`
	Hint         string       `json:"hint,omitempty"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correctIndex"`
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectIndex
}

// Validate проверяет инварианты вопроса: ровно 4 попарно различных варианта
// и корректный индекс правильного ответа
func (q *Question) Validate() error {
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question for %q has %d options, want %d", q.Word, len(q.Options), OptionCount)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, ok := seen[opt]; ok {
			return fmt.Errorf("question for %q has duplicate option %q", q.Word, opt)
		}
		seen[opt] = struct{}{}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question for %q has out-of-range correct index %d", q.Word, q.CorrectIndex)
	}
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	return nil
}
