package dto

import (
	"github.com/yourusername/vocab-api/internal/service"
)

// SubmitQuizRequest представляет сдачу викторины: ответы в том порядке,
// в котором были выданы вопросы
type SubmitQuizRequest struct {
	Results []SubmittedResultRequest `json:"results" binding:"required"`

	// TotalQuestions — количество вопросов в выданной викторине.
	// Если указано, должно совпадать с длиной results.
	TotalQuestions int `json:"totalQuestions"`
}

// SubmittedResultRequest — ответ на один вопрос
type SubmittedResultRequest struct {
	Word         string   `json:"word" binding:"required"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	UserAnswer   int      `json:"userAnswer"`
}

// ToResults преобразует запрос в данные для сервиса викторин
func (r SubmitQuizRequest) ToResults() []service.SubmittedResult {
	results := make([]service.SubmittedResult, 0, len(r.Results))
	for _, sr := range r.Results {
		results = append(results, service.SubmittedResult{
			Word:         sr.Word,
			Question:     sr.Question,
			Options:      sr.Options,
			CorrectIndex: sr.CorrectIndex,
			UserAnswer:   sr.UserAnswer,
		})
	}
	return results
}
