package quizgen

import (
	"encoding/json"
	"strings"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/service/enrichment"
)

// aiQuestion — вопрос с вариантами, сгенерированный LLM
type aiQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// parseAIQuestion разбирает LLM-ответ и проверяет его пригодность:
// ровно 4 попарно различных варианта, correctIndex в пределах и указывает
// на ожидаемый правильный ответ. Любое нарушение — false, дальше работает
// эвристический путь.
func parseAIQuestion(content, correctAnswer string) (*aiQuestion, bool) {
	raw, ok := enrichment.ExtractJSONObject(content)
	if !ok {
		return nil, false
	}
	var parsed aiQuestion
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}
	if strings.TrimSpace(parsed.Question) == "" {
		return nil, false
	}
	if len(parsed.Options) != entity.OptionCount {
		return nil, false
	}
	seen := make(map[string]struct{}, len(parsed.Options))
	for _, opt := range parsed.Options {
		if _, dup := seen[opt]; dup {
			return nil, false
		}
		seen[opt] = struct{}{}
	}
	if parsed.CorrectIndex < 0 || parsed.CorrectIndex >= len(parsed.Options) {
		return nil, false
	}
	if parsed.Options[parsed.CorrectIndex] != correctAnswer {
		return nil, false
	}
	return &parsed, true
}

// aiDistractors — набор неправильных вариантов, сгенерированный LLM
type aiDistractors struct {
	Distractors []string `json:"distractors"`
}

// parseAIDistractors разбирает LLM-ответ с тремя дистракторами и отбрасывает
// наборы, пересекающиеся с правильным ответом или списком исключений
func parseAIDistractors(content, correct string, exclude []string) ([]string, bool) {
	raw, ok := enrichment.ExtractJSONObject(content)
	if !ok {
		return nil, false
	}
	var parsed aiDistractors
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}
	if len(parsed.Distractors) != entity.OptionCount-1 {
		return nil, false
	}

	excluded := make(map[string]struct{}, len(exclude)+1)
	excluded[strings.ToLower(correct)] = struct{}{}
	for _, e := range exclude {
		excluded[strings.ToLower(e)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(parsed.Distractors))
	for _, d := range parsed.Distractors {
		d = strings.TrimSpace(d)
		if d == "" {
			return nil, false
		}
		lower := strings.ToLower(d)
		if _, bad := excluded[lower]; bad {
			return nil, false
		}
		if _, dup := seen[lower]; dup {
			return nil, false
		}
		seen[lower] = struct{}{}
	}
	return parsed.Distractors, true
}
