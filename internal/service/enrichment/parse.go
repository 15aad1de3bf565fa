package enrichment

import (
	"encoding/json"
	"strings"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// ExtractJSONObject вытаскивает первый JSON-объект из текста LLM-ответа.
// Модели регулярно заворачивают JSON в markdown-ограждения или добавляют
// пояснительный текст, поэтому берем срез от первой '{' до последней '}'.
// Возвращает false, если объекта в тексте нет.
func ExtractJSONObject(content string) ([]byte, bool) {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}
	return []byte(content[start : end+1]), true
}

// aiEntry — полная словарная статья, сгенерированная LLM
type aiEntry struct {
	Meaning    string   `json:"meaning"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Example    string   `json:"example"`
	Difficulty string   `json:"difficulty"`
}

// parseEntry разбирает и валидирует полную статью из LLM-ответа.
// Статья без определения или примера считается непригодной.
func parseEntry(content string) (*aiEntry, bool) {
	raw, ok := ExtractJSONObject(content)
	if !ok {
		return nil, false
	}
	var parsed aiEntry
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}
	if strings.TrimSpace(parsed.Meaning) == "" || strings.TrimSpace(parsed.Example) == "" {
		return nil, false
	}
	return &parsed, true
}

// aiEnhancement — ответ LLM на запрос улучшения словарной статьи
// (пример употребления и сложность)
type aiEnhancement struct {
	Example    string `json:"example"`
	Difficulty string `json:"difficulty"`
}

// parseEnhancement разбирает и валидирует ответ улучшения
func parseEnhancement(content string) (*aiEnhancement, bool) {
	raw, ok := ExtractJSONObject(content)
	if !ok {
		return nil, false
	}
	var parsed aiEnhancement
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false
	}
	if strings.TrimSpace(parsed.Example) == "" {
		return nil, false
	}
	return &parsed, true
}

// parseDifficulty приводит строку из LLM-ответа к значению enum;
// false — значение не распознано
func parseDifficulty(raw string) (entity.Difficulty, bool) {
	difficulty := entity.Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if difficulty.IsValid() {
		return difficulty, true
	}
	return "", false
}
