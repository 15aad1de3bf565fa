package dto

import (
	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/service"
)

// AddWordRequest представляет запрос на добавление слова.
// Все поля кроме word опциональны: без meaning запись обогащается
// через внешние источники.
type AddWordRequest struct {
	Word       string   `json:"word" binding:"required"`
	Meaning    string   `json:"meaning"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Example    string   `json:"example"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r AddWordRequest) ToInput() service.AddWordInput {
	return service.AddWordInput{
		Text:       r.Word,
		Meaning:    r.Meaning,
		Synonyms:   r.Synonyms,
		Antonyms:   r.Antonyms,
		Example:    r.Example,
		Difficulty: r.Difficulty,
	}
}

// UpdateWordRequest представляет частичное обновление записи словаря.
// nil-поля не изменяются.
type UpdateWordRequest struct {
	Meaning    *string   `json:"meaning"`
	Synonyms   *[]string `json:"synonyms"`
	Antonyms   *[]string `json:"antonyms"`
	Example    *string   `json:"example"`
	Difficulty *string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	MarkedWeak *bool     `json:"markedWeak"`
}

// ToUpdate преобразует запрос в доменное частичное обновление
func (r UpdateWordRequest) ToUpdate() entity.WordUpdate {
	update := entity.WordUpdate{
		Meaning:    r.Meaning,
		Synonyms:   r.Synonyms,
		Antonyms:   r.Antonyms,
		Example:    r.Example,
		MarkedWeak: r.MarkedWeak,
	}
	if r.Difficulty != nil {
		d := entity.Difficulty(*r.Difficulty)
		update.Difficulty = &d
	}
	return update
}
