package entity

import (
	"strconv"
	"strings"
	"time"
)

// Difficulty отражает субъективную сложность слова для изучающего
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid проверяет, что значение сложности входит в допустимый набор
func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Word представляет запись словаря: само слово, его определение,
// связи (синонимы/антонимы) и статистику прохождения викторин.
// Имена JSON-полей совпадают с форматом файлов words.json.
type Word struct {
	ID           string     `json:"id"`
	Text         string     `json:"word"`
	Meaning      string     `json:"meaning"`
	Synonyms     []string   `json:"synonyms"`
	Antonyms     []string   `json:"antonyms"`
	Example      string     `json:"example"`
	Difficulty   Difficulty `json:"difficulty"`
	TimesQuizzed int        `json:"timesQuizzed"`
	TimesWrong   int        `json:"timesWrong"`
	MarkedWeak   bool       `json:"markedWeak"`
	DateAdded    time.Time  `json:"dateAdded"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Enrichment содержит данные, полученные от внешних источников (словарь/LLM)
// при добавлении нового слова.
type Enrichment struct {
	Meaning    string     `json:"meaning"`
	Synonyms   []string   `json:"synonyms"`
	Antonyms   []string   `json:"antonyms"`
	Example    string     `json:"example"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewWord собирает новую запись словаря из текста слова и данных обогащения.
// Текст нормализуется (trim + нижний регистр), счетчики обнуляются,
// опциональные поля получают значения по умолчанию.
// ID — непрозрачная строка, производная от времени создания.
func NewWord(text string, enriched Enrichment) *Word {
	now := time.Now().UTC()

	synonyms := enriched.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}
	antonyms := enriched.Antonyms
	if antonyms == nil {
		antonyms = []string{}
	}
	difficulty := enriched.Difficulty
	if !difficulty.IsValid() {
		difficulty = DifficultyMedium
	}

	return &Word{
		ID:           strconv.FormatInt(now.UnixNano(), 10),
		Text:         NormalizeText(text),
		Meaning:      enriched.Meaning,
		Synonyms:     synonyms,
		Antonyms:     antonyms,
		Example:      enriched.Example,
		Difficulty:   difficulty,
		TimesQuizzed: 0,
		TimesWrong:   0,
		MarkedWeak:   false,
		DateAdded:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeText приводит текст слова к каноническому виду для хранения и сравнения
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ErrorRate возвращает долю неправильных ответов по слову.
// Для слов, которые еще ни разу не попадали в викторину, возвращает 0.
func (w *Word) ErrorRate() float64 {
	if w.TimesQuizzed == 0 {
		return 0
	}
	return float64(w.TimesWrong) / float64(w.TimesQuizzed)
}

// IsWeak сообщает, считается ли слово "слабым": либо пользователь пометил его сам,
// либо доля ошибок превышает половину при ненулевой статистике
func (w *Word) IsWeak() bool {
	return w.MarkedWeak || (w.TimesQuizzed > 0 && w.ErrorRate() > 0.5)
}

// HasSynonyms сообщает, есть ли у слова хотя бы один синоним
func (w *Word) HasSynonyms() bool {
	return len(w.Synonyms) > 0
}

// HasAntonyms сообщает, есть ли у слова хотя бы один антоним
func (w *Word) HasAntonyms() bool {
	return len(w.Antonyms) > 0
}

// WordUpdate описывает частичное обновление записи словаря.
// nil-поля не изменяются.
type WordUpdate struct {
	Meaning    *string     `json:"meaning,omitempty"`
	Synonyms   *[]string   `json:"synonyms,omitempty"`
	Antonyms   *[]string   `json:"antonyms,omitempty"`
	Example    *string     `json:"example,omitempty"`
	Difficulty *Difficulty `json:"difficulty,omitempty"`
	MarkedWeak *bool       `json:"markedWeak,omitempty"`
}

// Apply накладывает частичное обновление на запись и обновляет updatedAt
func (u WordUpdate) Apply(w *Word) {
	if u.Meaning != nil {
		w.Meaning = *u.Meaning
	}
	if u.Synonyms != nil {
		w.Synonyms = *u.Synonyms
	}
	if u.Antonyms != nil {
		w.Antonyms = *u.Antonyms
	}
	if u.Example != nil {
		w.Example = *u.Example
	}
	if u.Difficulty != nil && u.Difficulty.IsValid() {
		w.Difficulty = *u.Difficulty
	}
	if u.MarkedWeak != nil {
		w.MarkedWeak = *u.MarkedWeak
	}
	w.UpdatedAt = time.Now().UTC()
}
