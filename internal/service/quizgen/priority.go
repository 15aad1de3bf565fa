package quizgen

import (
	"sort"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// errorRateThreshold — минимальная разница в доле ошибок, при которой
// она влияет на порядок слов. Меньшие различия считаются шумом.
const errorRateThreshold = 0.2

// lessPriority сравнивает два слова по приоритету попадания в викторину:
//  1. помеченные слабыми идут раньше;
//  2. при разнице в доле ошибок больше порога — выше та, что больше;
//  3. иначе раньше идет менее отработанное слово.
func lessPriority(a, b *entity.Word) bool {
	if a.MarkedWeak != b.MarkedWeak {
		return a.MarkedWeak
	}

	aRate, bRate := a.ErrorRate(), b.ErrorRate()
	diff := aRate - bRate
	if diff > errorRateThreshold || diff < -errorRateThreshold {
		return aRate > bRate
	}

	return a.TimesQuizzed < b.TimesQuizzed
}

// sortByPriority возвращает копию списка слов, устойчиво отсортированную
// по убыванию приоритета. Исходный срез не изменяется.
func sortByPriority(words []entity.Word) []entity.Word {
	sorted := make([]entity.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessPriority(&sorted[i], &sorted[j])
	})
	return sorted
}
