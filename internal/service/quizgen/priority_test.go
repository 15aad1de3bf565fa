package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

func word(text string, timesQuizzed, timesWrong int, markedWeak bool) entity.Word {
	return entity.Word{
		ID:           text,
		Text:         text,
		TimesQuizzed: timesQuizzed,
		TimesWrong:   timesWrong,
		MarkedWeak:   markedWeak,
	}
}

func TestLessPriority(t *testing.T) {
	tests := []struct {
		name string
		a    entity.Word
		b    entity.Word
		want bool
	}{
		{
			name: "Слабое слово раньше обычного",
			a:    word("a", 10, 0, true),
			b:    word("b", 0, 0, false),
			want: true,
		},
		{
			name: "Слабое слово побеждает даже высокий процент ошибок",
			a:    word("a", 10, 1, true), // errorRate 0.1
			b:    word("b", 10, 9, false), // errorRate 0.9
			want: true,
		},
		{
			name: "Больший процент ошибок раньше при разнице свыше порога",
			a:    word("a", 10, 8, false), // 0.8
			b:    word("b", 10, 2, false), // 0.2
			want: true,
		},
		{
			name: "Разница в пределах порога — сравниваем по числу показов",
			a:    word("a", 5, 3, false),  // 0.6, показов меньше
			b:    word("b", 10, 5, false), // 0.5
			want: true,
		},
		{
			name: "Новое слово раньше заезженного при равном проценте",
			a:    word("a", 1, 0, false),
			b:    word("b", 20, 0, false),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lessPriority(&tt.a, &tt.b))
			if tt.want {
				assert.False(t, lessPriority(&tt.b, &tt.a), "Сравнение должно быть антисимметричным")
			}
		})
	}
}

func TestSortByPriority(t *testing.T) {
	words := []entity.Word{
		word("fresh", 0, 0, false),
		word("weak", 20, 2, true),
		word("errorprone", 10, 8, false),
		word("mastered", 20, 1, false),
	}

	sorted := sortByPriority(words)

	assert.Equal(t, "weak", sorted[0].Text, "Помеченное слабым слово должно быть первым")
	assert.Equal(t, "errorprone", sorted[1].Text, "Слово с высоким процентом ошибок — вторым")
	assert.Equal(t, "fresh", sorted[2].Text, "Новое слово раньше освоенного")
	assert.Equal(t, "mastered", sorted[3].Text)

	// Исходный срез не меняется
	assert.Equal(t, "fresh", words[0].Text)
}

func TestSortByPriorityStable(t *testing.T) {
	// Слова с одинаковым приоритетом сохраняют исходный порядок
	words := []entity.Word{
		word("first", 5, 1, false),
		word("second", 5, 1, false),
		word("third", 5, 1, false),
	}

	sorted := sortByPriority(words)

	assert.Equal(t, "first", sorted[0].Text)
	assert.Equal(t, "second", sorted[1].Text)
	assert.Equal(t, "third", sorted[2].Text)
}
