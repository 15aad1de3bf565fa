package jsonfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

func newTestWordRepo(t *testing.T) *WordRepo {
	t.Helper()
	repo, err := NewWordRepo(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestWordRepo_AddAndGetAll_RoundTrip(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	word := entity.NewWord("Ameliorate", entity.Enrichment{
		Meaning:  "to make something better",
		Synonyms: []string{"improve"},
		Example:  "Reforms ameliorated working conditions.",
	})

	// Act
	require.NoError(t, repo.Add(word))
	all, err := repo.GetAll()

	// Assert
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "ameliorate", all[0].Text)
	assert.Equal(t, word.ID, all[0].ID)
	assert.Equal(t, word.Meaning, all[0].Meaning)
	assert.Equal(t, []string{"improve"}, all[0].Synonyms)
	assert.Zero(t, all[0].TimesQuizzed)
	assert.Zero(t, all[0].TimesWrong)
}

func TestWordRepo_Add_DuplicateCaseInsensitive(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	require.NoError(t, repo.Add(entity.NewWord("lucid", entity.Enrichment{Meaning: "clear"})))

	// Act: то же слово в другом регистре
	err := repo.Add(entity.NewWord("LUCID", entity.Enrichment{Meaning: "other"}))

	// Assert: ошибка дубликата и коллекция не изменена
	assert.ErrorIs(t, err, apperrors.ErrDuplicateWord)
	all, getErr := repo.GetAll()
	require.NoError(t, getErr)
	assert.Len(t, all, 1)
	assert.Equal(t, "clear", all[0].Meaning)
}

func TestWordRepo_FindByText(t *testing.T) {
	repo := newTestWordRepo(t)
	require.NoError(t, repo.Add(entity.NewWord("obdurate", entity.Enrichment{Meaning: "stubborn"})))

	found, err := repo.FindByText("  OBDURATE ")
	require.NoError(t, err)
	assert.Equal(t, "obdurate", found.Text)

	_, err = repo.FindByText("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWordRepo_Search(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	require.NoError(t, repo.Add(entity.NewWord("terse", entity.Enrichment{Meaning: "sparing in the use of words"})))
	require.NoError(t, repo.Add(entity.NewWord("verbose", entity.Enrichment{Meaning: "using more words than needed"})))

	// Act & Assert: совпадение по тексту слова
	byText, err := repo.Search("TER")
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "terse", byText[0].Text)

	// Совпадение по определению
	byMeaning, err := repo.Search("words")
	require.NoError(t, err)
	assert.Len(t, byMeaning, 2)

	// Ничего не найдено — пустой список, не ошибка
	none, err := repo.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWordRepo_Update(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	word := entity.NewWord("lucid", entity.Enrichment{Meaning: "clear"})
	require.NoError(t, repo.Add(word))

	marked := true
	update := entity.WordUpdate{MarkedWeak: &marked}

	// Act
	updated, err := repo.Update(word.ID, update)

	// Assert
	require.NoError(t, err)
	assert.True(t, updated.MarkedWeak)

	persisted, err := repo.GetByID(word.ID)
	require.NoError(t, err)
	assert.True(t, persisted.MarkedWeak, "изменение должно сохраниться в файле")
}

func TestWordRepo_Update_NotFound(t *testing.T) {
	repo := newTestWordRepo(t)
	_, err := repo.Update("nonexistent", entity.WordUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWordRepo_UpdateStats(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	word := entity.NewWord("terse", entity.Enrichment{Meaning: "brief"})
	require.NoError(t, repo.Add(word))

	// Act: два правильных ответа и один неправильный
	require.NoError(t, repo.UpdateStats(word.ID, true))
	require.NoError(t, repo.UpdateStats(word.ID, false))
	require.NoError(t, repo.UpdateStats(word.ID, true))

	// Assert: инвариант timesWrong <= timesQuizzed
	persisted, err := repo.GetByID(word.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.TimesQuizzed)
	assert.Equal(t, 1, persisted.TimesWrong)
	assert.LessOrEqual(t, persisted.TimesWrong, persisted.TimesQuizzed)
}

func TestWordRepo_UpdateStats_MissingIDIsNoop(t *testing.T) {
	repo := newTestWordRepo(t)
	assert.NoError(t, repo.UpdateStats("nonexistent", false))
}

func TestWordRepo_Delete(t *testing.T) {
	// Arrange
	repo := newTestWordRepo(t)
	word := entity.NewWord("lucid", entity.Enrichment{Meaning: "clear"})
	require.NoError(t, repo.Add(word))

	// Act & Assert: удаление существующей записи
	deleted, err := repo.Delete(word.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Повторное удаление — false
	deleted, err = repo.Delete(word.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWordRepo_GetAll_PreservesInsertionOrder(t *testing.T) {
	repo := newTestWordRepo(t)
	for _, text := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, repo.Add(entity.NewWord(text, entity.Enrichment{Meaning: text})))
	}

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Text)
	assert.Equal(t, "beta", all[1].Text)
	assert.Equal(t, "gamma", all[2].Text)
}
