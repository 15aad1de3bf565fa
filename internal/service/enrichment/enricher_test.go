package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// fakeCompleter возвращает заранее заданный ответ или ошибку
type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string, _ CompletionOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// newDictionaryServer поднимает httptest-сервер с фиксированным телом ответа
func newDictionaryServer(t *testing.T, status int, body string) *DictionaryClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewDictionaryClient(server.URL+"/", time.Second)
}

const dictionaryBodyWithExample = `[{
	"word": "ameliorate",
	"meanings": [{
		"partOfSpeech": "verb",
		"definitions": [{
			"definition": "to make something better",
			"example": "Reforms ameliorated working conditions.",
			"synonyms": ["improve", "amend"],
			"antonyms": ["worsen"]
		}],
		"synonyms": ["better", "improve"],
		"antonyms": []
	}]
}]`

const dictionaryBodyWithoutExample = `[{
	"word": "obdurate",
	"meanings": [{
		"partOfSpeech": "adjective",
		"definitions": [{"definition": "stubbornly refusing to change one's opinion"}]
	}]
}]`

func TestDictionaryClient_Lookup(t *testing.T) {
	// Arrange
	client := newDictionaryServer(t, http.StatusOK, dictionaryBodyWithExample)

	// Act
	data, err := client.Lookup(context.Background(), "Ameliorate")

	// Assert: первое определение, дедупликация связей, лимиты
	require.NoError(t, err)
	assert.Equal(t, "to make something better", data.Meaning)
	assert.Equal(t, "Reforms ameliorated working conditions.", data.Example)
	assert.Equal(t, "verb", data.PartOfSpeech)
	assert.Equal(t, []string{"improve", "amend", "better"}, data.Synonyms)
	assert.Equal(t, []string{"worsen"}, data.Antonyms)
}

func TestDictionaryClient_Lookup_NotFound(t *testing.T) {
	client := newDictionaryServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	_, err := client.Lookup(context.Background(), "qwertyuiop")
	assert.Error(t, err)
}

// Базовый URL без завершающего слеша (как в конфиге по умолчанию)
// не должен склеиваться со словом в один сегмент пути.
func TestDictionaryClient_BaseURLWithoutTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dictionaryBodyWithExample))
	}))
	t.Cleanup(server.Close)

	client := NewDictionaryClient(server.URL+"/api/v2/entries/en", time.Second)

	_, err := client.Lookup(context.Background(), "lucid")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/entries/en/lucid", gotPath)
}

func TestEnricher_DictionaryWithExample_NoAICall(t *testing.T) {
	// Arrange
	dict := newDictionaryServer(t, http.StatusOK, dictionaryBodyWithExample)
	ai := &fakeCompleter{response: `{"example":"unused"}`}
	enricher := NewEnricher(dict, ai)

	// Act
	enriched := enricher.Enrich(context.Background(), "ameliorate")

	// Assert: словаря с примером достаточно, LLM не вызывается
	assert.Equal(t, "to make something better", enriched.Meaning)
	assert.Equal(t, "Reforms ameliorated working conditions.", enriched.Example)
	assert.Zero(t, ai.calls, "при полном словарном ответе LLM не должен вызываться")
}

func TestEnricher_DictionaryWithoutExample_AIEnhances(t *testing.T) {
	// Arrange
	dict := newDictionaryServer(t, http.StatusOK, dictionaryBodyWithoutExample)
	ai := &fakeCompleter{response: `{"example":"He remained obdurate despite all pleas.","difficulty":"hard"}`}
	enricher := NewEnricher(dict, ai)

	// Act
	enriched := enricher.Enrich(context.Background(), "obdurate")

	// Assert: определение словарное, пример и сложность от LLM
	assert.Equal(t, "stubbornly refusing to change one's opinion", enriched.Meaning)
	assert.Equal(t, "He remained obdurate despite all pleas.", enriched.Example)
	assert.Equal(t, entity.DifficultyHard, enriched.Difficulty)
	assert.Equal(t, 1, ai.calls)
}

func TestEnricher_DictionaryWithoutExample_AIFails_TemplatedExample(t *testing.T) {
	// Arrange
	dict := newDictionaryServer(t, http.StatusOK, dictionaryBodyWithoutExample)
	ai := &fakeCompleter{err: context.DeadlineExceeded}
	enricher := NewEnricher(dict, ai)

	// Act
	enriched := enricher.Enrich(context.Background(), "obdurate")

	// Assert: шаблонный пример по части речи, запрос не падает
	assert.Equal(t, "stubbornly refusing to change one's opinion", enriched.Meaning)
	assert.Contains(t, enriched.Example, "adjective")
	assert.Contains(t, enriched.Example, "obdurate")
}

func TestEnricher_DictionaryMiss_AIGeneratesFullEntry(t *testing.T) {
	// Arrange
	dict := newDictionaryServer(t, http.StatusNotFound, "{}")
	ai := &fakeCompleter{response: `{"meaning":"marked by excessive self-importance","synonyms":["pompous","arrogant"],"antonyms":["humble"],"example":"His grandiloquent speech bored everyone.","difficulty":"hard"}`}
	enricher := NewEnricher(dict, ai)

	// Act
	enriched := enricher.Enrich(context.Background(), "grandiloquent")

	// Assert
	assert.Equal(t, "marked by excessive self-importance", enriched.Meaning)
	assert.Equal(t, []string{"pompous", "arrogant"}, enriched.Synonyms)
	assert.Equal(t, []string{"humble"}, enriched.Antonyms)
	assert.Equal(t, entity.DifficultyHard, enriched.Difficulty)
}

func TestEnricher_AllSourcesFail_Fallback(t *testing.T) {
	// Arrange
	dict := newDictionaryServer(t, http.StatusInternalServerError, "")
	ai := &fakeCompleter{err: context.DeadlineExceeded}
	enricher := NewEnricher(dict, ai)

	// Act
	enriched := enricher.Enrich(context.Background(), "sesquipedalian")

	// Assert: каноническая заглушка, внешние сбои не всплывают
	assert.Contains(t, enriched.Meaning, "temporarily unavailable")
	assert.Contains(t, enriched.Example, "sesquipedalian")
	assert.Equal(t, entity.DifficultyMedium, enriched.Difficulty)
	assert.NotNil(t, enriched.Synonyms)
	assert.NotNil(t, enriched.Antonyms)
}

func TestEnricher_NilAI_HeuristicOnly(t *testing.T) {
	dict := newDictionaryServer(t, http.StatusNotFound, "{}")
	enricher := NewEnricher(dict, nil)

	enriched := enricher.Enrich(context.Background(), "obscure")

	assert.Contains(t, enriched.Meaning, "temporarily unavailable")
}

func TestEnricher_CircularDefinitionRejected(t *testing.T) {
	// Словарь определяет слово через него же — статья должна быть отброшена
	circularBody := `[{
		"word": "trifling",
		"meanings": [{
			"partOfSpeech": "adjective",
			"definitions": [{"definition": "in a trifling manner", "example": "A trifling matter."}]
		}]
	}]`
	dict := newDictionaryServer(t, http.StatusOK, circularBody)
	ai := &fakeCompleter{response: `{"meaning":"of little value or importance","synonyms":[],"antonyms":[],"example":"He wasted time on trivial, unimportant matters.","difficulty":"medium"}`}
	enricher := NewEnricher(dict, ai)

	enriched := enricher.Enrich(context.Background(), "trifling")

	assert.Equal(t, "of little value or importance", enriched.Meaning, "циклическое определение должно уступить LLM-статье")
	assert.Equal(t, 1, ai.calls)
}

func TestIsCircular(t *testing.T) {
	testCases := []struct {
		word     string
		meaning  string
		expected bool
	}{
		{"trifling", "in a trifling manner", true},
		{"trifling", "relating to a trifle", true}, // основа "trifl"
		{"lucid", "expressed clearly", false},
		{"run", "to move swiftly", false}, // короткая основа не срезается
		{"", "anything", false},
	}

	for _, tc := range testCases {
		t.Run(tc.word+"/"+tc.meaning, func(t *testing.T) {
			assert.Equal(t, tc.expected, isCircular(tc.word, tc.meaning))
		})
	}
}

func TestDetermineDifficulty(t *testing.T) {
	assert.Equal(t, entity.DifficultyEasy, determineDifficulty("terse", "brief and to the point"))
	assert.Equal(t, entity.DifficultyHard, determineDifficulty("sesquipedalian", "given to using long words"))
	assert.Equal(t, entity.DifficultyHard, determineDifficulty("terse", "sparing in the use of words and therefore often seeming abrupt or unfriendly to others around"))
	assert.Equal(t, entity.DifficultyMedium, determineDifficulty("obdurate", "stubbornly refusing to change an opinion or course of action"))
}
