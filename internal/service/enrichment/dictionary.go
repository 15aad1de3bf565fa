package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

	maxSynonyms = 5
	maxAntonyms = 3
)

// DictionaryData — результат поиска слова в публичном словаре
type DictionaryData struct {
	Meaning      string
	Synonyms     []string
	Antonyms     []string
	Example      string
	PartOfSpeech string
}

// DictionaryClient — клиент Free Dictionary API (dictionaryapi.dev)
type DictionaryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDictionaryClient создает клиент словаря. Пустой baseURL означает
// публичный dictionaryapi.dev.
func NewDictionaryClient(baseURL string, timeout time.Duration) *DictionaryClient {
	if baseURL == "" {
		baseURL = defaultDictionaryURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DictionaryClient{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Формат ответа dictionaryapi.dev: массив статей, в каждой — значения
// по частям речи с определениями и связями на обоих уровнях.
type dictionaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example"`
			Synonyms   []string `json:"synonyms"`
			Antonyms   []string `json:"antonyms"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
		Antonyms []string `json:"antonyms"`
	} `json:"meanings"`
}

// Lookup ищет слово в словаре. Возвращает первое определение первой части речи,
// синонимы и антонимы собираются со всех уровней, дедуплицируются и ограничиваются.
func (c *DictionaryClient) Lookup(ctx context.Context, word string) (*DictionaryData, error) {
	endpoint := c.baseURL + url.PathEscape(strings.ToLower(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dictionary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d for %q", resp.StatusCode, word)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 {
		return nil, fmt.Errorf("dictionary has no meanings for %q", word)
	}

	entry := entries[0]
	firstMeaning := entry.Meanings[0]
	if len(firstMeaning.Definitions) == 0 {
		return nil, fmt.Errorf("dictionary has no definitions for %q", word)
	}
	firstDefinition := firstMeaning.Definitions[0]

	var synonyms, antonyms []string
	for _, meaning := range entry.Meanings {
		for _, def := range meaning.Definitions {
			synonyms = append(synonyms, def.Synonyms...)
			antonyms = append(antonyms, def.Antonyms...)
		}
		synonyms = append(synonyms, meaning.Synonyms...)
		antonyms = append(antonyms, meaning.Antonyms...)
	}

	partOfSpeech := firstMeaning.PartOfSpeech
	if partOfSpeech == "" {
		partOfSpeech = "unknown"
	}

	return &DictionaryData{
		Meaning:      firstDefinition.Definition,
		Synonyms:     dedupLimit(synonyms, maxSynonyms),
		Antonyms:     dedupLimit(antonyms, maxAntonyms),
		Example:      firstDefinition.Example,
		PartOfSpeech: partOfSpeech,
	}, nil
}

// dedupLimit убирает повторы с сохранением порядка и обрезает список до limit
func dedupLimit(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, limit)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
		if len(result) == limit {
			break
		}
	}
	return result
}
