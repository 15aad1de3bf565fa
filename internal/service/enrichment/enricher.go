package enrichment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/vocab-api/internal/domain/entity"
)

// Enricher строит словарную статью для нового слова.
// Три уровня: словарь -> LLM -> шаблонный fallback. Сбои внешних сервисов
// не поднимаются наверх: Enrich всегда возвращает пригодную статью,
// деградируя качество, а не запрос.
type Enricher struct {
	dict *DictionaryClient
	ai   Completer
}

// NewEnricher создает пайплайн обогащения. ai может быть nil —
// тогда LLM-уровень пропускается.
func NewEnricher(dict *DictionaryClient, ai Completer) *Enricher {
	return &Enricher{dict: dict, ai: ai}
}

const jsonOnlySystemPrompt = "You respond only with valid JSON. No markdown, no code blocks, just pure JSON."

// Enrich строит статью для слова word (уже обрезанного)
func (e *Enricher) Enrich(ctx context.Context, word string) entity.Enrichment {
	log.Printf("[Enricher] Enriching word %q", word)

	// Уровень 1: публичный словарь — быстро, бесплатно, надежно
	dictData, err := e.dict.Lookup(ctx, word)
	if err != nil {
		log.Printf("[Enricher] Dictionary miss for %q: %v", word, err)
	} else if isCircular(word, dictData.Meaning) {
		// Определение через само слово ("trifling: in a trifling manner")
		// бесполезно для викторины — отбрасываем и идем к LLM
		log.Printf("[Enricher] Dictionary definition for %q is circular, trying AI", word)
		dictData = nil
	}

	if dictData != nil {
		if dictData.Example != "" {
			return entity.Enrichment{
				Meaning:    dictData.Meaning,
				Synonyms:   dictData.Synonyms,
				Antonyms:   dictData.Antonyms,
				Example:    dictData.Example,
				Difficulty: determineDifficulty(word, dictData.Meaning),
			}
		}

		// Словарь без примера: просим LLM дописать пример и оценить сложность
		if enhancement, ok := e.enhance(ctx, word, dictData.Meaning); ok {
			difficulty, ok := parseDifficulty(enhancement.Difficulty)
			if !ok {
				difficulty = determineDifficulty(word, dictData.Meaning)
			}
			return entity.Enrichment{
				Meaning:    dictData.Meaning,
				Synonyms:   dictData.Synonyms,
				Antonyms:   dictData.Antonyms,
				Example:    enhancement.Example,
				Difficulty: difficulty,
			}
		}

		// LLM не помог — шаблонный пример по части речи
		return entity.Enrichment{
			Meaning:    dictData.Meaning,
			Synonyms:   dictData.Synonyms,
			Antonyms:   dictData.Antonyms,
			Example:    fmt.Sprintf("The %s %q can be used in a GRE-style sentence.", dictData.PartOfSpeech, word),
			Difficulty: determineDifficulty(word, dictData.Meaning),
		}
	}

	// Уровень 2: словарь не знает слово — LLM собирает статью целиком
	if entry, ok := e.generateEntry(ctx, word); ok {
		difficulty, parsedOK := parseDifficulty(entry.Difficulty)
		if !parsedOK {
			difficulty = entity.DifficultyMedium
		}
		return entity.Enrichment{
			Meaning:    entry.Meaning,
			Synonyms:   dedupLimit(entry.Synonyms, maxSynonyms),
			Antonyms:   dedupLimit(entry.Antonyms, maxAntonyms),
			Example:    entry.Example,
			Difficulty: difficulty,
		}
	}

	// Уровень 3: оба источника недоступны — каноническая заглушка
	log.Printf("[Enricher] All sources failed for %q, using fallback entry", word)
	return entity.Enrichment{
		Meaning:    "A word used in GRE vocabulary context (sources temporarily unavailable)",
		Synonyms:   []string{},
		Antonyms:   []string{},
		Example:    fmt.Sprintf("The word %q is commonly used in academic writing.", word),
		Difficulty: entity.DifficultyMedium,
	}
}

// enhance запрашивает у LLM пример употребления для уже известного определения
func (e *Enricher) enhance(ctx context.Context, word, meaning string) (*aiEnhancement, bool) {
	if e.ai == nil {
		return nil, false
	}

	prompt := fmt.Sprintf(`For the word "%s" with definition "%s", create a GRE-style example sentence that uses the word in context. Also classify difficulty as easy, medium, or hard.

Return ONLY valid JSON:
{"example":"your sentence here","difficulty":"medium"}`, word, meaning)

	content, err := e.ai.Complete(ctx, jsonOnlySystemPrompt, prompt, CompletionOptions{Temperature: 0.3, MaxTokens: 400})
	if err != nil {
		log.Printf("[Enricher] AI enhancement failed for %q: %v", word, err)
		return nil, false
	}
	return parseEnhancement(content)
}

// generateEntry запрашивает у LLM полную словарную статью
func (e *Enricher) generateEntry(ctx context.Context, word string) (*aiEntry, bool) {
	if e.ai == nil {
		return nil, false
	}

	prompt := fmt.Sprintf(`You are a GRE vocabulary expert. For the word "%s", provide a complete entry:

Return ONLY valid JSON in this format:
{"meaning":"clear GRE-level definition","synonyms":["syn1","syn2","syn3"],"antonyms":["ant1","ant2"],"example":"GRE-style sentence using the word","difficulty":"easy/medium/hard"}`, word)

	content, err := e.ai.Complete(ctx, jsonOnlySystemPrompt, prompt, CompletionOptions{Temperature: 0.3, MaxTokens: 400})
	if err != nil {
		log.Printf("[Enricher] AI entry generation failed for %q: %v", word, err)
		return nil, false
	}

	entry, ok := parseEntry(content)
	if !ok {
		return nil, false
	}
	if isCircular(word, entry.Meaning) {
		log.Printf("[Enricher] AI definition for %q is circular, rejecting", word)
		return nil, false
	}
	return entry, true
}

// isCircular сообщает, определяется ли слово через само себя или свою основу
func isCircular(word, meaning string) bool {
	lowerWord := strings.ToLower(strings.TrimSpace(word))
	lowerMeaning := strings.ToLower(meaning)
	if lowerWord == "" || lowerMeaning == "" {
		return false
	}
	if strings.Contains(lowerMeaning, lowerWord) {
		return true
	}
	if stem := wordStem(lowerWord); stem != lowerWord && strings.Contains(lowerMeaning, stem) {
		return true
	}
	return false
}

// wordStem отрезает распространенный суффикс, оставляя не меньше 4 символов
func wordStem(word string) string {
	for _, suffix := range []string{"ing", "ed", "es", "ly", "s"} {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 4 {
			return strings.TrimSuffix(word, suffix)
		}
	}
	return word
}

// determineDifficulty — эвристика сложности по длине слова и определения
func determineDifficulty(word, meaning string) entity.Difficulty {
	wordLength := len(word)
	meaningLength := len(strings.Fields(meaning))

	switch {
	case wordLength <= 6 && meaningLength <= 10:
		return entity.DifficultyEasy
	case wordLength >= 10 || meaningLength >= 15:
		return entity.DifficultyHard
	default:
		return entity.DifficultyMedium
	}
}
