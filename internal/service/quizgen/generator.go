package quizgen

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service/enrichment"
)

// QuizType определяет формат вопросов генерируемой викторины
type QuizType string

const (
	QuizTypeMeaning    QuizType = "meaning"
	QuizTypeSynonym    QuizType = "synonym"
	QuizTypeAntonym    QuizType = "antonym"
	QuizTypeCompletion QuizType = "completion"
	QuizTypeMixed      QuizType = "mixed"
)

// ParseQuizType валидирует строковый тип викторины из запроса.
// Пустая строка означает смешанную викторину.
func ParseQuizType(s string) (QuizType, error) {
	switch QuizType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return QuizTypeMixed, nil
	case QuizTypeMeaning:
		return QuizTypeMeaning, nil
	case QuizTypeSynonym:
		return QuizTypeSynonym, nil
	case QuizTypeAntonym:
		return QuizTypeAntonym, nil
	case QuizTypeCompletion:
		return QuizTypeCompletion, nil
	case QuizTypeMixed:
		return QuizTypeMixed, nil
	default:
		return "", fmt.Errorf("%w: неизвестный тип викторины '%s'", apperrors.ErrValidation, s)
	}
}

const (
	// defaultPoolSize — размер пула приоритетных слов для одной викторины
	defaultPoolSize = 10
	// minWords — минимальный словарный запас для генерации
	minWords = 4
)

// Generator генерирует адаптивные викторины из словарного запаса пользователя.
// Слова с пометкой "слабое" и высоким процентом ошибок попадают в викторину
// первыми, дистракторы подбираются LLM с эвристическим откатом.
type Generator struct {
	ai       enrichment.Completer // может быть nil
	poolSize int

	// rng не потокобезопасен, обращения сериализуются через rngMu
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGenerator создает генератор викторин. Клиент ai может быть nil —
// тогда дистракторы всегда подбираются эвристически.
func NewGenerator(ai enrichment.Completer, rng *rand.Rand) *Generator {
	return &Generator{
		ai:       ai,
		rng:      rng,
		poolSize: defaultPoolSize,
	}
}

// Generate строит викторину заданного типа из переданного словаря.
// Возвращает ErrInsufficientVocabulary, если слов недостаточно, и
// ErrNoQuestionsGenerated, если ни для одного слова не удалось собрать вопрос.
func (g *Generator) Generate(ctx context.Context, words []entity.Word, quizType QuizType) ([]entity.Question, error) {
	if len(words) < minWords {
		return nil, fmt.Errorf("%w: нужно минимум %d слов, сейчас %d",
			apperrors.ErrInsufficientVocabulary, minWords, len(words))
	}

	// Для викторин по синонимам/антонимам проверяем весь словарь до
	// приоритетного отбора, чтобы сообщение об ошибке было точным
	switch quizType {
	case QuizTypeSynonym:
		if countWithSynonyms(words) < minWords {
			return nil, fmt.Errorf("%w: нужно минимум %d слов с синонимами для викторины по синонимам",
				apperrors.ErrInsufficientVocabulary, minWords)
		}
	case QuizTypeAntonym:
		if countWithAntonyms(words) < minWords {
			return nil, fmt.Errorf("%w: нужно минимум %d слов с антонимами для викторины по антонимам",
				apperrors.ErrInsufficientVocabulary, minWords)
		}
	}

	sorted := sortByPriority(words)
	pool := sorted
	if len(pool) > g.poolSize {
		pool = pool[:g.poolSize]
	}

	// Пул отбирается по приоритету до фильтрации по типу, поэтому
	// викторина может не собраться, даже если подходящих слов в словаре
	// достаточно, но они не попали в топ приоритета
	switch quizType {
	case QuizTypeSynonym:
		pool = filterWords(pool, (*entity.Word).HasSynonyms)
		if len(pool) < minWords {
			return nil, fmt.Errorf("%w: среди приоритетных слов меньше %d с синонимами",
				apperrors.ErrInsufficientVocabulary, minWords)
		}
	case QuizTypeAntonym:
		pool = filterWords(pool, (*entity.Word).HasAntonyms)
		if len(pool) < minWords {
			return nil, fmt.Errorf("%w: среди приоритетных слов меньше %d с антонимами",
				apperrors.ErrInsufficientVocabulary, minWords)
		}
	}

	questions := make([]entity.Question, 0, len(pool))
	for i := range pool {
		word := &pool[i]

		qType := quizType
		if qType == QuizTypeMixed {
			qType = g.pickType(word)
		}

		q := g.buildQuestion(ctx, word, qType, words)
		if q == nil {
			log.Printf("[QuizGen] Пропускаем слово '%s': не удалось собрать вопрос типа %s", word.Text, qType)
			continue
		}
		if err := q.Validate(); err != nil {
			log.Printf("[QuizGen] Пропускаем слово '%s': некорректный вопрос: %v", word.Text, err)
			continue
		}
		questions = append(questions, *q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: не удалось собрать ни одного вопроса", apperrors.ErrNoQuestionsGenerated)
	}
	return questions, nil
}

// pickType равновероятно выбирает тип вопроса из доступных для слова
func (g *Generator) pickType(word *entity.Word) QuizType {
	available := []QuizType{QuizTypeMeaning, QuizTypeCompletion}
	if word.HasSynonyms() {
		available = append(available, QuizTypeSynonym)
	}
	if word.HasAntonyms() {
		available = append(available, QuizTypeAntonym)
	}
	return available[g.intn(len(available))]
}

func (g *Generator) buildQuestion(ctx context.Context, word *entity.Word, qType QuizType, all []entity.Word) *entity.Question {
	switch qType {
	case QuizTypeMeaning:
		return g.meaningQuestion(ctx, word, all)
	case QuizTypeSynonym:
		return g.synonymQuestion(ctx, word, all)
	case QuizTypeAntonym:
		return g.antonymQuestion(ctx, word, all)
	case QuizTypeCompletion:
		return g.completionQuestion(word, all)
	default:
		return nil
	}
}

// meaningQuestion собирает вопрос "что означает слово". Сначала пробуем
// получить готовый вопрос от LLM, при неудаче подбираем дистракторы из
// значений других слов словаря.
func (g *Generator) meaningQuestion(ctx context.Context, word *entity.Word, all []entity.Word) *entity.Question {
	if q := g.aiMeaningQuestion(ctx, word); q != nil {
		return q
	}

	distractors := g.meaningDistractors(word, all)
	if len(distractors) < entity.OptionCount-1 {
		return nil
	}
	options, correctIndex := g.assembleOptions(word.Meaning, distractors)

	return &entity.Question{
		Word:         word.Text,
		Type:         entity.QuestionTypeMeaning,
		Text:         fmt.Sprintf("What does \"%s\" mean?", word.Text),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

func (g *Generator) aiMeaningQuestion(ctx context.Context, word *entity.Word) *entity.Question {
	if g.ai == nil {
		return nil
	}
	userPrompt := fmt.Sprintf(`Create a multiple choice question for the GRE word "%s" (meaning: %s).
Generate 3 plausible but incorrect answer options that could confuse a test-taker.
Return JSON: {"question": "What does \"%s\" mean?", "options": ["correct meaning", "wrong1", "wrong2", "wrong3"], "correctIndex": 0}
The correct meaning must be exactly: %s
Shuffle the options and set correctIndex accordingly.`,
		word.Text, word.Meaning, word.Text, word.Meaning)

	content, err := g.ai.Complete(ctx, quizSystemPrompt, userPrompt, enrichment.CompletionOptions{Temperature: 0.9})
	if err != nil {
		log.Printf("[QuizGen] LLM не ответил для слова '%s': %v", word.Text, err)
		return nil
	}
	parsed, ok := parseAIQuestion(content, word.Meaning)
	if !ok {
		return nil
	}
	return &entity.Question{
		Word:         word.Text,
		Type:         entity.QuestionTypeMeaning,
		Text:         parsed.Question,
		Options:      parsed.Options,
		CorrectIndex: parsed.CorrectIndex,
	}
}

// meaningDistractors подбирает до трех неправильных значений: сначала из слов
// той же сложности, затем из остального словаря, в конце — из общего запаса
func (g *Generator) meaningDistractors(word *entity.Word, all []entity.Word) []string {
	used := map[string]struct{}{strings.ToLower(word.Meaning): {}}
	distractors := make([]string, 0, entity.OptionCount-1)

	appendFrom := func(candidates []string) {
		for _, c := range g.shuffled(candidates) {
			if len(distractors) == entity.OptionCount-1 {
				return
			}
			lower := strings.ToLower(c)
			if _, dup := used[lower]; dup {
				continue
			}
			used[lower] = struct{}{}
			distractors = append(distractors, c)
		}
	}

	var sameDifficulty, others []string
	for i := range all {
		if all[i].ID == word.ID || all[i].Meaning == "" {
			continue
		}
		if all[i].Difficulty == word.Difficulty {
			sameDifficulty = append(sameDifficulty, all[i].Meaning)
		} else {
			others = append(others, all[i].Meaning)
		}
	}
	appendFrom(sameDifficulty)
	appendFrom(others)
	appendFrom(genericMeanings)

	return distractors
}

// synonymQuestion собирает вопрос "какое слово — синоним". Правильный ответ —
// первый синоним слова, дистракторы не должны быть его синонимами.
func (g *Generator) synonymQuestion(ctx context.Context, word *entity.Word, all []entity.Word) *entity.Question {
	if !word.HasSynonyms() {
		return nil
	}
	correct := word.Synonyms[0]

	distractors := g.aiWordDistractors(ctx, word, correct, "synonym", word.Synonyms)
	if distractors == nil {
		pool := g.relationPool(word, all, correct, word.Synonyms, collectSynonyms, genericWords)
		if len(pool) < entity.OptionCount-1 {
			return nil
		}
		distractors = g.shuffled(pool)[:entity.OptionCount-1]
	}
	options, correctIndex := g.assembleOptions(correct, distractors)

	return &entity.Question{
		Word:         word.Text,
		Type:         entity.QuestionTypeSynonym,
		Text:         fmt.Sprintf("Which word is a SYNONYM of \"%s\"?", word.Text),
		Hint:         fmt.Sprintf("Meaning: %s", word.Meaning),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// antonymQuestion симметричен synonymQuestion: правильный ответ — первый
// антоним, а собственные синонимы слова наоборот становятся хорошими
// дистракторами.
func (g *Generator) antonymQuestion(ctx context.Context, word *entity.Word, all []entity.Word) *entity.Question {
	if !word.HasAntonyms() {
		return nil
	}
	correct := word.Antonyms[0]

	distractors := g.aiWordDistractors(ctx, word, correct, "antonym", word.Antonyms)
	if distractors == nil {
		seed := append([]string{}, word.Synonyms...)
		pool := g.relationPool(word, all, correct, word.Antonyms, collectAntonyms, append(seed, genericOpposites...))
		if len(pool) < entity.OptionCount-1 {
			return nil
		}
		distractors = g.shuffled(pool)[:entity.OptionCount-1]
	}
	options, correctIndex := g.assembleOptions(correct, distractors)

	return &entity.Question{
		Word:         word.Text,
		Type:         entity.QuestionTypeAntonym,
		Text:         fmt.Sprintf("Which word is an ANTONYM (opposite) of \"%s\"?", word.Text),
		Hint:         fmt.Sprintf("Meaning: %s", word.Meaning),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// aiWordDistractors запрашивает у LLM три дистрактора для вопроса по
// синонимам или антонимам. Возвращает nil при любой неудаче.
func (g *Generator) aiWordDistractors(ctx context.Context, word *entity.Word, correct, relation string, exclude []string) []string {
	if g.ai == nil {
		return nil
	}
	userPrompt := fmt.Sprintf(`The GRE word "%s" has the %s "%s".
Generate 3 single words that are plausible but incorrect answer options — they must NOT be a %s of "%s".
Return JSON: {"distractors": ["word1", "word2", "word3"]}`,
		word.Text, relation, correct, relation, word.Text)

	content, err := g.ai.Complete(ctx, quizSystemPrompt, userPrompt, enrichment.CompletionOptions{Temperature: 0.7})
	if err != nil {
		log.Printf("[QuizGen] LLM не ответил для слова '%s': %v", word.Text, err)
		return nil
	}
	distractors, ok := parseAIDistractors(content, correct, exclude)
	if !ok {
		return nil
	}
	return distractors
}

// relationPool собирает кандидатов в дистракторы из связей других слов
// словаря плюс запасной список, исключая правильный ответ и связи самого
// слова
func (g *Generator) relationPool(word *entity.Word, all []entity.Word, correct string, ownRelations []string, collect func(*entity.Word) []string, extra []string) []string {
	excluded := make(map[string]struct{}, len(ownRelations)+2)
	excluded[strings.ToLower(correct)] = struct{}{}
	excluded[strings.ToLower(word.Text)] = struct{}{}
	for _, r := range ownRelations {
		excluded[strings.ToLower(r)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var pool []string
	add := func(candidates []string) {
		for _, c := range candidates {
			lower := strings.ToLower(c)
			if _, bad := excluded[lower]; bad {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			pool = append(pool, c)
		}
	}

	for i := range all {
		if all[i].ID == word.ID {
			continue
		}
		add(collect(&all[i]))
	}
	add(extra)

	return pool
}

func collectSynonyms(w *entity.Word) []string { return w.Synonyms }
func collectAntonyms(w *entity.Word) []string { return w.Antonyms }

// completionQuestion собирает вопрос "вставь слово в предложение" по одному
// из шаблонов; дистракторы — слова из словаря пользователя
func (g *Generator) completionQuestion(word *entity.Word, all []entity.Word) *entity.Question {
	var otherTexts []string
	for i := range all {
		if all[i].ID != word.ID {
			otherTexts = append(otherTexts, all[i].Text)
		}
	}
	if len(otherTexts) < entity.OptionCount-1 {
		return nil
	}
	distractors := g.shuffled(otherTexts)[:entity.OptionCount-1]
	options, correctIndex := g.assembleOptions(word.Text, distractors)

	template := completionTemplates[g.intn(len(completionTemplates))]

	return &entity.Question{
		Word:         word.Text,
		Type:         entity.QuestionTypeCompletion,
		Text:         "Choose the word that best completes the sentence:",
		Sentence:     template,
		Hint:         fmt.Sprintf("Meaning: %s", word.Meaning),
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// assembleOptions перемешивает правильный ответ с дистракторами и возвращает
// позицию правильного
func (g *Generator) assembleOptions(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, entity.OptionCount)
	options = append(options, correct)
	options = append(options, distractors...)
	g.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	for i, opt := range options {
		if opt == correct {
			return options, i
		}
	}
	return options, 0
}

func (g *Generator) intn(n int) int {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.rng.Intn(n)
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	g.rng.Shuffle(n, swap)
}

// shuffled возвращает перемешанную копию среза, не трогая оригинал
func (g *Generator) shuffled(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	g.shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func filterWords(words []entity.Word, keep func(*entity.Word) bool) []entity.Word {
	filtered := make([]entity.Word, 0, len(words))
	for i := range words {
		if keep(&words[i]) {
			filtered = append(filtered, words[i])
		}
	}
	return filtered
}

func countWithSynonyms(words []entity.Word) int {
	n := 0
	for i := range words {
		if words[i].HasSynonyms() {
			n++
		}
	}
	return n
}

func countWithAntonyms(words []entity.Word) int {
	n := 0
	for i := range words {
		if words[i].HasAntonyms() {
			n++
		}
	}
	return n
}

// quizSystemPrompt заставляет LLM отвечать чистым JSON без пояснений
const quizSystemPrompt = "You are a GRE vocabulary quiz assistant. Always respond with valid JSON only, no explanations or markdown."
