package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateWord используется при попытке добавить слово, которое уже есть в словаре
	// (сравнение без учета регистра).
	ErrDuplicateWord = errors.New("word already exists")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientVocabulary используется, когда в словаре недостаточно слов
	// для генерации викторины (меньше 4 слов, либо меньше 4 слов с нужной связью).
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")

	// ErrNoQuestionsGenerated используется, когда генератор не смог собрать ни одного вопроса.
	ErrNoQuestionsGenerated = errors.New("no questions generated")

	// ErrInvalidSubmission используется для некорректно сформированной сдачи викторины
	// (пустой список ответов, несовпадение длины, отсутствие обязательных полей).
	ErrInvalidSubmission = errors.New("invalid quiz submission")

	// ErrExternalService используется для сбоев внешних сервисов (словарь, LLM).
	// Наружу не отдается: вызывающий код всегда деградирует до fallback-значения.
	ErrExternalService = errors.New("external service failure")
)
