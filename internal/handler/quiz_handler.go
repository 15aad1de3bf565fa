package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service"
	"github.com/yourusername/vocab-api/internal/service/quizgen"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// GetDailyQuiz генерирует викторину из приоритетных слов словаря
// GET /api/quiz/daily?type=meaning|synonym|antonym|completion|mixed
func (h *QuizHandler) GetDailyQuiz(c *gin.Context) {
	quizType, err := quizgen.ParseQuizType(c.Query("type"))
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	questions, err := h.quizService.GenerateQuiz(c.Request.Context(), quizType)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"quizType":       quizType,
			"questions":      questions,
			"totalQuestions": len(questions),
		},
	})
}

// SubmitQuiz проверяет ответы, обновляет статистику слов и сохраняет попытку
// POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quiz results"})
		return
	}

	grade, err := h.quizService.SubmitQuiz(req.ToResults(), req.TotalQuestions)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grade,
	})
}

// GetHistory возвращает последние сданные викторины, новые первыми
// GET /api/quiz/history?limit=
func (h *QuizHandler) GetHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid limit parameter"})
		return
	}

	attempts, err := h.quizService.GetHistory(limit)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    attempts,
		"count":   len(attempts),
	})
}

// handleQuizError преобразует доменные ошибки викторин в HTTP-статусы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
			"hint":    "Add some words to your vocabulary first",
		})
	} else if errors.Is(err, apperrors.ErrInsufficientVocabulary) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
			"hint":    "Add more words to your vocabulary, or pick a quiz type matching the words you have",
		})
	} else if errors.Is(err, apperrors.ErrNoQuestionsGenerated) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else if errors.Is(err, apperrors.ErrInvalidSubmission) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
