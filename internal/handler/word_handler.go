package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	"github.com/yourusername/vocab-api/internal/handler/dto"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
	"github.com/yourusername/vocab-api/internal/service"
)

// WordHandler обрабатывает запросы, связанные со словарем
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler создает новый обработчик словаря
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{
		wordService: wordService,
	}
}

// GetAllWords возвращает весь словарь
// GET /api/word/all
func (h *WordHandler) GetAllWords(c *gin.Context) {
	words, err := h.wordService.GetAllWords()
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    words,
		"count":   len(words),
	})
}

// SearchWords ищет слова по подстроке в тексте или определении
// GET /api/word/search?query=
func (h *WordHandler) SearchWords(c *gin.Context) {
	query := c.Query("query")

	words, err := h.wordService.SearchWords(query)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    words,
		"count":   len(words),
	})
}

// AddWord добавляет слово с обогащением через внешние источники
// POST /api/word/add
func (h *WordHandler) AddWord(c *gin.Context) {
	var req dto.AddWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Word is required"})
		return
	}

	word, err := h.wordService.AddWord(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateWord) {
			h.respondDuplicate(c, req.Word)
			return
		}
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Word added successfully",
		"data":    word,
	})
}

// respondDuplicate отдает 409 с уже существующей записью и подсказкой
func (h *WordHandler) respondDuplicate(c *gin.Context, text string) {
	existing, err := h.wordService.FindWordByText(text)
	if err != nil {
		// Дубликат исчез между проверкой и ответом
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": fmt.Sprintf("The word %q is already in your vocabulary!", entity.NormalizeText(text)),
		})
		return
	}

	c.JSON(http.StatusConflict, gin.H{
		"success": false,
		"message": fmt.Sprintf("The word %q is already in your vocabulary! Added on %s",
			existing.Text, existing.DateAdded.Format("1/2/2006")),
		"data": existing,
		"hint": "You can view it in the Vocabulary List page or try adding a different word form " +
			"(e.g., if you added \"trifle\", you could add \"trifling\")",
	})
}

// GetWord возвращает одну запись словаря
// GET /api/word/:id
func (h *WordHandler) GetWord(c *gin.Context) {
	wordID := c.MustGet("wordID").(string) // Получаем из контекста

	word, err := h.wordService.GetWord(wordID)
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": word})
}

// UpdateWord накладывает частичное обновление (пометка слабым и т.п.)
// PATCH /api/word/:id
func (h *WordHandler) UpdateWord(c *gin.Context) {
	wordID := c.MustGet("wordID").(string)

	var req dto.UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	word, err := h.wordService.UpdateWord(wordID, req.ToUpdate())
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Word updated successfully",
		"data":    word,
	})
}

// DeleteWord удаляет запись словаря
// DELETE /api/word/:id
func (h *WordHandler) DeleteWord(c *gin.Context) {
	wordID := c.MustGet("wordID").(string)

	if err := h.wordService.DeleteWord(wordID); err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Word deleted successfully",
	})
}

// GetStats возвращает агрегированную статистику словаря
// GET /api/word/stats
func (h *WordHandler) GetStats(c *gin.Context) {
	stats, err := h.wordService.GetStats()
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// ExportWords экспортирует словарь в CSV или Excel формате
// GET /api/word/export?format=csv|xlsx
func (h *WordHandler) ExportWords(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	words, err := h.wordService.GetAllWords()
	if err != nil {
		h.handleWordError(c, err)
		return
	}

	filename := fmt.Sprintf("vocabulary_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, words, filename)
	default:
		h.exportCSV(c, words, filename)
	}
}

// exportCSV экспортирует словарь в CSV с правильным экранированием спецсимволов
func (h *WordHandler) exportCSV(c *gin.Context, words []entity.Word, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Word", "Meaning", "Synonyms", "Antonyms", "Example", "Difficulty", "Times Quizzed", "Times Wrong", "Marked Weak", "Date Added"})

	// Данные
	for _, w := range words {
		markedWeak := "No"
		if w.MarkedWeak {
			markedWeak = "Yes"
		}

		writer.Write([]string{
			sanitizeForExcel(w.Text),
			sanitizeForExcel(w.Meaning),
			sanitizeForExcel(strings.Join(w.Synonyms, "; ")),
			sanitizeForExcel(strings.Join(w.Antonyms, "; ")),
			sanitizeForExcel(w.Example),
			string(w.Difficulty),
			strconv.Itoa(w.TimesQuizzed),
			strconv.Itoa(w.TimesWrong),
			markedWeak,
			w.DateAdded.Format("2006-01-02"),
		})
	}
}

// exportXLSX экспортирует словарь в Excel с использованием StreamWriter
func (h *WordHandler) exportXLSX(c *gin.Context, words []entity.Word, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Vocabulary"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[WordHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Word", "Meaning", "Synonyms", "Antonyms", "Example", "Difficulty", "Times Quizzed", "Times Wrong", "Marked Weak", "Date Added"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[WordHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, w := range words {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		markedWeak := "No"
		if w.MarkedWeak {
			markedWeak = "Yes"
		}

		row := []interface{}{
			sanitizeForExcel(w.Text),
			sanitizeForExcel(w.Meaning),
			sanitizeForExcel(strings.Join(w.Synonyms, "; ")),
			sanitizeForExcel(strings.Join(w.Antonyms, "; ")),
			sanitizeForExcel(w.Example),
			string(w.Difficulty),
			w.TimesQuizzed,
			w.TimesWrong,
			markedWeak,
			w.DateAdded.Format("2006-01-02"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[WordHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[WordHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[WordHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleWordError преобразует доменные ошибки словаря в HTTP-статусы
func (h *WordHandler) handleWordError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	} else if errors.Is(err, apperrors.ErrDuplicateWord) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in WordHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
