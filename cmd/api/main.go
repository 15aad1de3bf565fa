package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/vocab-api/internal/config"
	"github.com/yourusername/vocab-api/internal/domain/repository"
	"github.com/yourusername/vocab-api/internal/handler"
	"github.com/yourusername/vocab-api/internal/middleware"
	"github.com/yourusername/vocab-api/internal/repository/jsonfile"
	"github.com/yourusername/vocab-api/internal/repository/redisblob"
	"github.com/yourusername/vocab-api/internal/service"
	"github.com/yourusername/vocab-api/internal/service/enrichment"
	"github.com/yourusername/vocab-api/internal/service/quizgen"
	"github.com/yourusername/vocab-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем Redis, если он сконфигурирован: он нужен либо как
	// хранилище словаря (driver=redis), либо для rate limiting
	var redisClient redis.UniversalClient
	if len(cfg.Redis.Addrs) > 0 || cfg.Redis.Addr != "" {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")
	}

	// Инициализируем репозитории в зависимости от драйвера хранилища
	var wordRepo repository.WordRepository
	var attemptRepo repository.AttemptRepository

	switch cfg.Storage.Driver {
	case "redis":
		if redisClient == nil {
			log.Printf("Storage driver 'redis' requires a configured Redis connection")
			os.Exit(1)
		}
		log.Printf("Хранилище: Redis (ключи %s, %s)", cfg.Storage.WordsKey, cfg.Storage.AttemptsKey)
		wordRepo = redisblob.NewWordRepo(redisClient, cfg.Storage.WordsKey, cfg.Storage.CacheTTL())
		attemptRepo = redisblob.NewAttemptRepo(redisClient, cfg.Storage.AttemptsKey, cfg.Storage.CacheTTL())
	default:
		log.Printf("Хранилище: JSON-файлы в %s", cfg.Storage.DataDir)
		wordRepo, err = jsonfile.NewWordRepo(cfg.Storage.DataDir)
		if err != nil {
			log.Printf("Failed to initialize word store: %v", err)
			os.Exit(1)
		}
		attemptRepo, err = jsonfile.NewAttemptRepo(cfg.Storage.DataDir)
		if err != nil {
			log.Printf("Failed to initialize attempt store: %v", err)
			os.Exit(1)
		}
	}

	// Инициализируем клиенты внешних источников.
	// LLM опционален: без ключа обогащение работает на словаре и шаблонах.
	dictClient := enrichment.NewDictionaryClient(cfg.Enrichment.DictionaryURL, cfg.Enrichment.EnrichmentTimeout())

	var aiClient enrichment.Completer
	if cfg.Enrichment.OpenRouterKey != "" {
		client, err := enrichment.NewOpenRouterClient(enrichment.OpenRouterConfig{
			APIKey:  cfg.Enrichment.OpenRouterKey,
			APIURL:  cfg.Enrichment.OpenRouterURL,
			Model:   cfg.Enrichment.OpenRouterModel,
			Timeout: cfg.Enrichment.EnrichmentTimeout(),
		})
		if err != nil {
			log.Printf("Failed to initialize OpenRouter client: %v", err)
			os.Exit(1)
		}
		aiClient = client
		log.Printf("LLM включен: %s", cfg.Enrichment.OpenRouterModel)
	} else {
		log.Println("OPENROUTER_API_KEY не задан: обогащение работает без LLM")
	}

	enricher := enrichment.NewEnricher(dictClient, aiClient)
	generator := quizgen.NewGenerator(aiClient, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Инициализируем сервисы
	wordService := service.NewWordService(wordRepo, enricher)
	quizService := service.NewQuizService(wordRepo, attemptRepo, generator, cfg.Quiz.HistoryLimit)

	// Инициализируем обработчики
	wordHandler := handler.NewWordHandler(wordService)
	quizHandler := handler.NewQuizHandler(quizService)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:5000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RequestID())

	// Rate limiting только при наличии Redis: на файловом хранилище без
	// Redis лимитер не строится, работаем без ограничений
	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient)
	}

	// Корневой маршрут и health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "GRE Vocab Builder API",
			"status":  "OK",
			"version": "1.0",
		})
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	if rateLimiter != nil {
		api.Use(rateLimiter.LimitByIP(middleware.APIRateLimitConfig()))
	}
	{
		// Словарь
		words := api.Group("/word")
		{
			words.GET("/all", wordHandler.GetAllWords)
			words.GET("/search", wordHandler.SearchWords)
			words.GET("/stats", wordHandler.GetStats)
			words.GET("/export", wordHandler.ExportWords)

			// Добавление слова ходит во внешние API — лимитируем отдельно
			if rateLimiter != nil {
				words.POST("/add", rateLimiter.Limit(middleware.AddWordRateLimitConfig()), wordHandler.AddWord)
			} else {
				words.POST("/add", wordHandler.AddWord)
			}

			// Группа маршрутов, требующих id слова
			wordWithID := words.Group("/:id")
			wordWithID.Use(middleware.ExtractIDParam("id", "wordID")) // Применяем middleware
			{
				wordWithID.GET("", wordHandler.GetWord)
				wordWithID.PATCH("", wordHandler.UpdateWord)
				wordWithID.DELETE("", wordHandler.DeleteWord)
			}
		}

		// Викторины
		quiz := api.Group("/quiz")
		{
			quiz.GET("/daily", quizHandler.GetDailyQuiz)
			quiz.POST("/submit", quizHandler.SubmitQuiz)
			quiz.GET("/history", quizHandler.GetHistory)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Server exited properly")
}
