package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Enrichment EnrichmentConfig
	Quiz       QuizConfig
	CORS       CORSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// StorageConfig содержит настройки хранилища словаря
type StorageConfig struct {
	// Driver: Тип хранилища ("file" или "redis"). По умолчанию "file".
	Driver string `mapstructure:"driver"`

	// DataDir: Каталог с JSON-файлами для драйвера "file"
	DataDir string `mapstructure:"data_dir"`

	// WordsKey, AttemptsKey: Ключи Redis для драйвера "redis"
	WordsKey    string `mapstructure:"words_key"`
	AttemptsKey string `mapstructure:"attempts_key"`

	// CacheTTLSec: Время жизни кеша чтения для драйвера "redis" (в секундах).
	// 0 отключает кеширование.
	CacheTTLSec int `mapstructure:"cache_ttl_sec"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single' (для обратной совместимости).
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// EnrichmentConfig содержит настройки внешних источников словарных данных
type EnrichmentConfig struct {
	// DictionaryURL: Базовый URL бесплатного словарного API
	DictionaryURL string `mapstructure:"dictionary_url"`

	// OpenRouterURL, OpenRouterKey, OpenRouterModel: Настройки LLM через OpenRouter.
	// Пустой ключ отключает LLM, остаются словарь и запасные значения.
	OpenRouterURL   string `mapstructure:"openrouter_url"`
	OpenRouterKey   string `mapstructure:"openrouter_key"`
	OpenRouterModel string `mapstructure:"openrouter_model"`

	// TimeoutSec: Таймаут запросов к внешним API (в секундах)
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// QuizConfig содержит настройки генератора викторин
type QuizConfig struct {
	// HistoryLimit: Сколько попыток отдает история викторин, если лимит не задан в запросе
	HistoryLimit int `mapstructure:"history_limit"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EnrichmentTimeout возвращает таймаут внешних запросов как Duration
func (e *EnrichmentConfig) EnrichmentTimeout() time.Duration {
	if e.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.TimeoutSec) * time.Second
}

// CacheTTL возвращает время жизни кеша чтения как Duration
func (s *StorageConfig) CacheTTL() time.Duration {
	if s.CacheTTLSec <= 0 {
		return 0
	}
	return time.Duration(s.CacheTTLSec) * time.Second
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Устанавливаем значения по умолчанию
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.readtimeout", 15)
	vip.SetDefault("server.writetimeout", 30)
	vip.SetDefault("storage.driver", "file")
	vip.SetDefault("storage.data_dir", "data")
	vip.SetDefault("storage.words_key", "vocab:words")
	vip.SetDefault("storage.attempts_key", "vocab:quiz_attempts")
	vip.SetDefault("storage.cache_ttl_sec", 30)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("enrichment.dictionary_url", "https://api.dictionaryapi.dev/api/v2/entries/en/")
	vip.SetDefault("enrichment.openrouter_url", "https://openrouter.ai/api/v1/chat/completions")
	vip.SetDefault("enrichment.openrouter_model", "mistralai/mistral-7b-instruct:free")
	vip.SetDefault("enrichment.timeout_sec", 10)
	vip.SetDefault("quiz.history_limit", 20)

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// Привязка для секции Storage
	vip.BindEnv("storage.driver", "STORAGE_DRIVER")
	vip.BindEnv("storage.data_dir", "STORAGE_DATA_DIR")
	vip.BindEnv("storage.words_key", "STORAGE_WORDS_KEY")
	vip.BindEnv("storage.attempts_key", "STORAGE_ATTEMPTS_KEY")
	vip.BindEnv("storage.cache_ttl_sec", "STORAGE_CACHE_TTL_SEC")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS") // Для массива строк
	vip.BindEnv("redis.addr", "REDIS_ADDR")   // Для одиночной строки
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции Enrichment
	vip.BindEnv("enrichment.dictionary_url", "DICTIONARY_URL")
	vip.BindEnv("enrichment.openrouter_url", "OPENROUTER_URL")
	vip.BindEnv("enrichment.openrouter_key", "OPENROUTER_API_KEY")
	vip.BindEnv("enrichment.openrouter_model", "OPENROUTER_MODEL")
	vip.BindEnv("enrichment.timeout_sec", "ENRICHMENT_TIMEOUT_SEC")

	// Привязка для секции Quiz
	vip.BindEnv("quiz.history_limit", "QUIZ_HISTORY_LIMIT")

	// Привязка для CORS
	vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	// 3. Устанавливаем путь к файлу конфигурации
	if configPath != "" {
		vip.SetConfigFile(configPath)
		// 4. Пытаемся прочитать файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 5. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Storage Driver: %s", cfg.Storage.Driver)
		log.Printf("Storage Data Dir: %s", cfg.Storage.DataDir)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("OpenRouter Key Set: %t", cfg.Enrichment.OpenRouterKey != "")
		log.Printf("OpenRouter Model: %s", cfg.Enrichment.OpenRouterModel)
		log.Printf("-----------------------------------------")
	}

	// 7. Проверка обязательных параметров
	switch cfg.Storage.Driver {
	case "file":
		if cfg.Storage.DataDir == "" {
			return nil, fmt.Errorf("storage data dir is required for the file driver (check STORAGE_DATA_DIR env var)")
		}
	case "redis":
		if len(cfg.Redis.Addrs) == 0 && cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis address is required for the redis driver (check REDIS_ADDR env var)")
		}
	default:
		return nil, fmt.Errorf("unknown storage driver '%s' (expected 'file' or 'redis')", cfg.Storage.Driver)
	}

	return &cfg, nil
}
