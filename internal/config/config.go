package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// Common настройки, общие для бота и бэкенда
type Common struct {
	Environment string
	LogLevel    string
	APIKey      string
}

// Bot настройки Telegram-бота
type Bot struct {
	Common
	TelegramToken        string
	APIBaseURL           string
	APITimeout           time.Duration
	DefaultLanguage      model.Language
	WhatsAppSchoolsPhone string
	WhatsAppTestsPhone   string
	SessionTTL           time.Duration
}

// Server настройки бэкенда с API и админкой
type Server struct {
	Common
	DBDSN         string
	HTTPAddr      string
	MigrationsDir string // пусто: миграции, встроенные в бинарник
	TestsPriceKZT int
}

// LoadBot читает настройки бота из .env и переменных окружения
func LoadBot() (*Bot, error) {
	loadDotEnv()

	timeout, err := durationEnv("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	// 0 отключает удаление брошенных диалогов
	ttl, err := durationEnv("SESSION_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Bot{
		Common:               loadCommon(),
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		APIBaseURL:           stringEnv("API_BASE_URL", "http://localhost:8002/api"),
		APITimeout:           timeout,
		DefaultLanguage:      model.ParseLanguage(os.Getenv("DEFAULT_LANGUAGE"), model.LanguageRU),
		WhatsAppSchoolsPhone: os.Getenv("WHATSAPP_SCHOOLS_PHONE"),
		WhatsAppTestsPhone:   os.Getenv("WHATSAPP_TESTS_PHONE"),
		SessionTTL:           ttl,
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return cfg, nil
}

// LoadServer читает настройки бэкенда из .env и переменных окружения
func LoadServer() (*Server, error) {
	loadDotEnv()

	price, err := intEnv("TESTS_PRICE_KZT", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Server{
		Common:        loadCommon(),
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      stringEnv("HTTP_ADDR", ":8002"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		TestsPriceKZT: price,
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	return cfg, nil
}

func loadDotEnv() {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}
}

func loadCommon() Common {
	return Common{
		Environment: stringEnv("ENV", "development"),
		LogLevel:    stringEnv("LOG_LEVEL", "info"),
		APIKey:      os.Getenv("API_KEY"),
	}
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	// допускаем и "10s", и просто число секунд
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
