package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 应用配置
type Config struct {
	Env        string
	AppName    string
	AppVersion string
	Port       string

	DatabaseURL string `validate:"required"`

	// 外部 API 凭证
	OpenAIAPIKey      string `validate:"required"`
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int
	GoogleAPIKey      string
	TMDBAPIKey        string
	YouTubeAPIKey     string

	// 上游请求超时时间，防止外部服务卡死请求
	UpstreamTimeout time.Duration

	// CORS
	CORSOrigins     []string
	CORSMethods     []string
	CORSCredentials bool
}

// Load 加载并校验配置，必填项缺失时直接返回错误（进程启动即失败）
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// 未提供完整连接串时，按独立变量拼接
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "wisepick")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	}

	temperature, _ := strconv.ParseFloat(getEnv("OPENAI_TEMPERATURE", "0.7"), 64)
	maxTokens, _ := strconv.Atoi(getEnv("OPENAI_MAX_TOKENS", "0"))
	timeoutSec, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"))

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		AppName:    getEnv("APP_NAME", "Recommend Me Something API"),
		AppVersion: "1.0.0",
		Port:       getEnv("PORT", "5008"),

		DatabaseURL: dbURL,

		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITemperature: temperature,
		OpenAIMaxTokens:   maxTokens,
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		TMDBAPIKey:        os.Getenv("TMDB_API_KEY"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_DATA_API_KEY"),

		UpstreamTimeout: time.Duration(timeoutSec) * time.Second,

		CORSOrigins:     splitEnv("CORS_ORIGINS", "*"),
		CORSMethods:     splitEnv("CORS_METHODS", "GET,POST,PUT,DELETE"),
		CORSCredentials: getEnv("CORS_CREDENTIALS", "true") == "true",
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
