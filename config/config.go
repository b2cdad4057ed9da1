package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: 无法加载.env文件: %v", err)
	}
}

// Config 应用配置
type Config struct {
	Server ServerConfig
	News   NewsConfig
	OpenAI OpenAIConfig
	MinIO  MinIOConfig
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string
	Env  string
	// PrefetchPeople 定时任务预生成的热门人物列表
	PrefetchPeople []string
}

// NewsConfig 新闻API配置
type NewsConfig struct {
	BaseURL  string
	APIKey   string
	MaxItems int
	// FetchArticleBody 是否抓取新闻原文正文用于增强提示词
	FetchArticleBody bool
}

// OpenAIConfig OpenAI/Deepseek配置
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// MinIOConfig MinIO存储配置
type MinIOConfig struct {
	Endpoint        string
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
}

// LoadConfig 从环境变量加载配置，进程启动时调用一次
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("APP_PORT", "3001"),
			Env:            getEnvOrDefault("APP_ENV", "production"),
			PrefetchPeople: splitList(getEnvOrDefault("PREFETCH_PEOPLE", "")),
		},
		News: NewsConfig{
			BaseURL:          getEnvOrDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
			APIKey:           getEnvOrDefault("NEWS_API_KEY", ""),
			MaxItems:         getEnvIntOrDefault("MAX_ITEMS", 3),
			FetchArticleBody: getEnvBoolOrDefault("FETCH_ARTICLE_BODY", false),
		},
		OpenAI: OpenAIConfig{
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
			Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvIntOrDefault("OPENAI_MAX_TOKENS", 4096),
			Temperature: 0.8,
			TopP:        0.9,
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9000"),
			BucketName:      getEnvOrDefault("MINIO_BUCKET_NAME", "celebrity-news"),
			AccessKeyID:     getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		},
	}
}

// Validate 检查必需的密钥是否存在
// 缺失的密钥是可恢复的配置错误，在任何网络调用之前检查
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.News.APIKey) == "" {
		missing = append(missing, "NEWS_API_KEY（新闻API密钥，从 newsapi.org 获取）")
	}
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY（AI接口密钥）")
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少必需的配置: %s，请在环境变量或.env文件中设置", strings.Join(missing, "、"))
	}
	return nil
}

// getEnvOrDefault 获取环境变量或默认值
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvIntOrDefault 获取环境变量(整数)或默认值
func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvBoolOrDefault 获取环境变量(布尔)或默认值
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// splitList 按逗号拆分列表，忽略空项
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
