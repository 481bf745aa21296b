package config

import (
	"os"
	"time"
)

// 保存キーは localStorage 時代の名前をそのまま使う（既存データ互換のため）
const (
	StorageKeyDiaries = "rj_diaries"
	StorageKeyUser    = "rj_user"
	StorageKeyDraft   = "rj_draft"
)

// Config アプリケーション設定
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Storage StorageConfig
	Diary   DiaryConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// LogConfig ログ設定
type LogConfig struct {
	Level     string
	Directory string
}

// StorageConfig ローカルストレージ設定
type StorageConfig struct {
	Path string
}

// DiaryConfig 日記アプリ固有の固定値
type DiaryConfig struct {
	AutoSaveDelay time.Duration
	ToastDuration time.Duration
}

// LoadConfig 環境変数から設定を読み込み
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Directory: getEnv("LOG_DIRECTORY", "logs"),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "diary.db"),
		},
		Diary: DiaryConfig{
			AutoSaveDelay: getDurationEnv("AUTO_SAVE_DELAY", 1*time.Second),
			ToastDuration: getDurationEnv("TOAST_DURATION", 3*time.Second),
		},
	}
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv 環境変数をtime.Durationで取得
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
