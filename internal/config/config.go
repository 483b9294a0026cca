// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 文字起こし設定
	GoogleAPIKey    string // 外部処理コマンドへ渡すAPIキー
	PipelineCommand string // 外部文字起こしコマンドのパス

	// キャッシュ設定
	CacheFile string // 結果キャッシュのファイルパス

	// PDF出力設定
	WkhtmltopdfPath string // wkhtmltopdf実行ファイルのパス（空の場合はPATH探索）
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	loadEnvFile()

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		PipelineCommand:    getEnv("PIPELINE_COMMAND", "clean-podcast"),
		CacheFile:          getEnv("CACHE_FILE", "transcript_cache.json"),
		WkhtmltopdfPath:    getEnv("WKHTMLTOPDF_PATH", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// ローカル開発ではAPIキーは任意（未設定のまま投入すると設定エラーを返す）。
func (c *Config) Validate() error {
	if c.GinMode == "release" {
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required in release mode")
		}
		if c.PipelineCommand == "" {
			return fmt.Errorf("PIPELINE_COMMAND is required in release mode")
		}
	}
	if c.CacheFile == "" {
		return fmt.Errorf("CACHE_FILE must not be empty")
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
