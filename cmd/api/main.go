// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/transcript-forge/internal/cache"
	"github.com/yourusername/transcript-forge/internal/config"
	"github.com/yourusername/transcript-forge/internal/jobs"
	"github.com/yourusername/transcript-forge/internal/pipeline"
	"github.com/yourusername/transcript-forge/internal/render"
	"github.com/yourusername/transcript-forge/internal/web"
)

//go:embed index.html
var indexHTML []byte

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// 依存コンポーネントの組み立て
	registry := jobs.NewRegistry()
	store := cache.NewStore(cfg.CacheFile, log.Default())
	if err := store.LoadErr(); err != nil {
		log.Printf("cache started empty due to load failure: %v", err)
	}
	processor := &pipeline.Runner{Command: cfg.PipelineCommand}
	runner := jobs.NewRunner(registry, store, processor, log.Default())
	renderer := &render.Renderer{WkhtmltopdfPath: cfg.WkhtmltopdfPath}

	setupRoutes(router, cfg, registry, store, runner, renderer)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s, cached videos: %d)", addr, cfg.GinMode, store.Len())
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleIndex は同梱のシングルページUIを返します。
func handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "transcript-forge-api",
		"version": "0.1.0",
	})
}

// setupRoutes はエンドポイントの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, registry *jobs.Registry, store *cache.Store, runner *jobs.Runner, renderer *render.Renderer) {
	router.GET("/", handleIndex)
	router.GET("/health", handleHealth)

	router.POST("/transcribe", web.TranscribeHandler(registry, store, runner, cfg.GoogleAPIKey))
	router.GET("/status/:jobId", web.StatusHandler(registry))
	router.GET("/download/:jobId", web.DownloadHandler(registry))
	router.GET("/download/:jobId/pdf", web.DownloadPDFHandler(registry, renderer))
}
