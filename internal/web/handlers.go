// Package web は文字起こしAPIのHTTPハンドラーを提供します。
package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/transcript-forge/internal/cache"
	"github.com/yourusername/transcript-forge/internal/jobs"
	"github.com/yourusername/transcript-forge/internal/render"
	"github.com/yourusername/transcript-forge/internal/youtube"
)

// PDFRenderer は完成した文字起こしをPDFへ変換します。
type PDFRenderer interface {
	RenderPDF(title, markdown, font string) ([]byte, error)
}

// transcribeRequest は POST /transcribe のリクエストボディです。
type transcribeRequest struct {
	URL string `json:"url"`
}

// TranscribeHandler は POST /transcribe のハンドラーを返します。
// キャッシュ済みの動画は外部処理を起動せず、完了済みジョブを合成して返します。
func TranscribeHandler(registry *jobs.Registry, store *cache.Store, runner *jobs.Runner, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transcribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "JSON形式で url を指定してください。",
			})
			return
		}

		url := strings.TrimSpace(req.URL)
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "URLを入力してください。",
			})
			return
		}

		videoID, err := youtube.ExtractVideoID(url)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "YouTubeの動画URLとして解釈できません。",
			})
			return
		}

		if result, ok := store.Get(videoID); ok {
			jobID := registry.Create(jobs.StatusCompleted, "キャッシュから読み込みました", result)
			c.JSON(http.StatusOK, gin.H{"jobId": jobID})
			return
		}

		// クライアント入力ではなくサーバー設定の不備
		if apiKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "CONFIG_ERROR",
				"message": "GOOGLE_API_KEY が設定されていません。",
			})
			return
		}

		jobID := registry.Create(jobs.StatusProcessing, "開始しています...", nil)
		runner.Launch(jobID, videoID, url, apiKey)
		c.JSON(http.StatusOK, gin.H{"jobId": jobID})
	}
}

// StatusHandler は GET /status/:jobId のハンドラーを返します。
func StatusHandler(registry *jobs.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := lookupJob(c, registry)
		if !ok {
			return
		}

		payload := gin.H{
			"jobId":    record.JobID,
			"status":   record.Status,
			"progress": record.Progress,
		}
		switch record.Status {
		case jobs.StatusCompleted:
			payload["result"] = gin.H{
				"title":    record.Result.Title,
				"markdown": record.Result.Markdown,
				"filename": record.Result.Filename,
			}
		case jobs.StatusError:
			payload["error"] = record.Error
		}

		c.JSON(http.StatusOK, payload)
	}
}

// DownloadHandler は GET /download/:jobId のハンドラーを返します。
// 完了済みジョブのMarkdownを添付ファイルとして返します。
func DownloadHandler(registry *jobs.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := completedJob(c, registry)
		if !ok {
			return
		}

		c.Header("Content-Disposition", contentDisposition(record.Result.Filename, "transcript.md"))
		c.Header("Cache-Control", "no-store")
		c.Header("X-Job-Id", record.JobID)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(record.Result.Markdown))
	}
}

// DownloadPDFHandler は GET /download/:jobId/pdf のハンドラーを返します。
// font クエリは固定許可リストで検証し、許可外はデフォルトへフォールバックします。
func DownloadPDFHandler(registry *jobs.Registry, renderer PDFRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok := completedJob(c, registry)
		if !ok {
			return
		}

		font := render.Sanitize(c.Query("font"))
		data, err := renderer.RenderPDF(record.Result.Title, record.Result.Markdown, font)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "RENDER_FAILED",
				"message": "PDFの生成に失敗しました。",
			})
			return
		}

		pdfName := strings.TrimSuffix(record.Result.Filename, ".md") + ".pdf"
		c.Header("Content-Disposition", contentDisposition(pdfName, "transcript.pdf"))
		c.Header("Cache-Control", "no-store")
		c.Header("X-Job-Id", record.JobID)
		c.Data(http.StatusOK, "application/pdf", data)
	}
}

func lookupJob(c *gin.Context, registry *jobs.Registry) (jobs.Record, bool) {
	jobID := strings.TrimSpace(c.Param("jobId"))
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "jobId を指定してください。",
		})
		return jobs.Record{}, false
	}

	record, ok := registry.Get(jobID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "JOB_NOT_FOUND",
			"message": "指定されたジョブは存在しません。",
		})
		return jobs.Record{}, false
	}
	return record, true
}

func completedJob(c *gin.Context, registry *jobs.Registry) (jobs.Record, bool) {
	record, ok := lookupJob(c, registry)
	if !ok {
		return jobs.Record{}, false
	}
	if record.Status != jobs.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "JOB_NOT_COMPLETED",
			"message": "ジョブはまだ完了していません。",
		})
		return jobs.Record{}, false
	}
	return record, true
}
