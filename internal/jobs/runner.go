package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/transcript-forge/internal/cache"
	"github.com/yourusername/transcript-forge/internal/transcript"
)

// Runner はキャッシュ未登録の動画に対する文字起こし処理をバックグラウンドで実行します。
// ハンドラーはジョブIDを返してすぐ制御を戻し、処理本体はゴルーチン上で走ります。
type Runner struct {
	registry  *Registry
	cache     *cache.Store
	processor transcript.Processor
	logger    *log.Logger
}

// NewRunner は Runner を作成します。
func NewRunner(registry *Registry, cacheStore *cache.Store, processor transcript.Processor, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		registry:  registry,
		cache:     cacheStore,
		processor: processor,
		logger:    logger,
	}
}

// Launch は処理をゴルーチンで開始し、即座に制御を返します。
// キャンセルには対応しません。開始したタスクは完了か失敗まで走ります。
func (r *Runner) Launch(jobID, videoID, url, apiKey string) {
	go r.run(jobID, videoID, url, apiKey)
}

func (r *Runner) run(jobID, videoID, url, apiKey string) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Printf("processor panic job=%s video=%s: %v", jobID, videoID, v)
			if err := r.registry.Fail(jobID, fmt.Sprintf("internal processing failure: %v", v)); err != nil {
				r.logger.Printf("failed to record panic job=%s: %v", jobID, err)
			}
		}
	}()

	result, err := r.processor.Process(context.Background(), url, apiKey, func(message string) {
		if err := r.registry.UpdateProgress(jobID, message); err != nil {
			r.logger.Printf("failed to update progress job=%s: %v", jobID, err)
		}
	})
	if err != nil {
		if failErr := r.registry.Fail(jobID, failureMessage(err)); failErr != nil {
			r.logger.Printf("failed to mark job failed job=%s: %v", jobID, failErr)
		}
		return
	}

	if err := r.registry.Complete(jobID, result); err != nil {
		r.logger.Printf("failed to mark job completed job=%s: %v", jobID, err)
	}

	// キャッシュは最適化であり正しさの要件ではないため、
	// 書き込みに失敗してもジョブは完了扱いのままとします。
	if err := r.cache.Put(videoID, result); err != nil {
		r.logger.Printf("failed to persist cache video=%s job=%s: %v", videoID, jobID, err)
	}
}

// failureMessage はジョブに記録するエラーメッセージを組み立てます。
// 利用者向けメッセージを持つエラーはそれを優先します。
func failureMessage(err error) string {
	var apiErr *transcript.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
