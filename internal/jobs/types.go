// Package jobs は非同期文字起こしジョブの登録・状態管理・実行を提供します。
package jobs

import (
	"time"

	"github.com/yourusername/transcript-forge/internal/transcript"
)

// Status はジョブの実行状態を表します。
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Terminal は終端状態（completed / error）かどうかを返します。
// 終端状態から processing へ戻る遷移はありません。
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Record はジョブの現在状態を表します。
// Result は status が completed のとき、Error は error のときにのみ設定されます。
type Record struct {
	JobID     string             `json:"jobId"`
	Status    Status             `json:"status"`
	Progress  string             `json:"progress"`
	Result    *transcript.Result `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
