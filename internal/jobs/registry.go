package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/transcript-forge/internal/transcript"
)

// Registry はプロセス内のジョブ表です。プロセス再起動で空になります。
// ジョブの削除やTTLはありません（長期稼働では増え続ける点は既知の未解決事項）。
type Registry struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewRegistry は空の Registry を作成します。
func NewRegistry() *Registry {
	return &Registry{records: map[string]*Record{}}
}

// Create は新しいジョブを登録し、ジョブIDを返します。
// キャッシュヒット時は完了状態・結果つきのジョブを直接作成できます。
func (r *Registry) Create(status Status, progress string, result *transcript.Result) string {
	jobID := uuid.NewString()
	now := time.Now().UTC()
	record := &Record{
		JobID:     jobID,
		Status:    status,
		Progress:  progress,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.records[jobID] = record
	r.mu.Unlock()
	return jobID
}

// Get はジョブ状態のコピーを返します。存在しないIDは ok=false で報告されます。
func (r *Registry) Get(jobID string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[jobID]
	if !ok {
		return Record{}, false
	}
	return *record, true
}

// UpdateProgress は進捗メッセージを置き換えます。追記ではなく常に上書きで、
// 読み手には最後に書き込まれた値だけが見えます。
func (r *Registry) UpdateProgress(jobID, message string) error {
	return r.update(jobID, func(record *Record) {
		record.Progress = message
	})
}

// Complete はジョブを完了状態へ遷移させ、結果を保存します。
func (r *Registry) Complete(jobID string, result *transcript.Result) error {
	return r.update(jobID, func(record *Record) {
		record.Status = StatusCompleted
		record.Result = result
		record.Error = ""
	})
}

// Fail はジョブを失敗状態へ遷移させ、エラーメッセージを保存します。
func (r *Registry) Fail(jobID, message string) error {
	return r.update(jobID, func(record *Record) {
		record.Status = StatusError
		record.Error = message
	})
}

// Len は登録済みジョブ数を返します。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Registry) update(jobID string, mutate func(*Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[jobID]
	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	mutate(record)
	record.UpdatedAt = time.Now().UTC()
	return nil
}
