// Package cache は動画IDをキーとする文字起こし結果の永続キャッシュを提供します。
package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/transcript-forge/internal/transcript"
)

// Store は完了済み結果をディスク上の単一JSONファイルへ永続化します。
// エビクションは行わないため、プロセスの長期稼働ではエントリ数が増え続けます。
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]*transcript.Result
	loadErr error
	logger  *log.Logger
}

// NewStore はキャッシュファイルを読み込んで Store を作成します。
// ファイルが存在しない、または破損している場合は空のキャッシュで開始し、
// 起動を失敗させません。読み込み失敗は記録され LoadErr で参照できます。
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		path:    path,
		entries: map[string]*transcript.Result{},
		logger:  logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadErr = err
			logger.Printf("failed to read cache file path=%s: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = map[string]*transcript.Result{}
		s.loadErr = err
		logger.Printf("failed to parse cache file path=%s: %v", path, err)
	}
	return s
}

// LoadErr は起動時の読み込み失敗を返します。正常に読み込めた場合は nil です。
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Get は動画IDに対応するキャッシュ済み結果を返します。
func (s *Store) Get(videoID string) (*transcript.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.entries[videoID]
	return result, ok
}

// Put は結果を登録し、マッピング全体をディスクへ書き戻します。
// 書き込みは同一ディレクトリの一時ファイルへ行い rename で置き換えるため、
// 途中で失敗しても既存ファイルが壊れることはありません。
func (s *Store) Put(videoID string, result *transcript.Result) error {
	if videoID == "" {
		return fmt.Errorf("videoID is required")
	}
	if result == nil {
		return fmt.Errorf("result is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[videoID] = result
	return s.persistLocked()
}

// Len は登録済みエントリ数を返します。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot は現在のマッピングのコピーを返します。
func (s *Store) Snapshot() map[string]*transcript.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]*transcript.Result, len(s.entries))
	for k, v := range s.entries {
		snapshot[k] = v
	}
	return snapshot
}

func (s *Store) persistLocked() error {
	payload, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
