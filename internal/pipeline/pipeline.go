// Package pipeline は外部の文字起こしコマンドを transcript.Processor として公開します。
//
// 外部コマンドは引数に動画URLを受け取り、標準出力へ1行1JSONのイベントを書き込みます。
//
//	{"event":"progress","message":"Transcribing..."}
//	{"event":"result","result":{"title":"...","markdown":"...","filename":"..."}}
//
// progress イベントはそのまま進捗シンクへ転送され、result イベントが最終成果です。
package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/yourusername/transcript-forge/internal/transcript"
)

const (
	eventProgress = "progress"
	eventResult   = "result"
)

type event struct {
	Event   string             `json:"event"`
	Message string             `json:"message,omitempty"`
	Result  *transcript.Result `json:"result,omitempty"`
}

// Runner は設定されたコマンドを動画ごとに起動する Processor 実装です。
type Runner struct {
	// Command は外部文字起こしコマンドのパスです。
	Command string
}

// Process は外部コマンドを実行し、進捗イベントを progress へ転送して結果を返します。
// 認証情報はコマンドライン引数ではなく環境変数 GOOGLE_API_KEY として子プロセスへ渡します。
func (r *Runner) Process(ctx context.Context, url, apiKey string, progress transcript.ProgressFunc) (*transcript.Result, error) {
	if r.Command == "" {
		return nil, fmt.Errorf("pipeline command is not configured")
	}

	cmd := exec.CommandContext(ctx, r.Command, url)
	cmd.Env = append(os.Environ(), "GOOGLE_API_KEY="+apiKey)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open pipeline stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start pipeline %s: %w", r.Command, err)
	}

	result, decodeErr := consumeEvents(stdout, progress)
	if decodeErr != nil {
		// 子プロセスが書き込みでブロックしないよう残りを読み捨てる
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		return nil, transcript.NewError("PROCESSING_FAILED",
			fmt.Sprintf("文字起こしコマンドが失敗しました: %s", tail(stderr.String())), err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	if result == nil {
		return nil, transcript.NewError("PROCESSING_FAILED",
			"文字起こしコマンドが結果を返しませんでした。", nil)
	}
	return result, nil
}

// consumeEvents は行区切りJSONイベントを読み取り、result イベントの内容を返します。
func consumeEvents(r io.Reader, progress transcript.ProgressFunc) (*transcript.Result, error) {
	scanner := bufio.NewScanner(r)
	// result イベントはMarkdown全文を含むため、バッファを大きめに取る
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var result *transcript.Result
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("failed to parse pipeline event: %w", err)
		}
		switch ev.Event {
		case eventProgress:
			if progress != nil {
				progress(ev.Message)
			}
		case eventResult:
			if ev.Result == nil {
				return nil, fmt.Errorf("result event missing payload")
			}
			result = ev.Result
		default:
			return nil, fmt.Errorf("unknown pipeline event: %q", ev.Event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pipeline output: %w", err)
	}
	return result, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	const max = 512
	if len(s) > max {
		return "..." + s[len(s)-max:]
	}
	return s
}
