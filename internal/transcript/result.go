// Package transcript は文字起こし結果のデータ型と外部処理コラボレーターの契約を定義します。
package transcript

import "context"

// Result は1本の動画に対する文字起こし処理の成果を表します。
// コアが依存するのは Title / Markdown / Filename のみで、他のフィールドは
// 外部処理コマンドが付加するメタデータです。
type Result struct {
	Title        string `json:"title"`
	Markdown     string `json:"markdown"`
	Filename     string `json:"filename"`
	VideoID      string `json:"videoId,omitempty"`
	ChapterCount int    `json:"chapterCount,omitempty"`
}

// ProgressFunc は処理中の進捗メッセージを受け取るコールバックです。
// 各メッセージは直前の値を上書きする想定で、追記ではありません。
type ProgressFunc func(message string)

// Processor は動画URLから文字起こし結果を生成する外部コラボレーターです。
// 処理には数十秒から数分かかることがあります。キャンセルには対応しません。
type Processor interface {
	Process(ctx context.Context, url, apiKey string, progress ProgressFunc) (*Result, error)
}
