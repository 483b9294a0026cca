package web

import (
	"fmt"
	"net/url"
	"strings"
)

// contentDisposition はASCIIフォールバックとRFC 5987形式のUTF-8ファイル名を
// 併記したContent-Dispositionヘッダー値を組み立てます。
func contentDisposition(filename, fallback string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		asciiFallback(filename, fallback), url.PathEscape(filename))
}

// asciiFallback は非ASCII文字とヘッダーを壊す文字を取り除いたファイル名を返します。
// 取り除いた結果が空になった場合は fallback を返します。
func asciiFallback(name, fallback string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 32 && r < 127 && r != '"' && r != '\\' {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return fallback
	}
	return out
}
