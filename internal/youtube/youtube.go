// Package youtube はYouTube URLから正規化された動画IDを抽出します。
package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// 動画IDは11文字の英数字・ハイフン・アンダースコアで構成されます。
const videoIDLength = 11

// ExtractVideoID はURL形式の違いを吸収し、正規化された動画IDを返します。
// 同一動画を指す複数のURL形式（watch?v=, youtu.be/, shorts/, embed/,
// live/, 素のID）は必ず同じIDへ解決されます。解釈できない形式はエラーです。
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("URL is empty")
	}
	if isVideoID(raw) {
		return raw, nil
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %q: %w", raw, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		if id := firstPathSegment(u.Path); isVideoID(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); isVideoID(id) {
			return id, nil
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				if isVideoID(segments[1]) {
					return segments[1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("unrecognized YouTube URL: %s", raw)
}

func firstPathSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

func isVideoID(s string) bool {
	if len(s) != videoIDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
