package render

import (
	"strings"
	"testing"
)

func TestSanitizeAllowsListedFonts(t *testing.T) {
	for _, font := range []string{"Arial", "Calibri", "Comic Sans MS", "Garamond", "Georgia", "Tahoma", "Times New Roman", "Wingdings"} {
		if got := Sanitize(font); got != font {
			t.Fatalf("Sanitize(%q) = %q, want unchanged", font, got)
		}
	}
}

func TestSanitizeFallsBackToDefault(t *testing.T) {
	cases := []string{
		"",
		"Helvetica",
		"arial", // 大文字小文字も厳密に一致させる
		`"; } body { display: none } @font-face { src: url(`,
		"Times New Roman; color: red",
	}
	for _, font := range cases {
		if got := Sanitize(font); got != DefaultFont {
			t.Fatalf("Sanitize(%q) = %q, want %q", font, got, DefaultFont)
		}
	}
}

func TestStylesheetInjectionRegression(t *testing.T) {
	hostile := `"; } body { display: none } /*`
	css := Stylesheet(Sanitize(hostile))
	if strings.Contains(css, "display: none") {
		t.Fatal("hostile font value leaked into generated stylesheet")
	}
	if !strings.Contains(css, `font-family: "Times New Roman", sans-serif;`) {
		t.Fatalf("expected default font in stylesheet, got:\n%s", css)
	}
}

func TestBuildHTMLConvertsMarkdown(t *testing.T) {
	markdown := "# 第一章\n\n本文です。\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfmt.Println(\"hi\")\n```\n"
	doc, err := BuildHTML("エピソード <1>", markdown, Sanitize("Georgia"))
	if err != nil {
		t.Fatalf("BuildHTML returned error: %v", err)
	}

	for _, want := range []string{
		"<h1>第一章</h1>",
		"<table>",
		"<code",
		`font-family: "Georgia", sans-serif;`,
		"エピソード &lt;1&gt;", // タイトルはHTMLエスケープされる
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("BuildHTML output missing %q:\n%s", want, doc)
		}
	}
}
