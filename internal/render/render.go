// Package render は文字起こしMarkdownからHTML文書とPDFを生成します。
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultFont はフォント未指定・許可リスト外指定時に使用するフォントです。
const DefaultFont = "Times New Roman"

// allowedFonts は生成スタイルシートへ埋め込めるフォント名の固定許可リストです。
// 許可リスト外の値をそのまま埋め込むとCSSインジェクションになるため、
// ここに無い値は必ず DefaultFont へフォールバックさせます。
var allowedFonts = map[string]struct{}{
	"Arial":           {},
	"Calibri":         {},
	"Comic Sans MS":   {},
	"Garamond":        {},
	"Georgia":         {},
	"Tahoma":          {},
	"Times New Roman": {},
	"Wingdings":       {},
}

// Sanitize はフォント名を許可リストで検証し、許可外はデフォルトへ置き換えます。
func Sanitize(font string) string {
	font = strings.TrimSpace(font)
	if _, ok := allowedFonts[font]; ok {
		return font
	}
	return DefaultFont
}

// BuildHTML はMarkdownを変換し、印刷向けスタイルを含む完全なHTML文書を返します。
// font は呼び出し前に Sanitize 済みであることを前提とします。
func BuildHTML(title, markdown, font string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	doc.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	doc.WriteString("<style>\n" + Stylesheet(font) + "</style>\n")
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.String(), nil
}

// Stylesheet は指定フォントを使った印刷向けCSSを返します。
func Stylesheet(font string) string {
	return fmt.Sprintf(`@page {
    margin: 1in;
    size: letter;
}
body {
    font-family: "%[1]s", sans-serif;
    font-size: 12pt;
    line-height: 1.5;
    color: #333;
}
h1 {
    font-family: "%[1]s", sans-serif;
    font-size: 18pt;
    margin-bottom: 0.5em;
}
h2 {
    font-family: "%[1]s", sans-serif;
    font-size: 14pt;
    margin-top: 1em;
    margin-bottom: 0.5em;
    border-bottom: 1px solid #ccc;
    padding-bottom: 0.2em;
}
img {
    max-width: 100%%;
    height: auto;
}
ul, ol {
    margin-left: 1.5em;
}
li {
    margin-bottom: 0.3em;
}
`, font)
}

// Renderer はwkhtmltopdfバイナリでPDFを生成します。
type Renderer struct {
	// WkhtmltopdfPath が空の場合はPATHから探索します。
	WkhtmltopdfPath string
}

// RenderPDF はMarkdownをPDFへ変換します。フォントは許可リストで検証し、
// 生成されたバイト列はpdfcpuで検証してから返します。
func (r *Renderer) RenderPDF(title, markdown, font string) ([]byte, error) {
	if r.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(r.WkhtmltopdfPath)
	}

	doc, err := BuildHTML(title, markdown, Sanitize(font))
	if err != nil {
		return nil, err
	}

	generator, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize wkhtmltopdf: %w", err)
	}
	generator.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	generator.MarginTop.Set(25)
	generator.MarginBottom.Set(25)
	generator.MarginLeft.Set(25)
	generator.MarginRight.Set(25)
	generator.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(doc)))

	if err := generator.Create(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	data := generator.Bytes()
	if err := pdfapi.Validate(bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("rendered PDF failed validation: %w", err)
	}
	return data, nil
}
