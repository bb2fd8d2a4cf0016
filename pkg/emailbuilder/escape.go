package emailbuilder

import (
	"strconv"
	"strings"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
	"\n", "<br/>",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
)

// escapeText escapes user text for element content, newlines become <br/>
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes a value placed inside a double or single quoted attribute
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// num formats a number the shortest way, 1.50 prints as 1.5 and 16 as 16
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
