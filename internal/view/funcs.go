package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Funcs 模板辅助函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"navLink":    navLink,
		"equal":      equal,
		"safeHTML":   safeHTML,
		"formatDate": formatDate,
	}
}

func navLink(nav Nav, url, label string) template.HTML {
	class := ""
	if url == nav.ActiveRoute {
		class = ` class="active"`
	}
	return template.HTML(fmt.Sprintf(`<li%s><a href="%s">%s</a></li>`,
		class, template.HTMLEscapeString(url), template.HTMLEscapeString(label)))
}

// equal compares loosely, so a query string "3" equals the id 3.
func equal(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// safeHTML 去掉脚本等危险内容，保留正文排版
func safeHTML(body string) template.HTML {
	return template.HTML(sanitizer.Sanitize(body))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
