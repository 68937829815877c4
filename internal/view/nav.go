package view

import (
	"strconv"
	"strings"
)

// Nav 每个请求单独计算的导航状态
type Nav struct {
	ActiveRoute     string
	ViewingCategory string
}

// NewNav derives the active route from the request path: "/blog/3" highlights
// "/blog"; any other path ("/posts/add") is used as is.
func NewNav(path, category string) Nav {
	route := strings.TrimPrefix(path, "/")
	segments := strings.Split(route, "/")
	if len(segments) > 1 && isNumeric(segments[1]) {
		route = segments[0]
	}
	return Nav{ActiveRoute: "/" + route, ViewingCategory: category}
}

// isNumeric 空串也算数字
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
