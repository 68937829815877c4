package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrPostNotFound = errors.New("post not found")
	// ErrNoResults 仅在 /posts 和 /categories 列表边界上视为错误
	ErrNoResults    = errors.New("no results")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidInput = errors.New("invalid input")
)

// parseID 解析路径或查询参数里的整型 id
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// parseCategory 只要求是整数；0 或负数不会匹配任何分类，结果为空而不是报错
func parseCategory(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}
