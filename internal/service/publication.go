package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

// PublicationFilter 决定哪些文章可见。结果不保证顺序，空结果不是错误。
type PublicationFilter struct {
	posts repository.PostRepository
}

func NewPublicationFilter(posts repository.PostRepository) *PublicationFilter {
	return &PublicationFilter{posts: posts}
}

func (f *PublicationFilter) ListPublished(ctx context.Context) ([]model.Post, error) {
	return f.posts.List(ctx, model.PostFilter{PublishedOnly: true})
}

func (f *PublicationFilter) ListPublishedByCategory(ctx context.Context, categoryID int64) ([]model.Post, error) {
	return f.posts.List(ctx, model.PostFilter{PublishedOnly: true, CategoryID: &categoryID})
}

// ListAll 后台列表用，包含未发布的文章
func (f *PublicationFilter) ListAll(ctx context.Context) ([]model.Post, error) {
	return f.posts.List(ctx, model.PostFilter{})
}

func (f *PublicationFilter) ListByCategory(ctx context.Context, categoryID int64) ([]model.Post, error) {
	return f.posts.List(ctx, model.PostFilter{CategoryID: &categoryID})
}

// ListByMinDate 无法解析的日期返回 ErrInvalidDate，而不是空列表
func (f *PublicationFilter) ListByMinDate(ctx context.Context, dateStr string) ([]model.Post, error) {
	from, err := ParseMinDate(dateStr)
	if err != nil {
		return nil, err
	}
	return f.posts.List(ctx, model.PostFilter{MinDate: &from})
}

func (f *PublicationFilter) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := f.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrPostNotFound, id)
		}
		return nil, err
	}
	return post, nil
}

var minDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseMinDate parses an ISO-style date; date-only values mean midnight UTC.
func ParseMinDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range minDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
