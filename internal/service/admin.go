package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

// NewPost 后台表单提交的文章
type NewPost struct {
	Title      string
	Body       string
	CategoryID int64
	Published  bool
	// PostDate 为空时使用当天日期
	PostDate string
}

// OrphanSink receives media URLs that were uploaded but never attached to a post.
type OrphanSink interface {
	Enqueue(url string) bool
}

// AdminService 后台列表与增删
type AdminService struct {
	filter     *PublicationFilter
	posts      repository.PostRepository
	categories repository.CategoryRepository
	media      media.Store
	orphans    OrphanSink
	now        func() time.Time
}

func NewAdminService(posts repository.PostRepository, categories repository.CategoryRepository, store media.Store, orphans OrphanSink) *AdminService {
	return &AdminService{
		filter:     NewPublicationFilter(posts),
		posts:      posts,
		categories: categories,
		media:      store,
		orphans:    orphans,
		now:        time.Now,
	}
}

// ListPosts 分类优先于 minDate；都没有时返回全部文章（含未发布）。
// 与 PublicationFilter 不同，这里空结果返回 ErrNoResults。
func (s *AdminService) ListPosts(ctx context.Context, category, minDate string) ([]model.Post, error) {
	var (
		posts []model.Post
		err   error
	)
	switch {
	case category != "":
		id, perr := parseCategory(category)
		if perr != nil {
			return nil, perr
		}
		posts, err = s.filter.ListByCategory(ctx, id)
	case minDate != "":
		posts, err = s.filter.ListByMinDate(ctx, minDate)
	default:
		posts, err = s.filter.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNoResults
	}
	return posts, nil
}

// GetPost 单篇文章，不检查是否已发布
func (s *AdminService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	postID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.filter.GetByID(ctx, postID)
}

func (s *AdminService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoResults
	}
	return categories, nil
}

// CategoryOptions 用于新建文章表单；查询失败时返回空列表
func (s *AdminService) CategoryOptions(ctx context.Context) []model.Category {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return []model.Category{}
	}
	return categories
}

// AddPost uploads the optional image first and stores its URL with the post.
// If the insert fails after a successful upload the blob is handed to the orphan sink.
func (s *AdminService) AddPost(ctx context.Context, in NewPost, image *media.Upload) (*model.Post, error) {
	post := &model.Post{
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		CategoryID: in.CategoryID,
		Published:  in.Published,
	}
	if post.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if in.PostDate != "" {
		d, err := ParseMinDate(in.PostDate)
		if err != nil {
			return nil, err
		}
		post.PostDate = d
	} else {
		y, m, d := s.now().UTC().Date()
		post.PostDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	if image != nil {
		url, err := s.media.Put(ctx, *image)
		if err != nil {
			return nil, err
		}
		post.FeatureImage = &url
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if post.FeatureImage != nil && s.orphans != nil {
			s.orphans.Enqueue(*post.FeatureImage)
		}
		return nil, fmt.Errorf("unable to create post: %w", err)
	}
	return post, nil
}

func (s *AdminService) DeletePost(ctx context.Context, id string) error {
	postID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("unable to remove post: %w", err)
	}
	return nil
}

func (s *AdminService) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := &model.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("unable to create category: %w", err)
	}
	return c, nil
}

// DeleteCategory 不级联：引用该分类的文章原样保留
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("unable to remove category: %w", err)
	}
	return nil
}

// IsClientError reports whether err stems from bad input rather than an upstream failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidID) || errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrNoResults)
}
