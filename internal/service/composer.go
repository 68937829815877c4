package service

import (
	"context"
	"sort"
	"sync"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// PostQuerier 是 PageComposer 需要的文章查询子集（*PublicationFilter 实现）
type PostQuerier interface {
	ListPublished(ctx context.Context) ([]model.Post, error)
	ListPublishedByCategory(ctx context.Context, categoryID int64) ([]model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]model.Category, error)
}

const noResultsMessage = "no results"

// BlogView 博客页的组合数据。每个字段独立可选：
// 某一段失败只设置该段的 *Err，不影响其它段的结果。
type BlogView struct {
	Posts      []model.Post
	Post       *model.Post
	Categories []model.Category

	PostsErr      error
	DetailErr     error
	CategoriesErr error
}

// Message is the text shown when the post list or the detail post could not be loaded.
func (v BlogView) Message() string {
	if v.PostsErr != nil || v.DetailErr != nil {
		return noResultsMessage
	}
	return ""
}

func (v BlogView) CategoriesMessage() string {
	if v.CategoriesErr != nil {
		return noResultsMessage
	}
	return ""
}

// PageComposer 把互不依赖的几次查询拼成一个页面，单段失败不拖垮整页
type PageComposer struct {
	posts      PostQuerier
	categories CategoryLister
}

func NewPageComposer(posts PostQuerier, categories CategoryLister) *PageComposer {
	return &PageComposer{posts: posts, categories: categories}
}

// ComposeBlog builds /blog: published posts newest first, the newest as featured post, and all categories.
func (c *PageComposer) ComposeBlog(ctx context.Context, category string) BlogView {
	var (
		v  BlogView
		wg sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		posts, err := c.publishedPosts(ctx, category)
		if err != nil {
			v.PostsErr = err
			return
		}
		v.Posts = posts
		if len(posts) > 0 {
			featured := posts[0]
			v.Post = &featured
		}
	}()
	go func() {
		defer wg.Done()
		v.Categories, v.CategoriesErr = c.listCategories(ctx)
	}()
	wg.Wait()
	return v
}

// ComposeBlogPost builds /blog/:id; the detail post is fetched independently of the list.
func (c *PageComposer) ComposeBlogPost(ctx context.Context, id, category string) BlogView {
	var (
		v  BlogView
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		v.Posts, v.PostsErr = c.publishedPosts(ctx, category)
	}()
	go func() {
		defer wg.Done()
		postID, err := parseID(id)
		if err != nil {
			v.DetailErr = err
			return
		}
		v.Post, v.DetailErr = c.posts.GetByID(ctx, postID)
	}()
	go func() {
		defer wg.Done()
		v.Categories, v.CategoriesErr = c.listCategories(ctx)
	}()
	wg.Wait()
	return v
}

// publishedPosts 按分类过滤（可选）并按发布日期倒序
func (c *PageComposer) publishedPosts(ctx context.Context, category string) ([]model.Post, error) {
	var (
		posts []model.Post
		err   error
	)
	if category != "" {
		categoryID, perr := parseCategory(category)
		if perr != nil {
			return nil, perr
		}
		posts, err = c.posts.ListPublishedByCategory(ctx, categoryID)
	} else {
		posts, err = c.posts.ListPublished(ctx)
	}
	if err != nil {
		return nil, err
	}
	sort.Stable(model.ByPostDateDesc(posts))
	return posts, nil
}

func (c *PageComposer) listCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := c.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
