package view

import (
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/service"
)

// 模板名
const (
	PageAbout       = "about"
	PageBlog        = "blog"
	PagePosts       = "posts"
	PageAddPost     = "addPost"
	PageCategories  = "categories"
	PageAddCategory = "addCategory"
	PageNotFound    = "404"
)

type AboutPage struct{ Nav }

type BlogPage struct {
	Nav
	Posts             []model.Post
	Post              *model.Post
	Categories        []model.Category
	Message           string
	CategoriesMessage string
}

func NewBlogPage(nav Nav, v service.BlogView) BlogPage {
	return BlogPage{
		Nav:               nav,
		Posts:             v.Posts,
		Post:              v.Post,
		Categories:        v.Categories,
		Message:           v.Message(),
		CategoriesMessage: v.CategoriesMessage(),
	}
}

type PostsPage struct {
	Nav
	Posts   []model.Post
	Message string
}

type AddPostPage struct {
	Nav
	Categories []model.Category
}

type CategoriesPage struct {
	Nav
	Categories []model.Category
	Message    string
}

type AddCategoryPage struct{ Nav }

type NotFoundPage struct{ Nav }
