package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/view"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

type addPostForm struct {
	Title     string `form:"title" binding:"required,notblank"`
	Body      string `form:"body"`
	Category  int64  `form:"category" binding:"required,gt=0"`
	Published string `form:"published"`
	PostDate  string `form:"postDate"`
}

// checked 复选框提交 "on"
func checked(v string) bool {
	return v == "on" || v == "true" || v == "1"
}

// Posts 后台文章列表：category 优先于 minDate，空列表显示 "no results"
func (h *Handler) Posts(c *gin.Context) {
	posts, err := h.admin.ListPosts(c.Request.Context(), c.Query("category"), c.Query("minDate"))
	if err != nil {
		logFailure(c, "list posts failed", err)
		h.render(c, view.PagePosts, view.PostsPage{Nav: nav(c), Message: err.Error()})
		return
	}
	h.render(c, view.PagePosts, view.PostsPage{Nav: nav(c), Posts: posts})
}

// GetPost 按 ID 查询文章
// @Summary 查询单篇文章
// @Tags 文章
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} model.Post
// @Failure 200 {object} response.Response "查询失败时仍为 200"
// @Router /post/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.admin.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		logFailure(c, "get post failed", err)
		response.Failure(c, err)
		return
	}
	response.Success(c, post)
}

func (h *Handler) AddPostForm(c *gin.Context) {
	h.render(c, view.PageAddPost, view.AddPostPage{Nav: nav(c), Categories: h.admin.CategoryOptions(c.Request.Context())})
}

// AddPost 新建文章（可选封面图）
// @Summary 新建文章
// @Tags 文章
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "标题"
// @Param body formData string false "正文"
// @Param category formData int true "分类ID"
// @Param published formData string false "on 表示发布"
// @Param postDate formData string false "日期 YYYY-MM-DD"
// @Param featureImage formData file false "封面图"
// @Success 302 "跳转到 /posts"
// @Failure 200 {object} response.Response
// @Router /posts/add [post]
func (h *Handler) AddPost(c *gin.Context) {
	var form addPostForm
	if err := c.ShouldBind(&form); err != nil {
		response.Failure(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	var image *media.Upload
	fh, err := c.FormFile("featureImage")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		response.Failure(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	default:
		if h.maxUpload > 0 && fh.Size > h.maxUpload {
			response.Failure(c, media.ErrTooLarge)
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Failure(c, fmt.Errorf("%w: %v", media.ErrUpload, err))
			return
		}
		defer f.Close()
		image = &media.Upload{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Body: f}
	}

	_, err = h.admin.AddPost(c.Request.Context(), service.NewPost{
		Title:      form.Title,
		Body:       form.Body,
		CategoryID: form.Category,
		Published:  checked(form.Published),
		PostDate:   form.PostDate,
	}, image)
	if err != nil {
		logFailure(c, "add post failed", err)
		response.Failure(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}

// DeletePost 删除失败返回 500 纯文本
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.admin.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		logFailure(c, "delete post failed", err)
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts")
}
