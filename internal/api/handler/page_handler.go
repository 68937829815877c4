package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/view"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/about")
}

func (h *Handler) About(c *gin.Context) {
	h.render(c, view.PageAbout, view.AboutPage{Nav: nav(c)})
}

// Blog 已发布文章列表 + 最新一篇 + 分类
func (h *Handler) Blog(c *gin.Context) {
	v := h.composer.ComposeBlog(c.Request.Context(), c.Query("category"))
	if v.PostsErr != nil {
		logFailure(c, "blog posts unavailable", v.PostsErr)
	}
	if v.CategoriesErr != nil {
		logFailure(c, "blog categories unavailable", v.CategoriesErr)
	}
	h.render(c, view.PageBlog, view.NewBlogPage(nav(c), v))
}

// BlogPost 与 Blog 相同的页面，主区显示指定文章
func (h *Handler) BlogPost(c *gin.Context) {
	v := h.composer.ComposeBlogPost(c.Request.Context(), c.Param("id"), c.Query("category"))
	if v.PostsErr != nil {
		logFailure(c, "blog posts unavailable", v.PostsErr)
	}
	if v.DetailErr != nil {
		logFailure(c, "blog post unavailable", v.DetailErr)
	}
	if v.CategoriesErr != nil {
		logFailure(c, "blog categories unavailable", v.CategoriesErr)
	}
	h.render(c, view.PageBlog, view.NewBlogPage(nav(c), v))
}

func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, view.PageNotFound, view.NotFoundPage{Nav: nav(c)})
}

// Media 输出 Redis 后端保存的图片
func (h *Handler) Media(c *gin.Context) {
	if h.media == nil {
		h.NotFound(c)
		return
	}
	obj, err := h.media.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			h.NotFound(c)
			return
		}
		logger.Warn("media read failed", zap.String("key", c.Param("key")), zap.Error(err))
		c.Status(http.StatusBadGateway)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
