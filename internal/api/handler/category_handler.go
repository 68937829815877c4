package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/view"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

type addCategoryForm struct {
	Name string `form:"name" binding:"required,notblank"`
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.admin.ListCategories(c.Request.Context())
	if err != nil {
		logFailure(c, "list categories failed", err)
		h.render(c, view.PageCategories, view.CategoriesPage{Nav: nav(c), Message: err.Error()})
		return
	}
	h.render(c, view.PageCategories, view.CategoriesPage{Nav: nav(c), Categories: categories})
}

func (h *Handler) AddCategoryForm(c *gin.Context) {
	h.render(c, view.PageAddCategory, view.AddCategoryPage{Nav: nav(c)})
}

// AddCategory 新建分类
// @Summary 新建分类
// @Tags 分类
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "分类名"
// @Success 302 "跳转到 /categories"
// @Failure 200 {object} response.Response
// @Router /categories/add [post]
func (h *Handler) AddCategory(c *gin.Context) {
	var form addCategoryForm
	if err := c.ShouldBind(&form); err != nil {
		response.Failure(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}
	if _, err := h.admin.AddCategory(c.Request.Context(), form.Name); err != nil {
		logFailure(c, "add category failed", err)
		response.Failure(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/categories")
}

// DeleteCategory 不删除该分类下的文章
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.admin.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		logFailure(c, "delete category failed", err)
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/categories")
}
