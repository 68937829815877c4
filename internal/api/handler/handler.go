package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/internal/view"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

type Handler struct {
	composer  *service.PageComposer
	admin     *service.AdminService
	media     media.Opener
	maxUpload int64
}

// NewHandler opener 可以为 nil（Cloudinary 后端不在站内提供文件）
func NewHandler(composer *service.PageComposer, admin *service.AdminService, opener media.Opener, maxUpload int64) *Handler {
	return &Handler{composer: composer, admin: admin, media: opener, maxUpload: maxUpload}
}

func nav(c *gin.Context) view.Nav {
	return view.NewNav(c.Request.URL.Path, c.Query("category"))
}

func (h *Handler) render(c *gin.Context, name string, page interface{}) {
	c.HTML(http.StatusOK, name, page)
}

// logFailure 客户端错误记 debug，其余记 warn
func logFailure(c *gin.Context, msg string, err error) {
	fields := []zap.Field{zap.String("path", c.Request.URL.Path), zap.Error(err)}
	if service.IsClientError(err) {
		logger.Debug(msg, fields...)
		return
	}
	logger.Warn(msg, fields...)
}
