package response

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// Response 失败时返回的 JSON 结构
type Response struct {
	Message string `json:"message"`
}

// Success 直接返回数据本身，不加外层包装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Failure 失败仍返回 200，只在 body 里带 message
func Failure(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusOK, Response{Message: err.Error()})
}

// InternalError writes the error text as a plain 500 body and reports it to Sentry when enabled.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	c.String(http.StatusInternalServerError, err.Error())
}
