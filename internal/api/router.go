package api

import (
	"fmt"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/gin-blog/config"
	_ "github.com/d60-Lab/gin-blog/docs"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/view"
)

// NewRouter 注册全部页面、后台接口与辅助路由
func NewRouter(cfg *config.Config, h *handler.Handler) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	if cfg.Media.MaxBytes > 0 {
		r.MaxMultipartMemory = cfg.Media.MaxBytes
	}

	r.StaticFS("/static", view.Static())
	r.GET("/media/:key", h.Media)
	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", h.Home)
	r.GET("/about", h.About)
	r.GET("/blog", h.Blog)
	r.GET("/blog/:id", h.BlogPost)

	limit := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler()

	r.GET("/posts", h.Posts)
	r.GET("/post/:id", h.GetPost)
	r.GET("/posts/add", h.AddPostForm)
	r.POST("/posts/add", limit, h.AddPost)
	r.GET("/posts/delete/:id", h.DeletePost)

	r.GET("/categories", h.Categories)
	r.GET("/categories/add", h.AddCategoryForm)
	r.POST("/categories/add", limit, h.AddCategory)
	r.GET("/categories/delete/:id", h.DeleteCategory)

	r.NoRoute(h.NotFound)
	return r, nil
}
