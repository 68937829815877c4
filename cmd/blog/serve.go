package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/api"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/tracing"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, nil)
		},
	}
}

// serve 启动 HTTP 服务直到 ctx 结束；onListen 在端口就绪后回调（可为 nil）
func serve(parent context.Context, cfg *config.Config, onListen func(net.Addr)) error {
	gin.SetMode(cfg.Server.Mode)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}

	// 数据库就绪之前不监听端口
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return err
	}
	defer database.Close(db)

	// 媒体存储不可达不阻止启动，只有配置错误才失败
	store, closeMedia, err := media.New(ctx, cfg.Media)
	if err != nil {
		logger.Error("media store init failed", zap.Error(err))
		return err
	}
	defer closeMedia()

	reaper := media.NewReaper(store, cfg.Media.QueueSize)
	stopReaper := reaper.Start(cfg.Media.Reapers)

	posts := repository.NewPostRepository(db)
	categories := repository.NewCategoryRepository(db)
	composer := service.NewPageComposer(service.NewPublicationFilter(posts), categories)
	admin := service.NewAdminService(posts, categories, store, reaper)
	opener, _ := store.(media.Opener)

	router, err := api.NewRouter(cfg, handler.NewHandler(composer, admin, opener, cfg.Media.MaxBytes))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("listen failed", zap.String("addr", srv.Addr), zap.Error(err))
		return err
	}
	logger.Info("http server listening", zap.String("addr", ln.Addr().String()), zap.String("media", cfg.Media.Backend))
	if onListen != nil {
		onListen(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("http server failed", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	if err := stopReaper(shutdownCtx); err != nil {
		logger.Warn("media reaper stop", zap.Error(err), zap.Int("pending", reaper.QueueLen()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	logger.Info("server exited")
	return nil
}
