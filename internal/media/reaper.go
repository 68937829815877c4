package media

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// Reaper 异步删除已上传但没有落库的图片（上传成功、插入文章失败时产生）
type Reaper struct {
	store Store
	ch    chan string
	wg    sync.WaitGroup
	once  sync.Once
	stop  chan struct{}

	// mu 保证 stopped 置位之后不会再有 URL 进队列
	mu      sync.RWMutex
	stopped bool
}

func NewReaper(store Store, queueSize int) *Reaper {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Reaper{store: store, ch: make(chan string, queueSize), stop: make(chan struct{})}
}

// Start 启动 workers；返回的停止函数会先处理完队列里剩余的 URL。
func (r *Reaper) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.loop()
	}
	return func(ctx context.Context) error {
		r.once.Do(func() {
			r.mu.Lock()
			r.stopped = true
			close(r.stop)
			r.mu.Unlock()
		})
		done := make(chan struct{})
		go func() {
			r.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Reaper) loop() {
	defer r.wg.Done()
	for {
		select {
		case u := <-r.ch:
			r.remove(u)
		case <-r.stop:
			for {
				select {
				case u := <-r.ch:
					r.remove(u)
				default:
					return
				}
			}
		}
	}
}

func (r *Reaper) remove(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.Remove(ctx, url); err != nil {
		logger.Warn("remove orphaned media failed", zap.String("url", url), zap.Error(err))
		return
	}
	logger.Debug("removed orphaned media", zap.String("url", url))
}

// Enqueue 非阻塞；队列满或已停止时丢弃并记录日志
func (r *Reaper) Enqueue(url string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		logger.Warn("reaper stopped, drop media", zap.String("url", url))
		return false
	}
	select {
	case r.ch <- url:
		return true
	default:
		logger.Warn("reaper queue full, drop media", zap.String("url", url))
		return false
	}
}

// QueueLen 返回当前队列长度（采样值）
func (r *Reaper) QueueLen() int { return len(r.ch) }
