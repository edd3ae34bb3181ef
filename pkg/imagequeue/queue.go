// Package imagequeue provides a serial image-request queue
// Package imagequeue 提供串行图片请求队列实现
// A single worker drains requests in FIFO order, never processing two
// concurrently, and re-arms itself after a short delay between items
// 单个 worker 按 FIFO 顺序消费请求，绝不并发处理两条，且每条之间
// 以短暂延迟重新唤醒而不是紧循环排空
package imagequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Error definitions
// 错误定义
var (
	// ErrQueueFull returned when the request queue is full
	// ErrQueueFull 当请求队列已满时返回
	ErrQueueFull = errors.New("image queue is full")
	// ErrQueueClosed returned when the queue has been shut down
	// ErrQueueClosed 当队列已关闭时返回
	ErrQueueClosed = errors.New("image queue is closed")
)

// Config queue configuration
// Config 队列配置
type Config struct {
	// QueueCapacity pending request capacity, default 256
	// QueueCapacity 等待请求容量，默认 256
	QueueCapacity int
	// DrainDelay pause between finishing one request and taking the next,
	// default 150ms
	// DrainDelay 处理完一条请求到取下一条之间的停顿，默认 150ms
	DrainDelay time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 256,
		DrainDelay:    150 * time.Millisecond,
	}
}

// Request one image generation request
// Request 一条图片生成请求
type Request struct {
	Prompt string
	Width  int
	Height int
}

// Result of a processed request; StartedAt/FinishedAt allow callers to verify
// that resolutions never overlap
// Result 请求处理结果；StartedAt/FinishedAt 供调用方验证处理从不重叠
type Result struct {
	URL        string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Provider is the external image collaborator: prompt in, URL out
// Provider 外部图片生成协作方：输入提示词，输出图片 URL
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// pendingOp 等待处理的请求
type pendingOp struct {
	ctx    context.Context
	req    Request
	result chan Result
}

// Queue serial FIFO image-request queue with exactly one worker
// Queue 串行 FIFO 图片请求队列，有且仅有一个 worker
type Queue struct {
	config   Config
	provider Provider
	logger   *zap.Logger

	ch       chan pendingOp
	workerWg sync.WaitGroup

	processed atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New creates the queue and starts its single worker
// cfg: configuration, if nil use default configuration
// logger: zap logger, if nil use nop logger
// New 创建队列并启动唯一 worker
// cfg: 配置，如果为 nil 则使用默认配置
// logger: zap 日志器，如果为 nil 则使用 nop logger
func New(cfg *Config, provider Provider, logger *zap.Logger) *Queue {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 256
	}
	if cfg.DrainDelay <= 0 {
		cfg.DrainDelay = 150 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		config:   *cfg,
		provider: provider,
		logger:   logger,
		ch:       make(chan pendingOp, cfg.QueueCapacity),
		ctx:      ctx,
		cancel:   cancel,
	}

	q.workerWg.Add(1)
	go q.worker()

	q.logger.Info("image queue started",
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Duration("drainDelay", cfg.DrainDelay))

	return q
}

// Enqueue submits a request and returns a result future
// Requests complete strictly in submission order
// Enqueue 提交请求并返回结果 future
// 请求严格按提交顺序完成
func (q *Queue) Enqueue(ctx context.Context, req Request) (<-chan Result, error) {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return nil, ErrQueueClosed
	}
	q.mu.RUnlock()

	result := make(chan Result, 1)
	op := pendingOp{ctx: ctx, req: req, result: result}

	select {
	case q.ch <- op:
		return result, nil
	default:
		return nil, ErrQueueFull
	}
}

// worker 唯一消费协程
func (q *Queue) worker() {
	defer q.workerWg.Done()

	for {
		select {
		case <-q.ctx.Done():
			q.drain()
			return
		case op, ok := <-q.ch:
			if !ok {
				return
			}
			q.process(op)

			// Re-arm after a fixed short delay instead of draining in a
			// tight loop
			// 固定短暂延迟后再取下一条，而不是紧循环排空
			select {
			case <-time.After(q.config.DrainDelay):
			case <-q.ctx.Done():
				q.drain()
				return
			}
		}
	}
}

// process 处理单条请求
func (q *Queue) process(op pendingOp) {
	// Cancellation token checked before dequeue work starts
	// 在开始处理前检查取消信号
	select {
	case <-op.ctx.Done():
		op.result <- Result{Err: op.ctx.Err(), StartedAt: time.Now(), FinishedAt: time.Now()}
		return
	default:
	}

	started := time.Now()
	url, err := q.provider.Generate(op.ctx, op.req)
	finished := time.Now()

	q.processed.Add(1)

	select {
	case op.result <- Result{URL: url, Err: err, StartedAt: started, FinishedAt: finished}:
	default:
	}
}

// drain 排空队列中的剩余请求
func (q *Queue) drain() {
	for {
		select {
		case op, ok := <-q.ch:
			if !ok {
				return
			}
			q.process(op)
		default:
			return
		}
	}
}

// Processed returns the number of completed requests
// Processed 返回已完成的请求数
func (q *Queue) Processed() int64 {
	return q.processed.Load()
}

// QueuedCount returns the number of pending requests
// QueuedCount 返回等待中的请求数
func (q *Queue) QueuedCount() int {
	return len(q.ch)
}

// IsClosed returns whether the queue is closed
// IsClosed 返回队列是否已关闭
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Shutdown closes the queue and waits for the worker to finish
// ctx controls the shutdown timeout
// Shutdown 关闭队列并等待 worker 完成
// ctx 用于控制关闭超时
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	q.logger.Info("image queue shutting down", zap.Int("queued", len(q.ch)))

	done := make(chan struct{})
	go func() {
		q.cancel()
		q.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("image queue shutdown completed")
		return nil
	case <-ctx.Done():
		q.logger.Warn("image queue shutdown timeout")
		return ctx.Err()
	}
}
