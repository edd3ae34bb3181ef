package imagequeue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeProvider 记录调用顺序的测试提供方
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	delay   time.Duration
	started chan struct{} // 每次开始处理时发出信号，可选
	release chan struct{} // 为 nil 时不阻塞
}

func (p *fakeProvider) Generate(ctx context.Context, req Request) (string, error) {
	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.release != nil {
		<-p.release
	}
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	p.prompts = append(p.prompts, req.Prompt)
	p.mu.Unlock()
	return "https://img.test/" + req.Prompt, nil
}

func newTestQueue(p Provider, capacity int) *Queue {
	return New(&Config{QueueCapacity: capacity, DrainDelay: time.Millisecond}, p, nil)
}

func TestQueueFIFOOrder(t *testing.T) {
	provider := &fakeProvider{}
	q := newTestQueue(provider, 16)
	defer q.Shutdown(context.Background())

	var futures []<-chan Result
	for i := 0; i < 5; i++ {
		f, err := q.Enqueue(context.Background(), Request{Prompt: fmt.Sprintf("p%d", i), Width: 10, Height: 10})
		if err != nil {
			t.Fatalf("Enqueue %d failed: %v", i, err)
		}
		futures = append(futures, f)
	}

	for i, f := range futures {
		res := <-f
		if res.Err != nil {
			t.Fatalf("request %d failed: %v", i, res.Err)
		}
		want := fmt.Sprintf("https://img.test/p%d", i)
		if res.URL != want {
			t.Errorf("request %d resolved to %s, want %s", i, res.URL, want)
		}
	}

	provider.mu.Lock()
	defer provider.mu.Unlock()
	for i, prompt := range provider.prompts {
		if prompt != fmt.Sprintf("p%d", i) {
			t.Errorf("provider saw %s at position %d, FIFO order broken", prompt, i)
		}
	}
}

func TestQueueNeverProcessesConcurrently(t *testing.T) {
	provider := &fakeProvider{delay: 10 * time.Millisecond}
	q := newTestQueue(provider, 16)
	defer q.Shutdown(context.Background())

	var futures []<-chan Result
	for i := 0; i < 4; i++ {
		f, err := q.Enqueue(context.Background(), Request{Prompt: fmt.Sprintf("p%d", i)})
		if err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
		futures = append(futures, f)
	}

	var results []Result
	for _, f := range futures {
		results = append(results, <-f)
	}

	// 按提交顺序完成，且时间区间互不重叠
	for i := 1; i < len(results); i++ {
		if results[i].StartedAt.Before(results[i-1].FinishedAt) {
			t.Errorf("request %d started at %v before request %d finished at %v",
				i, results[i].StartedAt, i-1, results[i-1].FinishedAt)
		}
	}

	if q.Processed() != int64(len(results)) {
		t.Errorf("processed count = %d, want %d", q.Processed(), len(results))
	}
}

func TestQueueFull(t *testing.T) {
	provider := &fakeProvider{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	q := newTestQueue(provider, 1)
	defer func() {
		close(provider.release)
		q.Shutdown(context.Background())
	}()

	// 第一条被 worker 取走并阻塞在提供方内
	if _, err := q.Enqueue(context.Background(), Request{Prompt: "busy"}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	<-provider.started

	// 第二条占满缓冲，第三条应立即拒绝
	if _, err := q.Enqueue(context.Background(), Request{Prompt: "waiting"}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if _, err := q.Enqueue(context.Background(), Request{Prompt: "rejected"}); err != ErrQueueFull {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if q.QueuedCount() != 1 {
		t.Errorf("queued count = %d, want 1", q.QueuedCount())
	}
}

func TestQueueShutdown(t *testing.T) {
	q := newTestQueue(&fakeProvider{}, 4)

	if err := q.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("queue should report closed after shutdown")
	}

	if _, err := q.Enqueue(context.Background(), Request{Prompt: "late"}); err != ErrQueueClosed {
		t.Errorf("expected ErrQueueClosed, got %v", err)
	}

	// 重复关闭是幂等的
	if err := q.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown returned %v", err)
	}
}

func TestQueueCancelledRequest(t *testing.T) {
	q := newTestQueue(&fakeProvider{}, 4)
	defer q.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := q.Enqueue(ctx, Request{Prompt: "cancelled"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	res := <-f
	if res.Err == nil {
		t.Error("expected cancelled request to resolve with an error")
	}
}

func TestQueueDefaultConfig(t *testing.T) {
	q := New(nil, &fakeProvider{}, nil)
	defer q.Shutdown(context.Background())

	if q.config.QueueCapacity != 256 {
		t.Errorf("default capacity = %d, want 256", q.config.QueueCapacity)
	}
	if q.config.DrainDelay != 150*time.Millisecond {
		t.Errorf("default drain delay = %v, want 150ms", q.config.DrainDelay)
	}
}
