// Package safe_close coordinates graceful shutdown of background goroutines
// Package safe_close 协调后台 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose fans a single close signal out to all attached goroutines and
// waits for each of them to call done
// SafeClose 将一次关闭信号扇出给所有挂载的 goroutine 并等待它们完成
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine; f must call done when it has finished
// cleaning up and should watch closeSignal to know when to stop
// Attach 在独立 goroutine 中启动 f；f 清理完成后必须调用 done，
// 并通过 closeSignal 感知何时停止
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal requests shutdown; safe to call multiple times
// SendCloseSignal 发出关闭请求，可重复调用
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// WaitClosed blocks until a close signal was sent and all attached goroutines
// have called done, then returns the error passed to SendCloseSignal
// WaitClosed 阻塞直到收到关闭信号且所有挂载 goroutine 完成，返回关闭时传入的错误
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}

// CloseSignal exposes the signal channel for select loops
// CloseSignal 暴露信号通道，便于 select 监听
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
