// Package task 提供后台周期任务调度
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器，基于 cron 的 @every 周期触发
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	cron   *cron.Cron
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.scheduleTask(task)
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		// 等待进行中的任务跑完
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.logger.Info("task scheduler stopped")
	})
}

// scheduleTask 注册单个任务的启动执行与周期执行
func (s *Scheduler) scheduleTask(task Task) {

	run := func(startup bool) {
		s.logger.Info("task running",
			zap.String("name", task.Name()),
			zap.Bool("startupRun", startup))
		if err := task.Run(context.Background()); err != nil {
			s.logger.Error("task running error",
				zap.String("name", task.Name()),
				zap.Bool("startupRun", startup),
				zap.Error(err))
		}
	}

	if task.IsStartupRun() {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("task startupRun panic",
						zap.String("name", task.Name()),
						zap.Any("panic", r),
						zap.Stack("stack"))
				}
			}()
			run(true)
		}()
	}

	if task.LoopInterval() <= 0 {
		return
	}

	spec := fmt.Sprintf("@every %s", task.LoopInterval())
	if _, err := s.cron.AddFunc(spec, func() { run(false) }); err != nil {
		s.logger.Error("task schedule error",
			zap.String("name", task.Name()),
			zap.String("spec", spec),
			zap.Error(err))
	}
}
