package service

import (
	"context"
	"errors"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/internal/metric"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/imagequeue"

	"go.uber.org/zap"
)

// ProgressPusher 向用户连接推送进度事件；pkg/app.WebsocketServer 满足该接口
type ProgressPusher interface {
	PushToUser(uid int64, action string, data any)
}

// nopPusher 无 websocket 时的空实现
type nopPusher struct{}

func (nopPusher) PushToUser(int64, string, any) {}

// ImageService 定义画面生成服务接口。
// 请求串行进入图像队列，完成后按提交顺序回写文档并推送进度。
type ImageService interface {
	// EnqueueProject 为项目镜头排队画面生成；ShotIDs 为空时处理全部镜头
	EnqueueProject(ctx context.Context, uid, projectID int64, params *dto.GenerateImagesRequest) (int, error)

	// RegenerateShot 重新合成单镜头提示词并重新排队生成
	RegenerateShot(ctx context.Context, uid, projectID int64, shotID string) (*dto.ImageResultDTO, error)

	// QueueDepth 当前队列深度
	QueueDepth() int
}

// imageService 实现 ImageService 接口
type imageService struct {
	projectRepo domain.ProjectRepository
	queue       *imagequeue.Queue
	generate    GenerateService
	pusher      ProgressPusher
	logger      *zap.Logger
}

// NewImageService 创建 ImageService 实例
func NewImageService(projectRepo domain.ProjectRepository, queue *imagequeue.Queue,
	generate GenerateService, pusher ProgressPusher, logger *zap.Logger) ImageService {
	if pusher == nil {
		pusher = nopPusher{}
	}
	return &imageService{
		projectRepo: projectRepo,
		queue:       queue,
		generate:    generate,
		pusher:      pusher,
		logger:      logger,
	}
}

// imageSize 从风格设置取目标尺寸
func imageSize(doc *domain.ProjectDocument) (int, int) {
	if doc != nil && doc.Style != nil && doc.Style.ImageWidth > 0 && doc.Style.ImageHeight > 0 {
		return doc.Style.ImageWidth, doc.Style.ImageHeight
	}
	return 768, 432
}

// EnqueueProject 为项目镜头排队画面生成
func (s *imageService) EnqueueProject(ctx context.Context, uid, projectID int64, params *dto.GenerateImagesRequest) (int, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return 0, code.ErrorProjectNotFound
	}
	if project.Document == nil || project.Document.Storyboard == nil {
		return 0, code.ErrorGenerateFailed.WithDetails("project has no storyboard")
	}

	filter := map[string]bool{}
	for _, id := range params.ShotIDs {
		filter[id] = true
	}

	width, height := imageSize(project.Document)

	type target struct {
		shotID string
		future <-chan imagequeue.Result
	}
	var targets []target

	next, err := project.Document.Storyboard.Clone()
	if err != nil {
		return 0, code.ErrorGenerateFailed.WithDetails(err.Error())
	}

	// 队列结果不受请求生命周期约束
	queueCtx := context.Background()

	for _, scene := range next.Scenes {
		for _, shot := range scene.Shots {
			if len(filter) > 0 && !filter[shot.ID] {
				continue
			}
			future, err := s.queue.Enqueue(queueCtx, imagequeue.Request{
				Prompt: shot.Prompt,
				Width:  width,
				Height: height,
			})
			if err != nil {
				if errors.Is(err, imagequeue.ErrQueueFull) {
					return 0, code.ErrorImageQueueFull
				}
				return 0, code.ErrorGenerateFailed.WithDetails(err.Error())
			}
			shot.ImageStatus = domain.ImageStatusQueued
			targets = append(targets, target{shotID: shot.ID, future: future})
		}
	}

	if len(targets) == 0 {
		return 0, nil
	}

	project.Document.Storyboard = next
	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		return 0, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}

	metric.ImageQueueDepth.Set(float64(s.queue.QueuedCount()))

	// 结果严格 FIFO，按序等待即可串行回写文档
	go func() {
		for _, t := range targets {
			res := <-t.future
			s.applyResult(uid, projectID, t.shotID, res)
		}
	}()

	return len(targets), nil
}

// applyResult 回写单镜头结果并推送进度
func (s *imageService) applyResult(uid, projectID int64, shotID string, res imagequeue.Result) {
	ctx := context.Background()

	status := domain.ImageStatusReady
	outcome := "ready"
	if res.Err != nil {
		// 取消或排空时队列可能带错返回，保持待生成状态
		status = domain.ImageStatusPending
		outcome = "error"
	}

	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil || project.Document == nil || project.Document.Storyboard == nil {
		s.logger.Warn("image result: project gone", zap.Int64("project", projectID), zap.Error(err))
		return
	}

	next, err := project.Document.Storyboard.UpdateShot(shotID, func(shot *domain.Shot) {
		shot.ImageURL = res.URL
		shot.ImageStatus = status
	})
	if err != nil {
		// 镜头可能已被编辑删除，结果直接丢弃
		s.logger.Info("image result: shot gone", zap.String("shot", shotID))
		return
	}

	project.Document.Storyboard = next
	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		s.logger.Error("image result: save failed", zap.Int64("project", projectID), zap.Error(err))
		return
	}

	metric.ImageRequestsTotal.WithLabelValues(outcome).Inc()
	metric.ImageDuration.Observe(res.FinishedAt.Sub(res.StartedAt).Seconds())
	metric.ImageQueueDepth.Set(float64(s.queue.QueuedCount()))

	s.pusher.PushToUser(uid, dto.WSActionImageProgress, &dto.WSImageProgressDTO{
		ProjectID: projectID,
		ShotID:    shotID,
		Status:    string(status),
		ImageURL:  res.URL,
		Queued:    s.queue.QueuedCount(),
	})
	if s.queue.QueuedCount() == 0 {
		s.pusher.PushToUser(uid, dto.WSActionImageDone, &dto.WSImageProgressDTO{
			ProjectID: projectID,
			ShotID:    shotID,
			Status:    string(status),
			ImageURL:  res.URL,
		})
	}
}

// RegenerateShot 重新合成提示词并重新排队
func (s *imageService) RegenerateShot(ctx context.Context, uid, projectID int64, shotID string) (*dto.ImageResultDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	if project.Document == nil || project.Document.Storyboard == nil {
		return nil, code.ErrorShotNotFound
	}

	style := project.Document.Style
	next, err := project.Document.Storyboard.UpdateShot(shotID, func(shot *domain.Shot) {
		shot.Prompt = s.generate.SynthesizePrompt(shot, style)
		shot.ImageStatus = domain.ImageStatusQueued
	})
	if err != nil {
		return nil, mapDomainErr(err)
	}

	_, shot, _ := next.FindShot(shotID)
	width, height := imageSize(project.Document)

	future, err := s.queue.Enqueue(context.Background(), imagequeue.Request{
		Prompt: shot.Prompt,
		Width:  width,
		Height: height,
	})
	if err != nil {
		if errors.Is(err, imagequeue.ErrQueueFull) {
			return nil, code.ErrorImageQueueFull
		}
		return nil, code.ErrorGenerateFailed.WithDetails(err.Error())
	}

	project.Document.Storyboard = next
	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}

	go func() {
		res := <-future
		s.applyResult(uid, projectID, shotID, res)
	}()

	return &dto.ImageResultDTO{
		ShotID:      shotID,
		ImageStatus: string(domain.ImageStatusQueued),
	}, nil
}

// QueueDepth 当前队列深度
func (s *imageService) QueueDepth() int {
	return s.queue.QueuedCount()
}
