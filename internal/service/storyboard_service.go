package service

import (
	"context"
	"errors"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"

	"go.uber.org/zap"
)

// StoryboardService 定义文档编辑服务接口。
// 每个编辑操作整体读取项目文档，以 reducer 方式应用变更，再整体写回；
// 操作失败时文档保持不变。
type StoryboardService interface {
	AddScene(ctx context.Context, uid, projectID int64, params *dto.SceneCreateRequest) (*domain.Storyboard, error)
	UpdateScene(ctx context.Context, uid, projectID int64, sceneID string, params *dto.SceneUpdateRequest) (*domain.Storyboard, error)
	DeleteScene(ctx context.Context, uid, projectID int64, sceneID string) (*domain.Storyboard, error)
	ReorderScenes(ctx context.Context, uid, projectID int64, params *dto.SceneReorderRequest) (*domain.Storyboard, error)

	AddShot(ctx context.Context, uid, projectID int64, sceneID string, params *dto.ShotCreateRequest) (*domain.Storyboard, error)
	UpdateShot(ctx context.Context, uid, projectID int64, shotID string, params *dto.ShotUpdateRequest) (*domain.Storyboard, error)
	DeleteShot(ctx context.Context, uid, projectID int64, shotID string) (*domain.Storyboard, error)
	ReorderShots(ctx context.Context, uid, projectID int64, sceneID string, params *dto.ShotReorderRequest) (*domain.Storyboard, error)

	AddAnnotation(ctx context.Context, uid, projectID int64, params *dto.AnnotationRequest) (*domain.Storyboard, error)
	UpdateAnnotation(ctx context.Context, uid, projectID int64, annotationID string, params *dto.AnnotationRequest) (*domain.Storyboard, error)
	DeleteAnnotation(ctx context.Context, uid, projectID int64, annotationID string) (*domain.Storyboard, error)
}

// storyboardService 实现 StoryboardService 接口
type storyboardService struct {
	projectRepo domain.ProjectRepository
	logger      *zap.Logger
}

// NewStoryboardService 创建 StoryboardService 实例
func NewStoryboardService(projectRepo domain.ProjectRepository, logger *zap.Logger) StoryboardService {
	return &storyboardService{projectRepo: projectRepo, logger: logger}
}

// mapDomainErr 将领域哨兵错误映射为注册错误码
func mapDomainErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrSceneNotFound):
		return code.ErrorSceneNotFound
	case errors.Is(err, domain.ErrShotNotFound):
		return code.ErrorShotNotFound
	case errors.Is(err, domain.ErrAnnotationNotFound):
		return code.ErrorAnnotationNotFound
	case errors.Is(err, domain.ErrLastSceneUndeletable):
		return code.ErrorLastSceneUndeletable
	case errors.Is(err, domain.ErrLastShotUndeletable):
		return code.ErrorLastShotUndeletable
	case errors.Is(err, domain.ErrInvalidReorder):
		return code.ErrorInvalidReorder
	case errors.Is(err, domain.ErrInvalidAnnotation):
		return code.ErrorInvalidAnnotation
	}
	return code.ErrorServerInternal.WithDetails(err.Error())
}

// withStoryboard 读取文档、应用编辑、整体写回
func (s *storyboardService) withStoryboard(ctx context.Context, uid, projectID int64,
	apply func(*domain.Storyboard) (*domain.Storyboard, error)) (*domain.Storyboard, error) {

	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	if project.Document == nil || project.Document.Storyboard == nil {
		return nil, code.ErrorSceneNotFound
	}

	next, err := apply(project.Document.Storyboard)
	if err != nil {
		return nil, mapDomainErr(err)
	}

	project.Document.Storyboard = next
	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		s.logger.Error("storyboard edit: save failed",
			zap.Int64("project", projectID), zap.Error(err))
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}
	return next, nil
}

// AddScene 新增场景
func (s *storyboardService) AddScene(ctx context.Context, uid, projectID int64, params *dto.SceneCreateRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		scene := &domain.Scene{
			ID:          domain.NewID(),
			Title:       params.Title,
			Description: params.Description,
			Shots: []*domain.Shot{{
				ID:          domain.NewID(),
				ShotType:    domain.ShotTypeMedium,
				ImageStatus: domain.ImageStatusPending,
			}},
		}
		return sb.AddScene(scene)
	})
}

// UpdateScene 更新场景，nil 字段保持不变
func (s *storyboardService) UpdateScene(ctx context.Context, uid, projectID int64, sceneID string, params *dto.SceneUpdateRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.UpdateScene(sceneID, func(scene *domain.Scene) {
			if params.Title != nil {
				scene.Title = *params.Title
			}
			if params.Description != nil {
				scene.Description = *params.Description
			}
			if params.StartsNewPage != nil {
				scene.StartsNewPage = *params.StartsNewPage
			}
		})
	})
}

// DeleteScene 删除场景，最后一个场景拒绝删除
func (s *storyboardService) DeleteScene(ctx context.Context, uid, projectID int64, sceneID string) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.DeleteScene(sceneID)
	})
}

// ReorderScenes 场景重排，必须为纯重排
func (s *storyboardService) ReorderScenes(ctx context.Context, uid, projectID int64, params *dto.SceneReorderRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.ReorderScenes(params.OrderedIDs)
	})
}

// AddShot 向场景新增镜头
func (s *storyboardService) AddShot(ctx context.Context, uid, projectID int64, sceneID string, params *dto.ShotCreateRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		shot := &domain.Shot{
			Description:    params.Description,
			ShotType:       domain.ShotType(params.ShotType),
			CameraAngle:    domain.CameraAngle(params.CameraAngle),
			CameraMovement: domain.CameraMovement(params.CameraMovement),
			Mood:           domain.Mood(params.Mood),
			ImageStatus:    domain.ImageStatusPending,
		}
		if shot.ShotType == "" {
			shot.ShotType = domain.ShotTypeMedium
		}
		return sb.AddShot(sceneID, shot)
	})
}

// UpdateShot 更新镜头，nil 字段保持不变
func (s *storyboardService) UpdateShot(ctx context.Context, uid, projectID int64, shotID string, params *dto.ShotUpdateRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.UpdateShot(shotID, func(shot *domain.Shot) {
			if params.Description != nil {
				shot.Description = *params.Description
			}
			if params.ShotType != nil {
				shot.ShotType = domain.ShotType(*params.ShotType)
			}
			if params.CameraAngle != nil {
				shot.CameraAngle = domain.CameraAngle(*params.CameraAngle)
			}
			if params.CameraMovement != nil {
				shot.CameraMovement = domain.CameraMovement(*params.CameraMovement)
			}
			if params.Mood != nil {
				shot.Mood = domain.Mood(*params.Mood)
			}
			if params.Lighting != nil {
				shot.Lighting = *params.Lighting
			}
			if params.Audio != nil {
				shot.Audio = *params.Audio
			}
			if params.Prompt != nil {
				shot.Prompt = *params.Prompt
			}
		})
	})
}

// DeleteShot 删除镜头，场景内最后一个镜头拒绝删除
func (s *storyboardService) DeleteShot(ctx context.Context, uid, projectID int64, shotID string) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.DeleteShot(shotID)
	})
}

// ReorderShots 场景内镜头重排
func (s *storyboardService) ReorderShots(ctx context.Context, uid, projectID int64, sceneID string, params *dto.ShotReorderRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.ReorderShots(sceneID, params.OrderedIDs)
	})
}

// annotationFromRequest 组装批注联合值
func annotationFromRequest(id string, params *dto.AnnotationRequest) domain.Annotation {
	return domain.Annotation{
		ID:       id,
		Kind:     domain.AnnotationKind(params.Kind),
		SceneID:  params.SceneID,
		ShotID:   params.ShotID,
		Position: params.Position,
		Text:     params.Text,
		Sticky:   params.Sticky,
		Freehand: params.Freehand,
		Shape:    params.Shape,
	}
}

// AddAnnotation 新增批注
func (s *storyboardService) AddAnnotation(ctx context.Context, uid, projectID int64, params *dto.AnnotationRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.AddAnnotation(annotationFromRequest("", params))
	})
}

// UpdateAnnotation 更新批注
func (s *storyboardService) UpdateAnnotation(ctx context.Context, uid, projectID int64, annotationID string, params *dto.AnnotationRequest) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.UpdateAnnotation(annotationFromRequest(annotationID, params))
	})
}

// DeleteAnnotation 删除批注
func (s *storyboardService) DeleteAnnotation(ctx context.Context, uid, projectID int64, annotationID string) (*domain.Storyboard, error) {
	return s.withStoryboard(ctx, uid, projectID, func(sb *domain.Storyboard) (*domain.Storyboard, error) {
		return sb.DeleteAnnotation(annotationID)
	})
}
