package service

import (
	"context"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"

	"go.uber.org/zap"
)

// TemplateService 定义风格模板服务接口
type TemplateService interface {
	Create(ctx context.Context, uid int64, params *dto.TemplateCreateRequest) (*dto.TemplateDTO, error)
	Update(ctx context.Context, uid, templateID int64, params *dto.TemplateUpdateRequest) (*dto.TemplateDTO, error)
	Delete(ctx context.Context, uid, templateID int64) error
	List(ctx context.Context, uid int64) ([]*dto.TemplateDTO, error)
}

// templateService 实现 TemplateService 接口
type templateService struct {
	templateRepo domain.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService 创建 TemplateService 实例
func NewTemplateService(templateRepo domain.TemplateRepository, logger *zap.Logger) TemplateService {
	return &templateService{templateRepo: templateRepo, logger: logger}
}

func templateToDTO(t *domain.Template) *dto.TemplateDTO {
	if t == nil {
		return nil
	}
	return &dto.TemplateDTO{
		ID:        t.ID,
		Name:      t.Name,
		Style:     t.Style,
		CreatedAt: timex.Time(t.CreatedAt),
		UpdatedAt: timex.Time(t.UpdatedAt),
	}
}

// Create 创建模板
func (s *templateService) Create(ctx context.Context, uid int64, params *dto.TemplateCreateRequest) (*dto.TemplateDTO, error) {
	t, err := s.templateRepo.Create(ctx, &domain.Template{
		Name:  params.Name,
		Style: params.Style,
	}, uid)
	if err != nil {
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}
	return templateToDTO(t), nil
}

// Update 更新模板
func (s *templateService) Update(ctx context.Context, uid, templateID int64, params *dto.TemplateUpdateRequest) (*dto.TemplateDTO, error) {
	if _, err := s.templateRepo.GetByID(ctx, templateID, uid); err != nil {
		return nil, code.ErrorTemplateNotFound
	}
	t, err := s.templateRepo.Update(ctx, &domain.Template{
		ID:    templateID,
		Name:  params.Name,
		Style: params.Style,
	}, uid)
	if err != nil {
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}
	return templateToDTO(t), nil
}

// Delete 删除模板
func (s *templateService) Delete(ctx context.Context, uid, templateID int64) error {
	if _, err := s.templateRepo.GetByID(ctx, templateID, uid); err != nil {
		return code.ErrorTemplateNotFound
	}
	return s.templateRepo.Delete(ctx, templateID, uid)
}

// List 获取用户全部模板
func (s *templateService) List(ctx context.Context, uid int64) ([]*dto.TemplateDTO, error) {
	ts, err := s.templateRepo.List(ctx, uid)
	if err != nil {
		return nil, code.ErrorProjectLoadFailed.WithDetails(err.Error())
	}
	out := make([]*dto.TemplateDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, templateToDTO(t))
	}
	return out, nil
}
