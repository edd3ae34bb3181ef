package service

import (
	"context"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/convert"
	"github.com/haierkeys/storyboard-studio-service/pkg/diff"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"

	"go.uber.org/zap"
)

// ProjectService 定义项目持久化与版本服务接口。
// 项目文档整体读写；版本快照为深度冻结副本，入库后不可变。
type ProjectService interface {
	Create(ctx context.Context, uid int64, params *dto.ProjectCreateRequest) (*dto.ProjectDTO, error)
	Get(ctx context.Context, uid, projectID int64) (*dto.ProjectDTO, error)
	List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.ProjectListItemDTO, int64, error)
	Save(ctx context.Context, uid, projectID int64, params *dto.ProjectSaveRequest) (*dto.ProjectDTO, error)
	Delete(ctx context.Context, uid, projectID int64) error

	SnapshotVersion(ctx context.Context, uid, projectID int64, params *dto.VersionCreateRequest) (*dto.VersionDTO, error)
	ListVersions(ctx context.Context, uid, projectID int64) ([]*dto.VersionDTO, error)
	RestoreVersion(ctx context.Context, uid, projectID int64, versionID string) (*dto.ProjectDTO, error)
}

// projectService 实现 ProjectService 接口
type projectService struct {
	projectRepo domain.ProjectRepository
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(projectRepo domain.ProjectRepository, logger *zap.Logger, config *ServiceConfig) ProjectService {
	return &projectService{projectRepo: projectRepo, logger: logger, config: config}
}

// domainToDTO 将项目领域模型转换为 DTO
func (s *projectService) domainToDTO(p *domain.Project) *dto.ProjectDTO {
	if p == nil {
		return nil
	}
	return &dto.ProjectDTO{
		ID:        p.ID,
		Name:      p.Name,
		Document:  p.Document,
		CreatedAt: timex.Time(p.CreatedAt),
		UpdatedAt: timex.Time(p.UpdatedAt),
	}
}

// Create 创建项目，文档初始化为默认风格的空文档
func (s *projectService) Create(ctx context.Context, uid int64, params *dto.ProjectCreateRequest) (*dto.ProjectDTO, error) {
	doc := &domain.ProjectDocument{}
	doc.Normalize()

	project := &domain.Project{
		Name:     params.Name,
		Document: doc,
	}
	created, err := s.projectRepo.Create(ctx, project, uid)
	if err != nil {
		s.logger.Error("project create failed", zap.Error(err))
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// Get 加载项目；持久化文档损坏时返回加载错误，存储内容保持不变
func (s *projectService) Get(ctx context.Context, uid, projectID int64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		s.logger.Warn("project load failed",
			zap.Int64("project", projectID), zap.Error(err))
		return nil, code.ErrorProjectNotFound
	}
	return s.domainToDTO(project), nil
}

// List 分页获取项目列表
func (s *projectService) List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.ProjectListItemDTO, int64, error) {
	count, err := s.projectRepo.ListCount(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorProjectLoadFailed.WithDetails(err.Error())
	}

	projects, err := s.projectRepo.List(ctx, uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorProjectLoadFailed.WithDetails(err.Error())
	}

	items := make([]*dto.ProjectListItemDTO, 0, len(projects))
	for _, p := range projects {
		item := &dto.ProjectListItemDTO{
			ID:        p.ID,
			Name:      p.Name,
			CreatedAt: timex.Time(p.CreatedAt),
			UpdatedAt: timex.Time(p.UpdatedAt),
		}
		if p.Document != nil && p.Document.Storyboard != nil {
			item.SceneCount = len(p.Document.Storyboard.Scenes)
			item.ShotCount = p.Document.Storyboard.ShotCount()
		}
		items = append(items, item)
	}
	return items, count, nil
}

// Save 整体保存项目文档
func (s *projectService) Save(ctx context.Context, uid, projectID int64, params *dto.ProjectSaveRequest) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}

	params.Document.Normalize()
	project.Document = params.Document
	if params.Name != "" {
		project.Name = params.Name
	}

	updated, err := s.projectRepo.Update(ctx, project, uid)
	if err != nil {
		s.logger.Error("project save failed",
			zap.Int64("project", projectID), zap.Error(err))
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除项目
func (s *projectService) Delete(ctx context.Context, uid, projectID int64) error {
	if _, err := s.projectRepo.GetByID(ctx, projectID, uid); err != nil {
		return code.ErrorProjectNotFound
	}
	if err := s.projectRepo.Delete(ctx, projectID, uid); err != nil {
		return code.ErrorProjectDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

// versionToDTO 转换版本条目（不带冻结文档本体）
func versionToDTO(v *domain.VersionEntry) *dto.VersionDTO {
	return &dto.VersionDTO{
		ID:          v.ID,
		Label:       v.Label,
		DiffSummary: v.DiffSummary,
		CreatedAt:   timex.Time(v.CreatedAt),
	}
}

// SnapshotVersion 生成深度冻结快照并附带与上一快照的文本差异摘要
func (s *projectService) SnapshotVersion(ctx context.Context, uid, projectID int64, params *dto.VersionCreateRequest) (*dto.VersionDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	doc := project.Document
	if doc == nil {
		return nil, code.ErrorProjectNotFound
	}

	entry := domain.VersionEntry{
		ID:        domain.NewID(),
		Label:     params.Label,
		StoryText: doc.StoryText,
		CreatedAt: time.Now(),
	}

	// 冻结副本与工作文档完全隔离
	if doc.Storyboard != nil {
		frozen, err := doc.Storyboard.Clone()
		if err != nil {
			return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
		}
		entry.Storyboard = frozen
	}
	if doc.Style != nil {
		style := &domain.StyleSettings{}
		if err := convert.DeepClone(style, doc.Style); err != nil {
			return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
		}
		entry.Style = style
	}
	entry.Characters = append([]domain.Character{}, doc.Characters...)

	prevText := ""
	if n := len(doc.Versions); n > 0 {
		prevText = doc.Versions[n-1].StoryText
	}
	entry.DiffSummary = diff.Summary(prevText, doc.StoryText)

	doc.Versions = append(doc.Versions, entry)
	if _, err := s.projectRepo.Update(ctx, project, uid); err != nil {
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}

	s.logger.Info("version snapshot stored",
		zap.Int64("project", projectID),
		zap.String("version", entry.ID),
		zap.String("diff", entry.DiffSummary))
	return versionToDTO(&entry), nil
}

// ListVersions 获取版本列表
func (s *projectService) ListVersions(ctx context.Context, uid, projectID int64) ([]*dto.VersionDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	if project.Document == nil {
		return []*dto.VersionDTO{}, nil
	}

	out := make([]*dto.VersionDTO, 0, len(project.Document.Versions))
	for i := range project.Document.Versions {
		out = append(out, versionToDTO(&project.Document.Versions[i]))
	}
	return out, nil
}

// RestoreVersion 用快照副本替换工作文档，快照本体保持不可变
func (s *projectService) RestoreVersion(ctx context.Context, uid, projectID int64, versionID string) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, uid)
	if err != nil {
		return nil, code.ErrorProjectNotFound
	}
	doc := project.Document
	if doc == nil {
		return nil, code.ErrorVersionNotFound
	}

	var entry *domain.VersionEntry
	for i := range doc.Versions {
		if doc.Versions[i].ID == versionID {
			entry = &doc.Versions[i]
			break
		}
	}
	if entry == nil {
		return nil, code.ErrorVersionNotFound
	}

	if entry.Storyboard != nil {
		restored, err := entry.Storyboard.Clone()
		if err != nil {
			return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
		}
		doc.Storyboard = restored
	}
	doc.StoryText = entry.StoryText
	if entry.Style != nil {
		style := &domain.StyleSettings{}
		if err := convert.DeepClone(style, entry.Style); err != nil {
			return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
		}
		doc.Style = style
	}
	doc.Characters = append([]domain.Character{}, entry.Characters...)

	updated, err := s.projectRepo.Update(ctx, project, uid)
	if err != nil {
		return nil, code.ErrorProjectSaveFailed.WithDetails(err.Error())
	}

	s.logger.Info("version restored",
		zap.Int64("project", projectID), zap.String("version", versionID))
	return s.domainToDTO(updated), nil
}
