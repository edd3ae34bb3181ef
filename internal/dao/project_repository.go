package dao

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/model"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// projectRepository 实现 domain.ProjectRepository 接口
// 项目文档整体序列化到 doc 列，整体读写，不做局部更新
type projectRepository struct {
	dao     *Dao
	migrate sync.Once
	// 文档较大，合并并发的同键读取
	loads singleflight.Group
}

// NewProjectRepository 创建 ProjectRepository 实例
func NewProjectRepository(dao *Dao) domain.ProjectRepository {
	return &projectRepository{dao: dao}
}

func (r *projectRepository) db(ctx context.Context) *gorm.DB {
	r.migrate.Do(func() {
		_ = model.AutoMigrate(r.dao.DB(), "Project")
	})
	return r.dao.DB().WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型，文档列反序列化失败时返回错误
func (r *projectRepository) toDomain(m *model.Project) (*domain.Project, error) {
	if m == nil {
		return nil, nil
	}
	p := &domain.Project{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
	if m.Doc != "" {
		doc := &domain.ProjectDocument{}
		if err := sonic.UnmarshalString(m.Doc, doc); err != nil {
			return nil, err
		}
		doc.Normalize()
		p.Document = doc
	}
	return p, nil
}

// toModel 将领域模型转换为数据库模型
func (r *projectRepository) toModel(p *domain.Project) (*model.Project, error) {
	if p == nil {
		return nil, nil
	}
	m := &model.Project{
		ID:        p.ID,
		UID:       p.UID,
		Name:      p.Name,
		CreatedAt: timex.Time(p.CreatedAt),
		UpdatedAt: timex.Time(p.UpdatedAt),
	}
	if p.Document != nil {
		p.Document.Normalize()
		doc, err := sonic.MarshalString(p.Document)
		if err != nil {
			return nil, err
		}
		m.Doc = doc
	}
	return m, nil
}

// GetByID 根据ID获取项目
func (r *projectRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Project, error) {
	// 只合并行读取；文档解码在各调用方本地进行，互不共享可变状态
	v, err, _ := r.loads.Do(fmt.Sprintf("%d:%d", uid, id), func() (any, error) {
		var m model.Project
		err := r.db(ctx).Where("id = ? AND uid = ? AND is_deleted = 0", id, uid).First(&m).Error
		if err != nil {
			return nil, err
		}
		return &m, nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(v.(*model.Project))
}

// Create 创建项目
func (r *projectRepository) Create(ctx context.Context, project *domain.Project, uid int64) (*domain.Project, error) {
	m, err := r.toModel(project)
	if err != nil {
		return nil, err
	}
	m.UID = uid
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// Update 整体写入项目文档
func (r *projectRepository) Update(ctx context.Context, project *domain.Project, uid int64) (*domain.Project, error) {
	m, err := r.toModel(project)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt = timex.Now()

	err = r.db(ctx).Model(&model.Project{}).
		Where("id = ? AND uid = ? AND is_deleted = 0", project.ID, uid).
		Updates(map[string]any{
			"name":       m.Name,
			"doc":        m.Doc,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, project.ID, uid)
}

// Delete 删除项目（软删除）
func (r *projectRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.db(ctx).Model(&model.Project{}).
		Where("id = ? AND uid = ? AND is_deleted = 0", id, uid).
		Updates(map[string]any{
			"is_deleted": 1,
			"updated_at": timex.Now(),
		}).Error
}

// List 分页获取项目列表
func (r *projectRepository) List(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Project, error) {
	var ms []*model.Project
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.db(ctx).Where("uid = ? AND is_deleted = 0", uid).
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Project, 0, len(ms))
	for _, m := range ms {
		p, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ListCount 获取项目数量
func (r *projectRepository) ListCount(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.db(ctx).Model(&model.Project{}).
		Where("uid = ? AND is_deleted = 0", uid).
		Count(&count).Error
	return count, err
}
