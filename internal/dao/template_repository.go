package dao

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/model"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

// templateRepository 实现 domain.TemplateRepository 接口
type templateRepository struct {
	dao     *Dao
	migrate sync.Once
}

// NewTemplateRepository 创建 TemplateRepository 实例
func NewTemplateRepository(dao *Dao) domain.TemplateRepository {
	return &templateRepository{dao: dao}
}

func (r *templateRepository) db(ctx context.Context) *gorm.DB {
	r.migrate.Do(func() {
		_ = model.AutoMigrate(r.dao.DB(), "Template")
	})
	return r.dao.DB().WithContext(ctx)
}

func (r *templateRepository) toDomain(m *model.Template) (*domain.Template, error) {
	if m == nil {
		return nil, nil
	}
	t := &domain.Template{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
	if m.Style != "" {
		style := &domain.StyleSettings{}
		if err := sonic.UnmarshalString(m.Style, style); err != nil {
			return nil, err
		}
		t.Style = style
	}
	return t, nil
}

func (r *templateRepository) toModel(t *domain.Template) (*model.Template, error) {
	if t == nil {
		return nil, nil
	}
	m := &model.Template{
		ID:        t.ID,
		UID:       t.UID,
		Name:      t.Name,
		CreatedAt: timex.Time(t.CreatedAt),
		UpdatedAt: timex.Time(t.UpdatedAt),
	}
	if t.Style != nil {
		style, err := sonic.MarshalString(t.Style)
		if err != nil {
			return nil, err
		}
		m.Style = style
	}
	return m, nil
}

// GetByID 根据ID获取模板
func (r *templateRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Template, error) {
	var m model.Template
	err := r.db(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m)
}

// Create 创建模板
func (r *templateRepository) Create(ctx context.Context, template *domain.Template, uid int64) (*domain.Template, error) {
	m, err := r.toModel(template)
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

// Update 更新模板
func (r *templateRepository) Update(ctx context.Context, template *domain.Template, uid int64) (*domain.Template, error) {
	m, err := r.toModel(template)
	if err != nil {
		return nil, err
	}

	err = r.db(ctx).Model(&model.Template{}).
		Where("id = ? AND uid = ?", template.ID, uid).
		Updates(map[string]any{
			"name":       m.Name,
			"style":      m.Style,
			"updated_at": timex.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, template.ID, uid)
}

// Delete 删除模板
func (r *templateRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.db(ctx).Where("id = ? AND uid = ?", id, uid).Delete(&model.Template{}).Error
}

// List 获取用户全部模板
func (r *templateRepository) List(ctx context.Context, uid int64) ([]*domain.Template, error) {
	var ms []*model.Template
	err := r.db(ctx).Where("uid = ?", uid).Order("id ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Template, 0, len(ms))
	for _, m := range ms {
		t, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
