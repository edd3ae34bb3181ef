package dao

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/model"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao     *Dao
	migrate sync.Once
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// db 获取用户表连接，首次使用时迁移表结构
func (r *userRepository) db(ctx context.Context) *gorm.DB {
	r.migrate.Do(func() {
		_ = model.AutoMigrate(r.dao.DB(), "User")
	})
	return r.dao.DB().WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Password:  m.Password,
		Salt:      m.Salt,
		Token:     m.Token,
		Avatar:    m.Avatar,
		IsDeleted: int(m.IsDeleted),
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	return &model.User{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Password:  user.Password,
		Salt:      user.Salt,
		Token:     user.Token,
		Avatar:    user.Avatar,
		IsDeleted: int64(user.IsDeleted),
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.db(ctx).Where("uid = ? AND is_deleted = 0", uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.db(ctx).Where("email = ? AND is_deleted = 0", email).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新用户
func (r *userRepository) Update(ctx context.Context, user *domain.User, uid int64) error {
	m := r.toModel(user)
	m.UpdatedAt = timex.Now()
	return r.db(ctx).Model(&model.User{}).Where("uid = ?", uid).Updates(m).Error
}
