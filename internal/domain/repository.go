// Package domain 定义领域模型和接口
package domain

import "context"

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// GetByID 根据ID获取项目
	GetByID(ctx context.Context, id, uid int64) (*Project, error)

	// Create 创建项目
	Create(ctx context.Context, project *Project, uid int64) (*Project, error)

	// Update 整体写入项目文档
	Update(ctx context.Context, project *Project, uid int64) (*Project, error)

	// Delete 删除项目
	Delete(ctx context.Context, id, uid int64) error

	// List 分页获取项目列表
	List(ctx context.Context, uid int64, page, pageSize int) ([]*Project, error)

	// ListCount 获取项目数量
	ListCount(ctx context.Context, uid int64) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// Update 更新用户
	Update(ctx context.Context, user *User, uid int64) error
}

// TemplateRepository 风格模板仓储接口
type TemplateRepository interface {
	// GetByID 根据ID获取模板
	GetByID(ctx context.Context, id, uid int64) (*Template, error)

	// Create 创建模板
	Create(ctx context.Context, template *Template, uid int64) (*Template, error)

	// Update 更新模板
	Update(ctx context.Context, template *Template, uid int64) (*Template, error)

	// Delete 删除模板
	Delete(ctx context.Context, id, uid int64) error

	// List 获取用户全部模板
	List(ctx context.Context, uid int64) ([]*Template, error)
}
