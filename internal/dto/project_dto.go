package dto

import (
	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"
)

// ProjectCreateRequest 创建项目请求参数
type ProjectCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=100"` // Project name // 项目名称
}

// ProjectIDRequest 按 ID 访问项目的通用请求参数
type ProjectIDRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // Project ID // 项目 ID
}

// ProjectSaveRequest saves the whole project document wholesale
// ProjectSaveRequest 整体保存项目文档请求参数
type ProjectSaveRequest struct {
	ID       int64                   `json:"id" form:"id" binding:"required"`
	Name     string                  `json:"name" form:"name" binding:"max=100"`
	Document *domain.ProjectDocument `json:"document" binding:"required"`
}

// ProjectListRequest 项目列表请求参数
type ProjectListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// VersionCreateRequest 创建版本快照请求参数
type VersionCreateRequest struct {
	ProjectID int64  `json:"projectId" form:"projectId" binding:"required"`
	Label     string `json:"label" form:"label" binding:"max=100"` // Snapshot label // 快照标签
}

// VersionRestoreRequest 恢复版本快照请求参数
type VersionRestoreRequest struct {
	ProjectID int64  `json:"projectId" form:"projectId" binding:"required"`
	VersionID string `json:"versionId" form:"versionId" binding:"required"`
}

// TemplateCreateRequest 创建风格模板请求参数
type TemplateCreateRequest struct {
	Name  string                `json:"name" form:"name" binding:"required,max=100"`
	Style *domain.StyleSettings `json:"style" binding:"required"`
}

// TemplateUpdateRequest 更新风格模板请求参数
type TemplateUpdateRequest struct {
	ID    int64                 `json:"id" form:"id" binding:"required"`
	Name  string                `json:"name" form:"name" binding:"required,max=100"`
	Style *domain.StyleSettings `json:"style" binding:"required"`
}

// TemplateIDRequest 按 ID 访问风格模板的通用请求参数
type TemplateIDRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"` // Template ID // 模板 ID
}

// ---------------- DTO / Response ----------------

// ProjectDTO 项目数据传输对象
type ProjectDTO struct {
	ID        int64                   `json:"id"`
	Name      string                  `json:"name"`
	Document  *domain.ProjectDocument `json:"document,omitempty"`
	UpdatedAt timex.Time              `json:"updatedAt"`
	CreatedAt timex.Time              `json:"createdAt"`
}

// ProjectListItemDTO 项目列表项，带结构摘要
type ProjectListItemDTO struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	SceneCount int        `json:"sceneCount"`
	ShotCount  int        `json:"shotCount"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
}

// VersionDTO 版本快照数据传输对象（不含冻结文档本体）
type VersionDTO struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	DiffSummary string     `json:"diffSummary"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// TemplateDTO 风格模板数据传输对象
type TemplateDTO struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	Style     *domain.StyleSettings `json:"style"`
	UpdatedAt timex.Time            `json:"updatedAt"`
	CreatedAt timex.Time            `json:"createdAt"`
}
