package dto

import (
	"github.com/haierkeys/storyboard-studio-service/internal/domain"
)

// GenerateRequest 故事生成请求参数
// Seed 为可选的随机种子，传入后生成结果可复现
type GenerateRequest struct {
	ProjectID int64                 `json:"projectId" form:"projectId" binding:"required"`
	StoryText string                `json:"storyText" form:"storyText" binding:"required"` // Raw story text // 原始故事文本
	Style     *domain.StyleSettings `json:"style"`                                         // Optional style override // 可选风格设置
	Seed      *int64                `json:"seed"`                                          // Optional RNG seed // 可选随机种子
}

// SceneCreateRequest 新增场景请求参数
type SceneCreateRequest struct {
	ProjectID   int64  `json:"projectId" form:"projectId" binding:"required"`
	Title       string `json:"title" form:"title" binding:"max=200"`
	Description string `json:"description" form:"description"`
}

// SceneUpdateRequest 更新场景请求参数，nil 字段不变更
type SceneUpdateRequest struct {
	ProjectID     int64   `json:"projectId" form:"projectId" binding:"required"`
	SceneID       string  `json:"sceneId" form:"sceneId" binding:"required"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	StartsNewPage *bool   `json:"startsNewPage"`
}

// SceneDeleteRequest 删除场景请求参数
type SceneDeleteRequest struct {
	ProjectID int64  `json:"projectId" form:"projectId" binding:"required"`
	SceneID   string `json:"sceneId" form:"sceneId" binding:"required"`
}

// SceneReorderRequest 场景重排请求参数，必须是现有场景 ID 的纯重排
type SceneReorderRequest struct {
	ProjectID  int64    `json:"projectId" form:"projectId" binding:"required"`
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1"`
}

// ShotCreateRequest 新增镜头请求参数
type ShotCreateRequest struct {
	ProjectID      int64  `json:"projectId" form:"projectId" binding:"required"`
	SceneID        string `json:"sceneId" form:"sceneId" binding:"required"`
	Description    string `json:"description" form:"description"`
	ShotType       string `json:"shotType"`
	CameraAngle    string `json:"cameraAngle"`
	CameraMovement string `json:"cameraMovement"`
	Mood           string `json:"mood"`
}

// ShotUpdateRequest 更新镜头请求参数，nil 字段不变更
type ShotUpdateRequest struct {
	ProjectID      int64   `json:"projectId" form:"projectId" binding:"required"`
	ShotID         string  `json:"shotId" form:"shotId" binding:"required"`
	Description    *string `json:"description"`
	ShotType       *string `json:"shotType"`
	CameraAngle    *string `json:"cameraAngle"`
	CameraMovement *string `json:"cameraMovement"`
	Mood           *string `json:"mood"`
	Lighting       *string `json:"lighting"`
	Audio          *string `json:"audio"`
	Prompt         *string `json:"prompt"`
}

// ShotDeleteRequest 删除镜头请求参数
type ShotDeleteRequest struct {
	ProjectID int64  `json:"projectId" form:"projectId" binding:"required"`
	ShotID    string `json:"shotId" form:"shotId" binding:"required"`
}

// ShotReorderRequest 镜头重排请求参数
type ShotReorderRequest struct {
	ProjectID  int64    `json:"projectId" form:"projectId" binding:"required"`
	SceneID    string   `json:"sceneId" form:"sceneId" binding:"required"`
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1"`
}

// AnnotationRequest 新增/更新批注请求参数，负载与 kind 一一对应
type AnnotationRequest struct {
	ProjectID    int64                      `json:"projectId" form:"projectId" binding:"required"`
	AnnotationID string                     `json:"annotationId" form:"annotationId"` // 更新时必填
	Kind         string                     `json:"kind" binding:"required,oneof=text sticky freehand shape"`
	SceneID      string                     `json:"sceneId"`
	ShotID       string                     `json:"shotId"`
	Position     domain.Point               `json:"position"`
	Text         *domain.TextAnnotation     `json:"text"`
	Sticky       *domain.StickyAnnotation   `json:"sticky"`
	Freehand     *domain.FreehandAnnotation `json:"freehand"`
	Shape        *domain.ShapeAnnotation    `json:"shape"`
}

// AnnotationDeleteRequest 删除批注请求参数
type AnnotationDeleteRequest struct {
	ProjectID    int64  `json:"projectId" form:"projectId" binding:"required"`
	AnnotationID string `json:"annotationId" form:"annotationId" binding:"required"`
}

// GenerateImagesRequest 画面生成请求参数；ShotIDs 为空时生成全部镜头
type GenerateImagesRequest struct {
	ProjectID int64    `json:"projectId" form:"projectId" binding:"required"`
	ShotIDs   []string `json:"shotIds"`
}

// RegenerateShotRequest 单镜头重生成请求参数
type RegenerateShotRequest struct {
	ProjectID int64  `json:"projectId" form:"projectId" binding:"required"`
	ShotID    string `json:"shotId" form:"shotId" binding:"required"`
}

// ---------------- DTO / Response ----------------

// StoryboardDTO 故事板数据传输对象
type StoryboardDTO struct {
	Storyboard *domain.Storyboard `json:"storyboard"`
	Characters []domain.Character `json:"characters"`
	// QueuedImages 生成后随即排入画面队列的镜头数
	QueuedImages int `json:"queuedImages,omitempty"`
}

// ImageResultDTO 单镜头画面生成结果
type ImageResultDTO struct {
	ShotID      string `json:"shotId"`
	ImageURL    string `json:"imageUrl"`
	ImageStatus string `json:"imageStatus"`
}
