package api_router

import (
	"github.com/haierkeys/storyboard-studio-service/internal/app"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	pkgapp "github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	apperrors "github.com/haierkeys/storyboard-studio-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoryboardHandler storyboard editing API router handler
// StoryboardHandler 故事板编辑 API 路由处理器
// 场景、镜头、批注的增删改与重排，全部返回编辑后的完整故事板
type StoryboardHandler struct {
	*Handler
}

// NewStoryboardHandler 创建 StoryboardHandler 实例
func NewStoryboardHandler(a *app.App) *StoryboardHandler {
	return &StoryboardHandler{Handler: NewHandler(a)}
}

// bindAndUID 参数绑定与用户校验的公共前置
func (h *StoryboardHandler) bindAndUID(c *gin.Context, method string, params any) (int64, bool) {
	response := pkgapp.NewResponse(c)

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error(method+".BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return 0, false
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return 0, false
	}
	return uid, true
}

// AddScene 新增场景
func (h *StoryboardHandler) AddScene(c *gin.Context) {
	params := &dto.SceneCreateRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.AddScene", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.AddScene(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.AddScene", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessCreated.WithData(sb))
}

// UpdateScene 更新场景
func (h *StoryboardHandler) UpdateScene(c *gin.Context) {
	params := &dto.SceneUpdateRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.UpdateScene", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.UpdateScene(ctx, uid, params.ProjectID, params.SceneID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.UpdateScene", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// DeleteScene 删除场景；最后一个场景不可删除
func (h *StoryboardHandler) DeleteScene(c *gin.Context) {
	params := &dto.SceneDeleteRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.DeleteScene", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.DeleteScene(ctx, uid, params.ProjectID, params.SceneID)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.DeleteScene", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// ReorderScenes 场景重排，必须是现有场景 ID 的纯重排
func (h *StoryboardHandler) ReorderScenes(c *gin.Context) {
	params := &dto.SceneReorderRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.ReorderScenes", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.ReorderScenes(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.ReorderScenes", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// AddShot 新增镜头
func (h *StoryboardHandler) AddShot(c *gin.Context) {
	params := &dto.ShotCreateRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.AddShot", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.AddShot(ctx, uid, params.ProjectID, params.SceneID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.AddShot", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessCreated.WithData(sb))
}

// UpdateShot 更新镜头
func (h *StoryboardHandler) UpdateShot(c *gin.Context) {
	params := &dto.ShotUpdateRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.UpdateShot", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.UpdateShot(ctx, uid, params.ProjectID, params.ShotID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.UpdateShot", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// DeleteShot 删除镜头；场景内最后一个镜头不可删除
func (h *StoryboardHandler) DeleteShot(c *gin.Context) {
	params := &dto.ShotDeleteRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.DeleteShot", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.DeleteShot(ctx, uid, params.ProjectID, params.ShotID)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.DeleteShot", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// ReorderShots 场景内镜头重排
func (h *StoryboardHandler) ReorderShots(c *gin.Context) {
	params := &dto.ShotReorderRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.ReorderShots", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.ReorderShots(ctx, uid, params.ProjectID, params.SceneID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.ReorderShots", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}

// AddAnnotation 新增批注
func (h *StoryboardHandler) AddAnnotation(c *gin.Context) {
	params := &dto.AnnotationRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.AddAnnotation", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.AddAnnotation(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.AddAnnotation", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessCreated.WithData(sb))
}

// UpdateAnnotation 更新批注
func (h *StoryboardHandler) UpdateAnnotation(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AnnotationRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.UpdateAnnotation", params)
	if !ok {
		return
	}
	if params.AnnotationID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("annotationId is required"))
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.UpdateAnnotation(ctx, uid, params.ProjectID, params.AnnotationID, params)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.UpdateAnnotation", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(sb))
}

// DeleteAnnotation 删除批注
func (h *StoryboardHandler) DeleteAnnotation(c *gin.Context) {
	params := &dto.AnnotationDeleteRequest{}
	uid, ok := h.bindAndUID(c, "StoryboardHandler.DeleteAnnotation", params)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	sb, err := h.App.StoryboardService.DeleteAnnotation(ctx, uid, params.ProjectID, params.AnnotationID)
	if err != nil {
		h.logError(ctx, "StoryboardHandler.DeleteAnnotation", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(sb))
}
