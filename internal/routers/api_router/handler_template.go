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

// TemplateHandler style template API router handler
// TemplateHandler 风格模板 API 路由处理器
type TemplateHandler struct {
	*Handler
}

// NewTemplateHandler 创建 TemplateHandler 实例
func NewTemplateHandler(a *app.App) *TemplateHandler {
	return &TemplateHandler{Handler: NewHandler(a)}
}

// Create 创建风格模板
func (h *TemplateHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TemplateCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TemplateHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	templateDTO, err := h.App.TemplateService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "TemplateHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.WithData(templateDTO))
}

// Update 更新风格模板
func (h *TemplateHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TemplateUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TemplateHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	templateDTO, err := h.App.TemplateService.Update(ctx, uid, params.ID, params)
	if err != nil {
		h.logError(ctx, "TemplateHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(templateDTO))
}

// Delete 删除风格模板
func (h *TemplateHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TemplateIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TemplateHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.TemplateService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "TemplateHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List 获取当前用户的风格模板列表
func (h *TemplateHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	templates, err := h.App.TemplateService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "TemplateHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(templates))
}
