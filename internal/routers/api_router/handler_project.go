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

// ProjectHandler project API router handler
// ProjectHandler 项目 API 路由处理器
type ProjectHandler struct {
	*Handler
}

// NewProjectHandler 创建 ProjectHandler 实例
func NewProjectHandler(a *app.App) *ProjectHandler {
	return &ProjectHandler{Handler: NewHandler(a)}
}

// Create 创建空项目
func (h *ProjectHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ProjectHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.WithData(projectDTO))
}

// Get 获取项目详情（含完整文档）
func (h *ProjectHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.Get(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "ProjectHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}

// List 分页获取项目列表
func (h *ProjectHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSize(c)

	list, total, err := h.App.ProjectService.List(ctx, uid, page, pageSize)
	if err != nil {
		h.logError(ctx, "ProjectHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, list, int(total))
}

// Save 整体保存项目文档
func (h *ProjectHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectSaveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.Save.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.Save(ctx, uid, params.ID, params)
	if err != nil {
		h.logError(ctx, "ProjectHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}

// Delete 删除项目（软删除）
func (h *ProjectHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.ProjectService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "ProjectHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// SnapshotVersion 创建版本快照
func (h *ProjectHandler) SnapshotVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.SnapshotVersion.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	versionDTO, err := h.App.ProjectService.SnapshotVersion(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "ProjectHandler.SnapshotVersion", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.WithData(versionDTO))
}

// ListVersions 获取项目版本快照列表
func (h *ProjectHandler) ListVersions(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectIDRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.ListVersions.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	versions, err := h.App.ProjectService.ListVersions(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "ProjectHandler.ListVersions", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(versions))
}

// RestoreVersion 恢复版本快照到工作文档
func (h *ProjectHandler) RestoreVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.VersionRestoreRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.RestoreVersion.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.RestoreVersion(ctx, uid, params.ProjectID, params.VersionID)
	if err != nil {
		h.logError(ctx, "ProjectHandler.RestoreVersion", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}
