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

// GenerateHandler generation pipeline API router handler
// GenerateHandler 生成管线 API 路由处理器
// 文本 → 故事板结构，镜头画面串行排队生成
type GenerateHandler struct {
	*Handler
}

// NewGenerateHandler 创建 GenerateHandler 实例
func NewGenerateHandler(a *app.App) *GenerateHandler {
	return &GenerateHandler{Handler: NewHandler(a)}
}

// Generate 从故事文本生成结构化故事板并整体写入项目文档
func (h *GenerateHandler) Generate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.GenerateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GenerateHandler.Generate.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	boardDTO, err := h.App.GenerateService.Generate(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "GenerateHandler.Generate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	// 生成成功后随即排队全部镜头的画面；排队失败不影响结构结果
	queued, qErr := h.App.ImageService.EnqueueProject(ctx, uid, params.ProjectID,
		&dto.GenerateImagesRequest{ProjectID: params.ProjectID})
	if qErr != nil {
		h.App.Logger().Warn("GenerateHandler.Generate enqueue images failed", zap.Error(qErr))
	}
	boardDTO.QueuedImages = queued

	response.ToResponse(code.Success.WithData(boardDTO))
}

// GenerateImages 为项目镜头排队画面生成，进度经 websocket 推送
func (h *GenerateHandler) GenerateImages(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.GenerateImagesRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GenerateHandler.GenerateImages.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	queued, err := h.App.ImageService.EnqueueProject(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "GenerateHandler.GenerateImages", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{
		"queued": queued,
		"depth":  h.App.ImageService.QueueDepth(),
	}))
}

// RegenerateShot 重新合成单镜头提示词并重新排队生成
func (h *GenerateHandler) RegenerateShot(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RegenerateShotRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GenerateHandler.RegenerateShot.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	resultDTO, err := h.App.ImageService.RegenerateShot(ctx, uid, params.ProjectID, params.ShotID)
	if err != nil {
		h.logError(ctx, "GenerateHandler.RegenerateShot", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(resultDTO))
}
