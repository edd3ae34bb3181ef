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

// ExportHandler export API router handler
// ExportHandler 导出 API 路由处理器
type ExportHandler struct {
	*Handler
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{Handler: NewHandler(a)}
}

// Export 按请求格式导出项目故事板（pdf / html / images），产物写入配置的存储后端
func (h *ExportHandler) Export(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ExportRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ExportHandler.Export.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	exportDTO, err := h.App.ExportService.Export(ctx, uid, params.ProjectID, params)
	if err != nil {
		h.logError(ctx, "ExportHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(exportDTO))
}
