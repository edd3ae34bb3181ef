package api_router

import (
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/app"
	pkgapp "github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string  `json:"status"`     // "healthy" 或 "unhealthy"
	Version    string  `json:"version"`    // 服务版本号
	Uptime     float64 `json:"uptime"`     // 运行时间（秒）
	Database   string  `json:"database"`   // "connected" 或 "error"
	QueueDepth int     `json:"queueDepth"` // 画面生成队列深度
}

// Check 健康检查接口，覆盖数据库连接与画面队列
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:     "healthy",
		Version:    h.App.Version().Version,
		Uptime:     time.Since(h.App.StartTime).Seconds(),
		Database:   "connected",
		QueueDepth: h.App.ImageService.QueueDepth(),
	}

	// 检查数据库连接
	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorServerInternal.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}

// SystemResponse 系统信息响应
type SystemResponse struct {
	MachineID string        `json:"machineId"`
	Sys       *util.SysInfo `json:"sys"`
}

// System 获取主机运行时信息（CPU、内存、内核）
func (h *HealthHandler) System(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(SystemResponse{
		MachineID: util.GetMachineID(),
		Sys:       util.GetSysInfo(),
	}))
}
