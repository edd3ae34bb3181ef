package api_router

import (
	"github.com/haierkeys/storyboard-studio-service/internal/app"
	pkgapp "github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler version info API router handler
// VersionHandler 版本信息 API 路由处理器
type VersionHandler struct {
	*Handler
}

// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersionResponse 服务端版本响应
type ServerVersionResponse struct {
	Version        string `json:"version"`
	GitTag         string `json:"gitTag"`
	BuildTime      string `json:"buildTime"`
	VersionIsNew   bool   `json:"versionIsNew"`
	VersionNewName string `json:"versionNewName"`
	VersionNewLink string `json:"versionNewLink"`
}

// ServerVersion 获取服务端软件版本、Git 标签与构建时间
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	versionInfo := h.App.Version()
	checkInfo := h.App.CheckVersion()
	response.ToResponse(code.Success.WithData(ServerVersionResponse{
		Version:        versionInfo.Version,
		GitTag:         versionInfo.GitTag,
		BuildTime:      versionInfo.BuildTime,
		VersionIsNew:   checkInfo.VersionIsNew,
		VersionNewName: checkInfo.VersionNewName,
		VersionNewLink: checkInfo.VersionNewLink,
	}))
}
