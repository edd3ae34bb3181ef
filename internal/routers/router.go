// Package routers 组装 HTTP 路由与中间件链
package routers

import (
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/app"
	"github.com/haierkeys/storyboard-studio-service/internal/middleware"
	"github.com/haierkeys/storyboard-studio-service/internal/routers/api_router"
	"github.com/haierkeys/storyboard-studio-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公开 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	// websocket 进度推送入口，token 经查询参数校验
	r.GET("/ws", appContainer.WSS.Run())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		if cfg.Tracer.Enabled {
			api.Use(middleware.TraceMiddleware(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.Server.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		projectHandler := api_router.NewProjectHandler(appContainer)
		storyboardHandler := api_router.NewStoryboardHandler(appContainer)
		generateHandler := api_router.NewGenerateHandler(appContainer)
		exportHandler := api_router.NewExportHandler(appContainer)
		templateHandler := api_router.NewTemplateHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 无需认证的接口
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		// 需要认证的接口
		auth := api.Group("", middleware.UserAuthToken(appContainer.TokenManager))
		{
			auth.GET("/user/info", userHandler.UserInfo)
			auth.GET("/system", healthHandler.System)

			auth.POST("/project", projectHandler.Create)
			auth.GET("/project", projectHandler.Get)
			auth.PUT("/project", projectHandler.Save)
			auth.DELETE("/project", projectHandler.Delete)
			auth.GET("/projects", projectHandler.List)

			auth.POST("/project/version", projectHandler.SnapshotVersion)
			auth.GET("/project/versions", projectHandler.ListVersions)
			auth.PUT("/project/version/restore", projectHandler.RestoreVersion)

			auth.POST("/project/generate", generateHandler.Generate)
			auth.POST("/project/images", generateHandler.GenerateImages)
			auth.POST("/shot/regenerate", generateHandler.RegenerateShot)

			auth.POST("/scene", storyboardHandler.AddScene)
			auth.PUT("/scene", storyboardHandler.UpdateScene)
			auth.DELETE("/scene", storyboardHandler.DeleteScene)
			auth.PUT("/scenes/reorder", storyboardHandler.ReorderScenes)

			auth.POST("/shot", storyboardHandler.AddShot)
			auth.PUT("/shot", storyboardHandler.UpdateShot)
			auth.DELETE("/shot", storyboardHandler.DeleteShot)
			auth.PUT("/shots/reorder", storyboardHandler.ReorderShots)

			auth.POST("/annotation", storyboardHandler.AddAnnotation)
			auth.PUT("/annotation", storyboardHandler.UpdateAnnotation)
			auth.DELETE("/annotation", storyboardHandler.DeleteAnnotation)

			auth.POST("/project/export", exportHandler.Export)

			auth.POST("/template", templateHandler.Create)
			auth.PUT("/template", templateHandler.Update)
			auth.DELETE("/template", templateHandler.Delete)
			auth.GET("/templates", templateHandler.List)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
