package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/storyboard-studio-service/global"
	"github.com/haierkeys/storyboard-studio-service/internal/dao"
	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/service"
	pkgapp "github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/imagequeue"
	"github.com/haierkeys/storyboard-studio-service/pkg/safe_close"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	ProjectRepo  domain.ProjectRepository
	UserRepo     domain.UserRepository
	TemplateRepo domain.TemplateRepository

	// Service 层
	UserService       service.UserService
	ProjectService    service.ProjectService
	TemplateService   service.TemplateService
	GenerateService   service.GenerateService
	StoryboardService service.StoryboardService
	ImageService      service.ImageService
	ExportService     service.ExportService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	WSS          *pkgapp.WebsocketServer
	Storage      storage.Storager
	ImageQueue   *imagequeue.Queue

	// StartTime 服务启动时间，用于健康检查的 uptime
	StartTime time.Time

	// 关闭控制
	safeClose *safe_close.SafeClose

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
		safeClose: safe_close.NewSafeClose(),
	}

	// 初始化 DAO
	a.Dao = dao.New(db)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    global.Name,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Websocket 服务（生成进度、画面完成、导出完成推送）
	a.WSS = pkgapp.NewWebsocketServer(pkgapp.WSConfig{}, a.TokenManager, logger)

	// 初始化存储后端
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage backend: %w", err)
	}
	a.Storage = store

	// 初始化画面生成队列：占位图兜底的串行队列
	svcConfig := cfg.GetServiceConfig()
	placeholder := service.NewPlaceholderProvider(&svcConfig.Generator)
	var primary imagequeue.Provider
	if svcConfig.Generator.ProviderURL != "" {
		primary = service.NewHTTPProvider(&svcConfig.Generator)
	}
	provider := service.NewFallbackProvider(primary, placeholder, logger)
	queueConfig := cfg.GetImageQueueConfig()
	a.ImageQueue = imagequeue.New(&queueConfig, provider, logger)

	// 初始化 Repository 层
	a.ProjectRepo = dao.NewProjectRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.TemplateRepo = dao.NewTemplateRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.ProjectService = service.NewProjectService(a.ProjectRepo, logger, svcConfig)
	a.TemplateService = service.NewTemplateService(a.TemplateRepo, logger)
	a.GenerateService = service.NewGenerateService(a.ProjectRepo, logger, svcConfig)
	a.StoryboardService = service.NewStoryboardService(a.ProjectRepo, logger)
	a.ImageService = service.NewImageService(a.ProjectRepo, a.ImageQueue, a.GenerateService, a.WSS, logger)
	a.ExportService = service.NewExportService(a.ProjectRepo, a.Storage, a.WSS, logger)

	logger.Info("App container initialized successfully",
		zap.String("storage", string(cfg.Storage.Type)),
		zap.Int("imageQueueCapacity", queueConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SafeClose 获取关闭协调器
func (a *App) SafeClose() *safe_close.SafeClose {
	return a.safeClose
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   global.Version,
		GitTag:    global.GitTag,
		BuildTime: global.BuildTime,
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
		cv.VersionNewLink = ""
	}
	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：画面队列 -> 数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error

	// 1. 关闭画面生成队列（排空等待中的请求）
	if a.ImageQueue != nil {
		a.logger.Info("Shutting down image queue...")
		if err := a.ImageQueue.Shutdown(ctx); err != nil {
			a.logger.Warn("Image queue shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("image queue shutdown: %w", err))
		} else {
			a.logger.Info("Image queue shutdown completed")
		}
	}

	// 2. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}
