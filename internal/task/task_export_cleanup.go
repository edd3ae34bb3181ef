package task

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/storage"

	"go.uber.org/zap"
)

// ExportRetention 本地导出产物保留时间
const ExportRetention = 7 * 24 * time.Hour

// ExportCleanupTask removes stale export artifacts from local storage
// ExportCleanupTask 清理本地存储中过期的导出产物；云端后端由各自的生命周期策略管理
type ExportCleanupTask struct {
	app    *app.App
	logger *zap.Logger
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		// 仅本地存储需要清理
		if appContainer.Config().Storage.Type != storage.LOCAL {
			return nil, nil
		}
		return &ExportCleanupTask{
			app:    appContainer,
			logger: appContainer.Logger(),
		}, nil
	})
}

func (t *ExportCleanupTask) Name() string {
	return "export_cleanup"
}

func (t *ExportCleanupTask) LoopInterval() time.Duration {
	return 6 * time.Hour
}

func (t *ExportCleanupTask) IsStartupRun() bool {
	return true
}

func (t *ExportCleanupTask) Run(ctx context.Context) error {
	root := t.app.Config().Storage.SavePath
	if root == "" {
		return nil
	}
	cutoff := time.Now().Add(-ExportRetention)

	removed := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			t.logger.Warn("export cleanup: remove failed",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		t.logger.Info("export cleanup finished", zap.Int("removed", removed))
	}
	return nil
}
