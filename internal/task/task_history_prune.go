package task

import (
	"context"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/model"

	"github.com/haierkeys/storyboard-studio-service/internal/app"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// HistoryPruneTask caps the number of version snapshots kept per project
// HistoryPruneTask 限制每个项目保留的版本快照数量，超出上限的最老快照被丢弃
type HistoryPruneTask struct {
	app    *app.App
	logger *zap.Logger
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &HistoryPruneTask{
			app:    appContainer,
			logger: appContainer.Logger(),
		}, nil
	})
}

func (t *HistoryPruneTask) Name() string {
	return "history_prune"
}

func (t *HistoryPruneTask) LoopInterval() time.Duration {
	return 1 * time.Hour
}

func (t *HistoryPruneTask) IsStartupRun() bool {
	return false
}

func (t *HistoryPruneTask) Run(ctx context.Context) error {
	keep := t.app.Config().Export.MaxVersionsPerProject
	if keep <= 0 {
		return nil
	}

	var projects []model.Project
	if err := t.app.DB.WithContext(ctx).
		Where("is_deleted = 0").
		Find(&projects).Error; err != nil {
		return err
	}

	pruned := 0
	for i := range projects {
		p := &projects[i]
		if p.Doc == "" {
			continue
		}

		var doc domain.ProjectDocument
		if err := sonic.UnmarshalString(p.Doc, &doc); err != nil {
			// 坏文档留给加载路径报错，这里不动
			t.logger.Warn("history prune: skip malformed document",
				zap.Int64("project", p.ID), zap.Error(err))
			continue
		}
		if len(doc.Versions) <= keep {
			continue
		}

		doc.Versions = doc.Versions[len(doc.Versions)-keep:]
		raw, err := sonic.MarshalString(&doc)
		if err != nil {
			return err
		}
		if err := t.app.DB.WithContext(ctx).
			Model(&model.Project{}).
			Where("id = ?", p.ID).
			Update("doc", raw).Error; err != nil {
			return err
		}
		pruned++
	}

	if pruned > 0 {
		t.logger.Info("history prune finished",
			zap.Int("projects", pruned), zap.Int("keep", keep))
	}
	return nil
}
