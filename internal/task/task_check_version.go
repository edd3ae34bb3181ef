package task

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/storyboard-studio-service/internal/app"
	pkgapp "github.com/haierkeys/storyboard-studio-service/pkg/app"

	"github.com/bytedance/sonic"
	"golang.org/x/mod/semver"
)

const (
	// ServiceVersionURL 最新发布版本徽章
	ServiceVersionURL = "https://img.shields.io/github/v/release/haierkeys/storyboard-studio-service.json"
	// ServiceReleaseURL 发布页地址前缀
	ServiceReleaseURL = "https://github.com/haierkeys/storyboard-studio-service/releases/tag/"
)

type shieldsJSON struct {
	Message string `json:"message"`
}

// CheckVersionTask 定期检查是否有新的服务端发布版本
type CheckVersionTask struct {
	app *app.App
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &CheckVersionTask{app: appContainer}, nil
	})
}

func (t *CheckVersionTask) Name() string {
	return "check_version"
}

func (t *CheckVersionTask) LoopInterval() time.Duration {
	return 30 * time.Minute
}

func (t *CheckVersionTask) IsStartupRun() bool {
	return true
}

func (t *CheckVersionTask) Run(ctx context.Context) error {
	latest, err := t.fetchVersion(ctx, ServiceVersionURL)
	if err != nil {
		return err
	}

	current := t.app.Version().Version
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	info := pkgapp.CheckVersionInfo{
		VersionIsNew:   semver.Compare(latest, current) > 0,
		VersionNewName: strings.TrimPrefix(latest, "v"),
		VersionNewLink: ServiceReleaseURL + latest,
	}
	t.app.SetCheckVersionInfo(info)
	return nil
}

func (t *CheckVersionTask) fetchVersion(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var sj shieldsJSON
	if err := sonic.Unmarshal(body, &sj); err != nil {
		return "", err
	}
	return sj.Message, nil
}
