package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/haierkeys/storyboard-studio-service/pkg/imagequeue"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PlaceholderProvider resolves every request to a deterministic placeholder
// URL derived from a truncated, percent-encoded prefix of the prompt
// PlaceholderProvider 将每条请求解析为确定性的占位图 URL，
// 由提示词截断前缀经百分号编码得到
type PlaceholderProvider struct {
	BaseURL      string
	PromptMaxLen int
}

// NewPlaceholderProvider 创建占位图提供方
func NewPlaceholderProvider(cfg *GeneratorConfig) *PlaceholderProvider {
	base := cfg.PlaceholderBaseURL
	if base == "" {
		base = "https://placehold.co"
	}
	maxLen := cfg.PromptMaxLen
	if maxLen <= 0 {
		maxLen = 80
	}
	return &PlaceholderProvider{BaseURL: base, PromptMaxLen: maxLen}
}

// Generate 生成占位图 URL，永不失败
func (p *PlaceholderProvider) Generate(ctx context.Context, req imagequeue.Request) (string, error) {
	prompt := req.Prompt
	if len(prompt) > p.PromptMaxLen {
		prompt = prompt[:p.PromptMaxLen]
	}
	return fmt.Sprintf("%s/%dx%d?text=%s",
		strings.TrimRight(p.BaseURL, "/"), req.Width, req.Height, url.QueryEscape(prompt)), nil
}

// HTTPProvider 真实图像服务集成：提示词与目标尺寸换图片 URL
type HTTPProvider struct {
	endpoint string
	client   *http.Client
}

// NewHTTPProvider 创建 HTTP 图像提供方
func NewHTTPProvider(cfg *GeneratorConfig) *HTTPProvider {
	timeout := time.Duration(cfg.ProviderTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPProvider{
		endpoint: cfg.ProviderURL,
		client:   &http.Client{Timeout: timeout},
	}
}

type providerRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type providerResponse struct {
	URL string `json:"url"`
}

// Generate 调用外部图像服务
func (p *HTTPProvider) Generate(ctx context.Context, req imagequeue.Request) (string, error) {
	body, err := sonic.Marshal(providerRequest{Prompt: req.Prompt, Width: req.Width, Height: req.Height})
	if err != nil {
		return "", errors.Wrap(err, "image provider")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", errors.Wrap(err, "image provider")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "image provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("image provider: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, "image provider")
	}

	var out providerResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return "", errors.Wrap(err, "image provider")
	}
	if out.URL == "" {
		return "", errors.New("image provider: empty url in response")
	}
	return out.URL, nil
}

// FallbackProvider tries the primary provider with a single retry and falls
// back to the placeholder on any transport error, so results never fail
// FallbackProvider 先尝试主提供方并重试一次，任何传输错误都回落到占位图，
// 因此结果永不失败
type FallbackProvider struct {
	primary     imagequeue.Provider
	placeholder imagequeue.Provider
	logger      *zap.Logger
}

// NewFallbackProvider 组合主提供方与占位图回落
func NewFallbackProvider(primary, placeholder imagequeue.Provider, logger *zap.Logger) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{primary: primary, placeholder: placeholder, logger: logger}
}

// Generate 主提供方失败重试一次后回落占位图
func (p *FallbackProvider) Generate(ctx context.Context, req imagequeue.Request) (string, error) {
	if p.primary == nil {
		return p.placeholder.Generate(ctx, req)
	}

	url, err := p.primary.Generate(ctx, req)
	if err == nil {
		return url, nil
	}

	url, retryErr := p.primary.Generate(ctx, req)
	if retryErr == nil {
		return url, nil
	}

	p.logger.Warn("image provider failed, falling back to placeholder",
		zap.Error(err), zap.NamedError("retry", retryErr))
	return p.placeholder.Generate(ctx, req)
}
