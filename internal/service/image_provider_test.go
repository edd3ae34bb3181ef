package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haierkeys/storyboard-studio-service/pkg/imagequeue"

	"github.com/pkg/errors"
)

func TestPlaceholderProviderDeterministicURL(t *testing.T) {
	p := NewPlaceholderProvider(&GeneratorConfig{PlaceholderBaseURL: "https://placehold.co", PromptMaxLen: 10})

	req := imagequeue.Request{Prompt: "a very long prompt that exceeds the limit", Width: 768, Height: 432}

	url1, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	url2, _ := p.Generate(context.Background(), req)
	if url1 != url2 {
		t.Errorf("placeholder URLs should be deterministic: %s vs %s", url1, url2)
	}

	if !strings.HasPrefix(url1, "https://placehold.co/768x432?text=") {
		t.Errorf("unexpected url shape: %s", url1)
	}
	// 提示词被截断到上限后再编码
	if !strings.Contains(url1, "a+very+lon") || strings.Contains(url1, "exceeds") {
		t.Errorf("prompt was not truncated to 10 chars: %s", url1)
	}
}

func TestPlaceholderProviderDefaults(t *testing.T) {
	p := NewPlaceholderProvider(&GeneratorConfig{})
	if p.BaseURL != "https://placehold.co" || p.PromptMaxLen != 80 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

// countingProvider 统计调用次数并按计划失败
type countingProvider struct {
	calls    int
	failures int // 前 failures 次调用返回错误
	url      string
}

func (p *countingProvider) Generate(ctx context.Context, req imagequeue.Request) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errors.New("upstream unavailable")
	}
	return p.url, nil
}

func TestFallbackProviderPrimarySucceeds(t *testing.T) {
	primary := &countingProvider{url: "https://img.real/1"}
	placeholder := &countingProvider{url: "https://img.placeholder/1"}
	p := NewFallbackProvider(primary, placeholder, nil)

	url, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://img.real/1" {
		t.Errorf("expected primary url, got %s", url)
	}
	if primary.calls != 1 || placeholder.calls != 0 {
		t.Errorf("unexpected call counts: primary=%d placeholder=%d", primary.calls, placeholder.calls)
	}
}

func TestFallbackProviderRetriesOnceThenSucceeds(t *testing.T) {
	primary := &countingProvider{url: "https://img.real/2", failures: 1}
	placeholder := &countingProvider{url: "https://img.placeholder/2"}
	p := NewFallbackProvider(primary, placeholder, nil)

	url, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://img.real/2" {
		t.Errorf("retry should have recovered the primary url, got %s", url)
	}
	if primary.calls != 2 || placeholder.calls != 0 {
		t.Errorf("expected exactly one retry: primary=%d placeholder=%d", primary.calls, placeholder.calls)
	}
}

func TestFallbackProviderFallsBackAfterRetry(t *testing.T) {
	primary := &countingProvider{failures: 99}
	placeholder := &countingProvider{url: "https://img.placeholder/3"}
	p := NewFallbackProvider(primary, placeholder, nil)

	url, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("fallback should never fail: %v", err)
	}
	if url != "https://img.placeholder/3" {
		t.Errorf("expected placeholder url, got %s", url)
	}
	if primary.calls != 2 {
		t.Errorf("primary should be tried exactly twice, got %d", primary.calls)
	}
}

func TestFallbackProviderNilPrimary(t *testing.T) {
	placeholder := &countingProvider{url: "https://img.placeholder/4"}
	p := NewFallbackProvider(nil, placeholder, nil)

	url, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://img.placeholder/4" {
		t.Errorf("expected placeholder url, got %s", url)
	}
}

func TestHTTPProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://img.real/generated"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(&GeneratorConfig{ProviderURL: srv.URL, ProviderTimeoutSec: 5})

	url, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "harbor at dusk", Width: 768, Height: 432})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://img.real/generated" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestHTTPProviderBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(&GeneratorConfig{ProviderURL: srv.URL})

	if _, err := p.Generate(context.Background(), imagequeue.Request{Prompt: "x"}); err == nil {
		t.Error("expected error for non-200 response")
	}
}
