// Package metric 注册服务级 Prometheus 指标
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerateTotal 故事板生成次数
	GenerateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storyboard",
		Name:      "generate_total",
		Help:      "Number of storyboard generation runs.",
	})

	// GenerateScenes 单次生成的场景数分布
	GenerateScenes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storyboard",
		Name:      "generate_scenes",
		Help:      "Scenes produced per generation run.",
		Buckets:   []float64{1, 2, 4, 8, 16, 32},
	})

	// ImageRequestsTotal 画面生成请求数，按结果分类
	ImageRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storyboard",
		Name:      "image_requests_total",
		Help:      "Image generation requests by outcome.",
	}, []string{"outcome"})

	// ImageQueueDepth 图像队列当前深度
	ImageQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storyboard",
		Name:      "image_queue_depth",
		Help:      "Pending requests in the image queue.",
	})

	// ImageDuration 单请求处理耗时
	ImageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storyboard",
		Name:      "image_duration_seconds",
		Help:      "Time spent processing one image request.",
		Buckets:   prometheus.DefBuckets,
	})

	// ExportTotal 导出次数，按格式分类
	ExportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storyboard",
		Name:      "export_total",
		Help:      "Exports by format.",
	}, []string{"format"})

	// ExportDuration 导出耗时，按格式分类
	ExportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storyboard",
		Name:      "export_duration_seconds",
		Help:      "Time spent rendering one export.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})
)
