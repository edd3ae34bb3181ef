package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// LimiterIface 限流器接口
type LimiterIface interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) LimiterIface
}

type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 桶的标识（URI 前缀）
	Key string
	// FillInterval 放令牌的间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// MethodLimiter keys buckets by request URI prefix
// MethodLimiter 以请求 URI 前缀作为桶的 key
type MethodLimiter struct {
	*Limiter
}

func NewMethodLimiter() LimiterIface {
	return MethodLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

func (l MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	index := strings.Index(uri, "?")
	if index == -1 {
		return uri
	}
	return uri[:index]
}

func (l MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.limiterBuckets {
		if strings.HasPrefix(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) LimiterIface {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
