package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// WriteRateLimit 写接口限流中间件
// 每 IP 在 window 内最多 maxWrites 次 POST/PUT/PATCH/DELETE，超过则返回 429；读请求不受限
func WriteRateLimit(maxWrites int, window time.Duration) gin.HandlerFunc {
	limiter := newSlidingWindow(maxWrites, window)
	go limiter.cleanupLoop(time.Minute)

	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "操作过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

type slidingWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	store  map[string][]time.Time
}

func newSlidingWindow(max int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		max:    max,
		window: window,
		store:  make(map[string][]time.Time),
	}
}

// allow 记录一次请求并返回是否放行
func (s *slidingWindow) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := prune(s.store[key], now.Add(-s.window))
	if len(ts) >= s.max {
		s.store[key] = ts
		return false
	}
	s.store[key] = append(ts, now)
	return true
}

// cleanupLoop 定期清理过期数据
func (s *slidingWindow) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup(time.Now())
	}
}

func (s *slidingWindow) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.window)
	for ip, ts := range s.store {
		ts = prune(ts, cutoff)
		if len(ts) == 0 {
			delete(s.store, ip)
		} else {
			s.store[ip] = ts
		}
	}
}

// prune 移除窗口外的记录
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
