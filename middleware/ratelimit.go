package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按客户端 IP 记录窗口内的请求时间
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	store  map[string][]time.Time
}

func newSlidingWindow(window time.Duration) *slidingWindow {
	return &slidingWindow{window: window, store: make(map[string][]time.Time)}
}

// allow 记录一次请求，窗口内已达 max 次时返回 false
func (w *slidingWindow) allow(key string, max int, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := prune(w.store[key], now.Add(-w.window))
	if len(ts) >= max {
		w.store[key] = ts
		return false
	}
	w.store[key] = append(ts, now)
	return true
}

// sweep 清理过期数据
func (w *slidingWindow) sweep(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := now.Add(-w.window)
	for key, ts := range w.store {
		ts = prune(ts, cutoff)
		if len(ts) == 0 {
			delete(w.store, key)
		} else {
			w.store[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// WriteRateLimit 写接口限流中间件
// 每 IP 在 window 内最多 maxRequests 次写请求，超过则返回 429。
// ctx 结束后停止后台清理。
func WriteRateLimit(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	w := newSlidingWindow(window)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				w.sweep(now)
			}
		}
	}()

	return func(c *gin.Context) {
		if !w.allow(c.ClientIP(), maxRequests, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
