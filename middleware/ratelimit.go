package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// WriteRateLimit 写接口限流中间件
// 每个用户（未认证时按 IP）在 window 内最多 maxAttempts 次写操作，超过则返回 429。
// GET/HEAD/OPTIONS 请求不计数
func WriteRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu    sync.Mutex
		store = make(map[string]*entry)
	)
	prune := func(e *entry, cutoff time.Time) {
		kept := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		e.timestamps = kept
	}
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for key, e := range store {
				prune(e, cutoff)
				if len(e.timestamps) == 0 {
					delete(store, key)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := GetCurrentUserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		now := time.Now()

		mu.Lock()
		e, ok := store[key]
		if !ok {
			e = &entry{}
			store[key] = e
		}
		prune(e, now.Add(-window))
		if len(e.timestamps) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "操作过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}
