package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// pruneBefore 丢弃窗口之外的时间戳，复用底层数组
func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	kept := timestamps[:0]
	for _, t := range timestamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// AuthRateLimit 认证接口限流中间件
// 注册、登录和密码重置共用：每 IP 在 window 内最多 maxAttempts 次，超过返回 429
func AuthRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		attempts = make(map[string][]time.Time)
	)
	// 定期清理不再活跃的 IP，防止 map 无限增长
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, ts := range attempts {
				kept := pruneBefore(ts, cutoff)
				if len(kept) == 0 {
					delete(attempts, ip)
				} else {
					attempts[ip] = kept
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		kept := pruneBefore(attempts[ip], now.Add(-window))
		if len(kept) >= maxAttempts {
			attempts[ip] = kept
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "操作过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		attempts[ip] = append(kept, now)
		mu.Unlock()

		c.Next()
	}
}
