package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"plantstore-be/internal/utils"

	"golang.org/x/time/rate"
)

// Rate limit tiers
const (
	// Login attempts
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Order placement and everything else
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Authenticated admin console traffic
	limitAdmin = rate.Limit(30)
	burstAdmin = 60
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries to keep the map bounded.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

// RateLimitMiddleware applies per-identity token buckets.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		var identity string
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// Separate quota per tier so login attempts never starve browsing.
		key := fmt.Sprintf("%s:%s", identity, tier)

		limiter := getVisitor(key, limit, burst)
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.URL.Path == "/auth/login" {
		return limitStrict, burstStrict, "strict"
	}

	if _, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return limitAdmin, burstAdmin, "admin"
	}

	return limitGeneral, burstGeneral, "general"
}
