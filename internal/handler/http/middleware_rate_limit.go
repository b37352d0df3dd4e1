// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

// tokenBucket is the refill state kept per client IP.
type tokenBucket struct {
	// tokens is the spendable budget, refilled continuously and capped
	// at the limiter's maxTokens.
	tokens float64

	// lastRefill is the instant tokens was last brought up to date.
	lastRefill time.Time
}

// ipRateLimiter is a token-bucket rate limiter keyed by client IP.
//
// Each IP owns an independent bucket holding at most maxTokens tokens.
// A request spends one token; tokens refill continuously at refillPerSec.
// An IP seen for the first time starts with a full bucket, so bursts up
// to the bucket size are always admitted before throttling begins.
type ipRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket

	maxTokens    float64
	refillPerSec float64
}

// newIPRateLimiter sizes a limiter from a requests-per-minute budget.
// The bucket holds max(10, perMinute) tokens and refills at
// max(0.2, perMinute/60) tokens per second, so even a tiny budget keeps
// some burst headroom and never refills slower than one token per five
// seconds.
func newIPRateLimiter(perMinute int) *ipRateLimiter {
	if perMinute <= 0 {
		perMinute = config.DefaultRateLimitPerMinute
	}

	return &ipRateLimiter{
		buckets:      make(map[string]*tokenBucket),
		maxTokens:    math.Max(10, float64(perMinute)),
		refillPerSec: math.Max(0.2, float64(perMinute)/60.0),
	}
}

// Allow spends one token from ip's bucket and reports whether the
// request may proceed. A rejected request still advances the bucket's
// refill clock.
func (l *ipRateLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[ip]
	if !ok {
		l.buckets[ip] = &tokenBucket{tokens: l.maxTokens - 1, lastRefill: now}
		return true
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens = math.Min(l.maxTokens, bucket.tokens+elapsed*l.refillPerSec)
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}

	bucket.tokens--
	return true
}

// TrackedIPs returns the number of distinct client IPs seen so far.
func (l *ipRateLimiter) TrackedIPs() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !h.limiter.Allow(ip) {
			log := logger.FromRequest(r)
			log.Warn().Str("ip", ip).Msg("rate limit exceeded")

			h.errors.Add(1)
			utils.WriteJSONError(w, models.ErrCodeRateLimited, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. X-Forwarded-For is not
// consulted: the server fronts no proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
