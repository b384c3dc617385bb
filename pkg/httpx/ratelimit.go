package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lumonhq/persons/pkg/slogx"
)

// RateLimitConfig defines a token-bucket rate limit.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles for different endpoint sensitivities. Each can be overridden
// with RATELIMIT_{NAME}_REQUESTS, RATELIMIT_{NAME}_WINDOW_SEC and
// RATELIMIT_{NAME}_BURST environment variables.
var (
	// StrictLimit protects credential endpoints against brute force.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers authenticated write operations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 30}

	// LenientLimit covers authenticated reads.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 120}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_{prefix}_* environment variables
// onto defaults. Invalid or non-positive values are ignored.
func ParseRateLimitFromEnv(prefix string, defaults RateLimitConfig) RateLimitConfig {
	cfg := defaults

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.RequestsPerWindow = n
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Window = time.Duration(n) * time.Second
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Burst = n
		}
	}

	return cfg
}

// KeyExtractor derives the bucket key for a request.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys by client IP, honouring X-Forwarded-For and
// X-Real-IP for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UsernameKeyExtractor keys by the authenticated username, empty when the
// request carries no identity.
func UsernameKeyExtractor(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.Username
	}
	return ""
}

// CompositeKeyExtractor joins non-empty keys from several extractors.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// limiterSet holds one token bucket per key.
type limiterSet struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (ls *limiterSet) get(key string) *rate.Limiter {
	if lim, ok := ls.limiters.Load(key); ok {
		return lim.(*rate.Limiter)
	}
	lim, _ := ls.limiters.LoadOrStore(key, rate.NewLimiter(ls.rate, ls.burst))
	ls.maybeCleanup()
	return lim.(*rate.Limiter)
}

// maybeCleanup drops idle buckets. A bucket with a full token balance has
// not been touched for at least one window.
func (ls *limiterSet) maybeCleanup() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if time.Since(ls.lastCleanup) < 5*time.Minute {
		return
	}
	ls.lastCleanup = time.Now()

	ls.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(ls.burst) {
			ls.limiters.Delete(key)
		}
		return true
	})
}

// ErrRateLimited maps to 429 in the fault chain.
type rateLimitedError struct{ retryAfter int }

func (e *rateLimitedError) Error() string {
	return "too many requests, retry later"
}

// RateLimit throttles requests grouped by keyExtractor, answering rejected
// requests with a fault envelope and Retry-After headers.
func RateLimit(config RateLimitConfig, keyExtractor KeyExtractor, faults *Mapper) Middleware {
	perSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	ls := &limiterSet{
		rate:        rate.Limit(perSecond),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyExtractor(r)
			if key == "" {
				// No key, no bucket. Allow rather than collapse all
				// anonymous traffic into one bucket.
				next.ServeHTTP(w, r)
				return
			}

			lim := ls.get(key)
			if lim.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.Reserve()
			delay := res.Delay()
			res.Cancel()
			retryAfter := max(int(delay.Seconds()), 1)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", config.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)

			faults.WriteError(w, r, &rateLimitedError{retryAfter: retryAfter})
		})
	}
}

// IsRateLimited reports whether err came from the rate limiter. Wire it
// into a fault rule with status 429.
func IsRateLimited(err error) bool {
	_, ok := err.(*rateLimitedError)
	return ok
}

// RateLimitByIP throttles by client IP.
func RateLimitByIP(config RateLimitConfig, faults *Mapper) Middleware {
	return RateLimit(config, IPKeyExtractor, faults)
}

// RateLimitByUser throttles by authenticated username, falling back to IP
// for anonymous callers.
func RateLimitByUser(config RateLimitConfig, faults *Mapper) Middleware {
	return RateLimit(config, CompositeKeyExtractor(":", UsernameKeyExtractor, IPKeyExtractor), faults)
}
