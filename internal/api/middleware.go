package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nishant152030/Project-manager-2/internal/auth"
	"github.com/nishant152030/Project-manager-2/internal/logging"
)

const (
	// RequestIDHeader carries the request correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "projectmgr_request_id"
	userIDKey    = "projectmgr_user_id"
)

// RequestID assigns each request an ID, reusing a well-formed incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog writes one structured line per request.
func AccessLog(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		} else if status >= http.StatusBadRequest {
			ev = log.Warn()
		}

		ev = ev.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", GetRequestID(c)).
			Str("client_ip", c.ClientIP())
		if uid, ok := GetUserID(c); ok {
			ev = ev.Int64("user_id", uid)
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Msg("request")
	}
}

// CORS allows the configured browser origins. Preflight requests are answered
// directly. A "*" entry admits any origin without credentials; only origins
// listed by name may send cookies or auth headers cross-site.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		_, ok := allowed[origin]
		if !ok && !allowAll {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		if ok {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+RequestIDHeader)
			h.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		h.Set("Access-Control-Expose-Headers", RequestIDHeader)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user ID for handlers.
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortMessage(c, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			_ = c.Error(err)
			abortMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		uid, err := claims.UserID()
		if err != nil {
			_ = c.Error(err)
			abortMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// GetUserID returns the user ID stored by RequireAuth.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int64)
	return uid, ok
}

// clientLimiter is a token bucket for one client IP.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out a token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time

	lastPrune time.Time
}

// NewIPRateLimiter allows each IP limit events per second with the given burst.
// Buckets idle for longer than idle are forgotten.
func NewIPRateLimiter(limit rate.Limit, burst int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// Allow reports whether ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.clients[ip]
	if !ok {
		if now.Sub(l.lastPrune) > l.idle {
			l.pruneLocked(now)
			l.lastPrune = now
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// pruneLocked drops idle buckets. Caller holds l.mu.
func (l *IPRateLimiter) pruneLocked(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.idle {
			delete(l.clients, ip)
		}
	}
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects requests over the limit with 429.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			abortMessage(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
