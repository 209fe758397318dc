package middleware

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"healthmate/internal/rpc"
)

const staleAfter = 3 * time.Minute

// ForwardedFor is the metadata key a trusted proxy uses to pass on the
// address of the client it is relaying for.
const ForwardedFor = "x-forwarded-for"

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client host.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	proxies map[string]bool
	r       rate.Limit
	burst   int
}

// NewRateLimiter allows rps requests per second per peer with the given
// burst. Idle peers are forgotten until ctx is cancelled.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		proxies: make(map[string]bool),
		r:       rate.Limit(rps),
		burst:   burst,
	}
	go rl.sweep(ctx, time.Minute)
	return rl
}

// TrustProxy lets peers at host speak for other clients through the
// ForwardedFor metadata key. Loopback peers are always trusted.
func (rl *RateLimiter) TrustProxy(host string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.proxies[host] = true
}

func (rl *RateLimiter) trusted(host string) bool {
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.proxies[host]
}

// clientKey is the peer host, or the forwarded client host when the peer
// is a trusted proxy. Ports are dropped so reconnecting does not reset a
// bucket.
func (rl *RateLimiter) clientKey(ctx context.Context) string {
	host := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		host = hostOnly(p.Addr.String())
	}
	if !rl.trusted(host) {
		return host
	}
	md, _ := metadata.FromIncomingContext(ctx)
	if vals := md.Get(ForwardedFor); len(vals) > 0 {
		first, _, _ := strings.Cut(vals[0], ",")
		if fwd := hostOnly(strings.TrimSpace(first)); fwd != "" {
			return fwd
		}
	}
	return host
}

func hostOnly(addr string) string {
	if h, _, err := net.SplitHostPort(addr); err == nil {
		return h
	}
	return addr
}

func (rl *RateLimiter) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			rl.forget(now)
		}
	}
}

func (rl *RateLimiter) forget(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for addr, c := range rl.clients {
		if now.Sub(c.seen) > staleAfter {
			delete(rl.clients, addr)
		}
	}
}

func (rl *RateLimiter) get(addr string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[addr]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[addr] = &client{lim: l, seen: time.Now()}
	return l
}

// credential guessing targets
var limited = map[string]bool{
	rpc.MethodLogin:  true,
	rpc.MethodSignup: true,
}

func RateLimit(rl *RateLimiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !limited[info.FullMethod] {
			return next(ctx, req)
		}
		if !rl.get(rl.clientKey(ctx)).Allow() {
			return nil, rpc.Status(codes.ResourceExhausted, "too many requests", "RATE_LIMITED")
		}
		return next(ctx, req)
	}
}
