package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address. Buckets idle for
// longer than idleTTL are dropped by Cleanup.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
	trusted  []*net.IPNet
}

func NewIPRateLimiter(perMinute float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// WithClock swaps the time source, for tests.
func (l *IPRateLimiter) WithClock(now func() time.Time) *IPRateLimiter {
	l.now = now
	return l
}

// WithTrustedProxies makes the limiter key on X-Forwarded-For, but only for
// requests whose peer address is one of the given proxies.
func (l *IPRateLimiter) WithTrustedProxies(proxies []*net.IPNet) *IPRateLimiter {
	l.trusted = proxies
	return l
}

// ParseTrustedProxies accepts CIDRs and bare addresses.
func ParseTrustedProxies(entries []string) ([]*net.IPNet, error) {
	proxies := make([]*net.IPNet, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy address %q", entry)
			}

			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}

			proxies = append(proxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy range %q: %w", entry, err)
		}

		proxies = append(proxies, network)
	}

	return proxies, nil
}

// Reserve consumes a token for ip. When none is available it reports how long
// the client should wait.
func (l *IPRateLimiter) Reserve(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, 0
	}

	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)

	return false, delay
}

func (l *IPRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0

	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}

	return removed
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Cleanup(); n > 0 {
				slog.Debug("Dropped idle rate limit buckets", slog.Int("count", n))
			}
		}
	}
}

func (l *IPRateLimiter) Limit(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())
		ip := ClientIP(r, l.trusted)

		allowed, wait := l.Reserve(ip)
		if !allowed {
			seconds := max(int(wait.Round(time.Second).Seconds()), 1)

			logger.Warn("Submission rate limit exceeded", slog.String("client_ip", ip), slog.Int("retry_after", seconds))
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			response.Error(w, errors.TooManyRequestsError("Too many submissions. Please try again later."))
			return
		}

		next.ServeHTTP(w, r)
	}
}

// ClientIP returns the peer address. X-Forwarded-For is only consulted when
// the peer is a trusted proxy; the chain is then walked from the right and the
// first hop that is not itself a trusted proxy wins.
func ClientIP(r *http.Request, trusted []*net.IPNet) string {
	peer := remoteHost(r)

	if len(trusted) == 0 || !isTrusted(peer, trusted) {
		return peer
	}

	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return peer
	}

	hops := strings.Split(fwd, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if net.ParseIP(hop) == nil {
			// a forged or garbled entry; nothing left of it can be trusted
			return peer
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
	}

	return peer
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func isTrusted(addr string, trusted []*net.IPNet) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}

	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}

	return false
}
