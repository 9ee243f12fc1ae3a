package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter guarda um token bucket por chave (IP ou usuário). Entradas
// paradas há mais de maxIdade são descartadas na próxima inserção.
type RateLimiter struct {
	limite   rate.Limit
	burst    int
	maxIdade time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter *rate.Limiter
	usadoEm time.Time
}

// NewRateLimiter cria um limitador com reqPerSec requisições por
// segundo e a rajada informada.
func NewRateLimiter(reqPerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		limite:   rate.Limit(reqPerSec),
		burst:    burst,
		maxIdade: 10 * time.Minute,
		buckets:  make(map[string]*bucket),
	}
}

func (rl *RateLimiter) bucketPara(chave string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[chave]; ok {
		b.usadoEm = time.Now()
		return b.limiter
	}

	// limpeza preguiçosa: só ao criar buckets novos
	for k, b := range rl.buckets {
		if time.Since(b.usadoEm) > rl.maxIdade {
			delete(rl.buckets, k)
		}
	}

	lim := rate.NewLimiter(rl.limite, rl.burst)
	rl.buckets[chave] = &bucket{limiter: lim, usadoEm: time.Now()}
	return lim
}

// LimitByKey aplica o limite usando a chave extraída da requisição.
// Quando keyFunc não produz chave, a requisição passa sem limite.
func (rl *RateLimiter) LimitByKey(next http.Handler, keyFunc func(*http.Request) (string, bool)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		chave, ok := keyFunc(req)
		if !ok || chave == "" {
			next.ServeHTTP(w, req)
			return
		}

		if !rl.bucketPara(chave).Allow() {
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": nil,
				"error": map[string]any{
					"code":    "RATE_LIMIT",
					"message": "Limite de requisições excedido",
				},
			})
			return
		}

		next.ServeHTTP(w, req)
	})
}

// IPRateLimit limita pelo IP de origem, honrando cabeçalhos de proxy.
func IPRateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return limiter.LimitByKey(next, func(r *http.Request) (string, bool) {
			return remoteIP(r), true
		})
	}
}

// UserRateLimit limita pelo subject autenticado; requisições anônimas
// ficam a cargo do limite por IP.
func UserRateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return limiter.LimitByKey(next, func(r *http.Request) (string, bool) {
			subject := GetSubject(r.Context())
			return subject, subject != ""
		})
	}
}

func remoteIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if encadeado := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); encadeado != "" {
		return strings.TrimSpace(strings.SplitN(encadeado, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
