package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS libera apenas origens listadas em ALLOW_ORIGINS. Aceita duas
// formas de entrada:
//   - origem exata, com esquema (ex.: https://painel.gestaopredial.com.br)
//   - wildcard de subdomínio quando começar com *. (ex.: *.gestaopredial.com.br)
//
// O wildcard casa subdomínios do domínio informado, nunca o domínio raiz.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	exact := make(map[string]struct{}, len(allowedOrigins))
	var sufixos []string // mantidos com o ponto inicial (".dominio")

	for _, entrada := range allowedOrigins {
		origem := strings.TrimSpace(entrada)
		switch {
		case origem == "":
		case strings.HasPrefix(origem, "*."):
			sufixos = append(sufixos, strings.TrimPrefix(origem, "*"))
		default:
			exact[origem] = struct{}{}
		}
	}

	permitida := func(origin string) bool {
		if origin == "" {
			return false
		}
		if _, ok := exact[origin]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(u.Hostname())
		for _, sufixo := range sufixos {
			sufixo = strings.ToLower(sufixo)
			if !strings.HasSuffix(host, sufixo) {
				continue
			}
			// host igual à raiz do sufixo não é subdomínio
			if host == strings.TrimPrefix(sufixo, ".") {
				continue
			}
			return true
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if permitida(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
				h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
