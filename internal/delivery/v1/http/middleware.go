package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/iggarsaudev/Api-IgLusShop/internal/domain"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
)

type ctxKey int

const (
	identityCtxKey ctxKey = iota
	tokenCtxKey
)

// WithIdentity разбирает заголовок Authorization и кладёт личность
// вызывающего в контекст запроса. Запрос без токена, как и запрос с
// неизвестным или истёкшим токеном, продолжается анонимно: отказ 401
// принимает политика авторизации, а не транспорт.
func WithIdentity(authUC usecase.AuthUC, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := authUC.ResolveCaller(r.Context(), token)
			if err != nil {
				log.Debugf("token resolution failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey, caller)
			ctx = context.WithValue(ctx, tokenCtxKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// identityFrom возвращает личность из контекста; нулевая — аноним.
func identityFrom(ctx context.Context) domain.Identity {
	if caller, ok := ctx.Value(identityCtxKey).(domain.Identity); ok {
		return caller
	}
	return domain.Identity{}
}

func tokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenCtxKey).(string); ok {
		return token
	}
	return ""
}
