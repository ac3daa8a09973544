package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/appointment-booking/internal/api/handlers"
	"github.com/m04kA/appointment-booking/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

// Claims содержимое токена доступа. Subject - ID пользователя.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken проверяет подпись HS256 и срок действия токена и возвращает пользователя
func ParseToken(secret []byte, raw string) (domain.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Principal{}, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Principal{}, fmt.Errorf("invalid subject %q", claims.Subject)
	}

	return domain.Principal{ID: id, Role: domain.ParseRole(claims.Role)}, nil
}

// Auth требует заголовок "Authorization: Bearer <jwt>" и кладет пользователя в контекст
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := ParseToken(key, token)
			if err != nil {
				logger.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization scheme must be Bearer")
	}
	return strings.TrimSpace(token), nil
}
