package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName — имя cookie с первичным JWT.
const AuthCookieName = "auth_token"

// authTokenTTL — срок жизни первичного токена.
const authTokenTTL = 24 * time.Hour

type ctxKey int

const userIDKey ctxKey = iota

type authClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// BuildAuthToken подписывает первичный JWT для пользователя.
func BuildAuthToken(userID int64, secret string) (string, error) {
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(authTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SetLoginCookie выпускает JWT и ставит auth cookie в ответ.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	tok, err := BuildAuthToken(userID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(authTokenTTL / time.Second),
	})
	return nil
}

// WithAuth проверяет первичный креденшл (cookie auth_token либо
// Authorization: Bearer) и кладёт user_id в контекст запроса.
// Невалидный или отсутствующий токен оставляет запрос анонимным —
// решение об отказе принимает хендлер (403-прецедент).
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if c, err := r.Cookie(AuthCookieName); err == nil {
				raw = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw != "" {
				if uid, err := parseAuthToken(raw, secret); err == nil && uid != 0 {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, uid))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseAuthToken(raw, secret string) (int64, error) {
	var claims authClaims
	t, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !t.Valid {
		return 0, fmt.Errorf("invalid auth token")
	}
	return claims.UserID, nil
}

// GetUserIDFromContext достаёт user_id, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDKey).(int64)
	return uid, ok
}
