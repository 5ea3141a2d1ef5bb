package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL — срок жизни share-токена, если клиент не передал expiresIn.
const DefaultTTL = 30 * 24 * time.Hour

var (
	// ErrShareTokenInvalid — любой отказ проверки: плохая подпись, мусор,
	// истёкший срок. Наружу всё это одна и та же «ссылка больше не работает».
	ErrShareTokenInvalid = errors.New("share token invalid")

	// ErrInvalidExpiry возвращается при нераспознаваемом expiresIn.
	ErrInvalidExpiry = errors.New("invalid expiry")
)

// shareClaims — полезная нагрузка share-токена. Никакого user id:
// токен — capability на конкретный чат, кто держит — тот и читает.
type shareClaims struct {
	ChatID int64 `json:"chat_id"`
	jwt.RegisteredClaims
}

// ShareService выпускает и проверяет подписанные share-токены на чтение чата.
// Секрет передаётся явно при конструировании; пустой секрет — ошибка старта
// процесса, а не запроса.
type ShareService struct {
	secret []byte
}

// NewShareService создаёт сервис с процессным секретом подписи.
func NewShareService(secret string) *ShareService {
	return &ShareService{secret: []byte(secret)}
}

// Issue подписывает {chatID, exp=now+ttl} и возвращает компактный JWT.
func (s *ShareService) Issue(chatID int64, ttl time.Duration) (string, error) {
	claims := shareClaims{
		ChatID: chatID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify проверяет подпись и срок и возвращает chatID.
// Все отказы схлопываются в ErrShareTokenInvalid.
func (s *ShareService) Verify(tokenStr string) (int64, error) {
	var claims shareClaims
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid || claims.ChatID == 0 {
		return 0, ErrShareTokenInvalid
	}
	return claims.ChatID, nil
}

// ParseTTL разбирает клиентский expiresIn: пусто — DefaultTTL, иначе
// Go-синтаксис длительности ("72h") либо форма в днях ("30d").
func ParseTTL(expiresIn string) (time.Duration, error) {
	if expiresIn == "" {
		return DefaultTTL, nil
	}
	if strings.HasSuffix(expiresIn, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(expiresIn, "d"))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiresIn)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(expiresIn)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, expiresIn)
	}
	return d, nil
}
