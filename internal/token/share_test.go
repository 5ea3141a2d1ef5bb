package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShareService_IssueVerify(t *testing.T) {
	svc := NewShareService("test-secret")

	tok, err := svc.Issue(42, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok)

	chatID, err := svc.Verify(tok)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), chatID)
}

// Токен с уже истёкшим сроком всегда невалиден
func TestShareService_ExpiredToken(t *testing.T) {
	svc := NewShareService("test-secret")

	tok, err := svc.Issue(42, -time.Second)
	assert.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrShareTokenInvalid)
}

// Подпись другим секретом, мусор и пустая строка — один и тот же отказ
func TestShareService_InvalidTokens(t *testing.T) {
	svc := NewShareService("secret-A")
	other := NewShareService("secret-B")

	tok, err := other.Issue(7, time.Hour)
	assert.NoError(t, err)

	for _, bad := range []string{tok, "not-a-jwt", "", "aaa.bbb.ccc"} {
		_, err := svc.Verify(bad)
		assert.ErrorIs(t, err, ErrShareTokenInvalid, "token: %q", bad)
	}
}

func TestParseTTL(t *testing.T) {
	// пусто — дефолт 30 суток
	d, err := ParseTTL("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultTTL, d)

	// Go-длительность
	d, err = ParseTTL("72h")
	assert.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)

	// форма в днях
	d, err = ParseTTL("30d")
	assert.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, d)

	// мусор
	for _, bad := range []string{"soon", "30 days", "d", "xd"} {
		_, err = ParseTTL(bad)
		assert.ErrorIs(t, err, ErrInvalidExpiry, "input: %q", bad)
	}
}
