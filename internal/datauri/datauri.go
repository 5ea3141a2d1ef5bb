package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedBlob возвращается для любого нераспознаваемого data-URI.
var ErrMalformedBlob = errors.New("malformed blob input")

const prefix = "data:"

// Decode разбирает строку вида "data:<mime>;base64,<payload>" и возвращает
// mime-тип и раскодированные байты. Никаких побочных эффектов.
func Decode(s string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(s, prefix) {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrMalformedBlob)
	}
	rest := s[len(prefix):]

	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrMalformedBlob)
	}
	header := rest[:comma]
	payload := rest[comma+1:]

	// mime — сегмент до первой ';' (после неё идут параметры вроде base64)
	mime = header
	if i := strings.IndexByte(header, ';'); i >= 0 {
		mime = header[:i]
	}
	if mime == "" || !strings.Contains(mime, "/") {
		return "", nil, fmt.Errorf("%w: unrecognizable mime type", ErrMalformedBlob)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid base64 payload", ErrMalformedBlob)
	}
	return mime, data, nil
}

// Encode собирает data-URI из mime-типа и байтов. Обратная операция к Decode.
func Encode(mime string, data []byte) string {
	return prefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
