package datauri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_KnownVector(t *testing.T) {
	mime, data, err := Decode("data:text/plain;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, []byte("hello"), data)
}

// Round-trip: Decode(Encode(mime, bytes)) == (mime, bytes)
func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		mime string
		data []byte
	}{
		{"text/plain", []byte("hello")},
		{"application/json", []byte(`{"a":1}`)},
		{"application/octet-stream", []byte{0, 1, 2, 255, 254}},
		{"image/png", []byte{}},
	}
	for _, c := range cases {
		mime, data, err := Decode(Encode(c.mime, c.data))
		assert.NoError(t, err)
		assert.Equal(t, c.mime, mime)
		assert.Equal(t, c.data, data)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"data:",                         // нет разделителя payload
		"data:text/plain;base64",        // нет запятой
		"data:;base64,aGVsbG8=",         // пустой mime
		"data:notamime;base64,aGVsbG8=", // mime без '/'
		"data:text/plain;base64,*bad*",  // битый base64
		"text/plain;base64,aGVsbG8=",    // нет префикса data:
	}
	for _, c := range cases {
		_, _, err := Decode(c)
		assert.ErrorIs(t, err, ErrMalformedBlob, "input: %q", c)
	}
}

// Параметры после mime (например charset) не мешают разбору.
func TestDecode_MimeWithParams(t *testing.T) {
	mime, data, err := Decode("data:text/plain;charset=utf-8;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, []byte("hello"), data)
}
