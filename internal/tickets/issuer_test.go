package tickets

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	code, err := NewCode()
	require.NoError(t, err)

	// 32 байта в base64url без паддинга = 43 символа
	assert.Len(t, code, 43)
	assert.NotContains(t, code, "=")
	assert.NotContains(t, code, "+")
	assert.NotContains(t, code, "/")
}

func TestNewCodeUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := NewCode()
		require.NoError(t, err)

		_, dup := seen[code]
		assert.False(t, dup, "duplicate ticket code generated")
		seen[code] = struct{}{}
	}
}

func TestPayloadEncode(t *testing.T) {
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	p := NewPayload("booking-1", "code-abc", "venue-9", date)

	encoded, err := p.Encode()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))

	assert.Equal(t, "booking-1", decoded["bookingId"])
	assert.Equal(t, "code-abc", decoded["qrCode"])
	assert.Equal(t, "venue-9", decoded["nightclubId"])
	assert.Equal(t, "2025-06-14", decoded["date"])
}

func TestRenderPNG(t *testing.T) {
	p := NewPayload("booking-1", "code-abc", "venue-9", time.Now())

	png, err := RenderPNG(p)
	require.NoError(t, err)

	// PNG-сигнатура
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderDataURL(t *testing.T) {
	p := NewPayload("booking-1", "code-abc", "venue-9", time.Now())

	url, err := RenderDataURL(p)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.Greater(t, len(url), len("data:image/png;base64,"))
}
