package tickets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	codeByteLength = 32
	qrImageSize    = 256
)

// Payload - содержимое QR-кода билета. Сканер на входе
// декодирует JSON и сверяет код билета с базой.
type Payload struct {
	BookingID  string `json:"bookingId"`
	TicketCode string `json:"qrCode"`
	VenueID    string `json:"nightclubId"`
	Date       string `json:"date"`
}

// NewCode генерирует уникальный код билета: 32 случайных байта
// в base64url без паддинга.
func NewCode() (string, error) {
	buf := make([]byte, codeByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCodeGeneration, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewPayload собирает содержимое QR-кода для подтвержденного бронирования.
func NewPayload(bookingID, ticketCode, venueID string, date time.Time) Payload {
	return Payload{
		BookingID:  bookingID,
		TicketCode: ticketCode,
		VenueID:    venueID,
		Date:       date.Format("2006-01-02"),
	}
}

// Encode сериализует payload в JSON-строку, которая кодируется в QR.
func (p Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return string(data), nil
}

// RenderPNG кодирует payload в PNG-изображение QR-кода.
func RenderPNG(p Payload) ([]byte, error) {
	content, err := p.Encode()
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return png, nil
}

// RenderDataURL возвращает QR-код как data URL для встраивания в ответ API.
func RenderDataURL(p Payload) (string, error) {
	png, err := RenderPNG(p)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
