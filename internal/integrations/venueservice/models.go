package venueservice

// Table модель стола из VenueService.
// Для booking-сервиса стол доступен только на чтение: управление столами
// (создание, цены, флаг доступности) остается за админкой клуба.
type Table struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Price     float64 `json:"price"`
	Date      string  `json:"date"` // "2026-09-12"
	Time      string  `json:"time"` // "22:00"
	Available bool    `json:"available"`
	VenueID   string  `json:"nightclubId"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
