package create_booking

import (
	"time"

	"github.com/nocta/NCB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          string           // ID пользователя (из заголовка X-User-ID)
	TableID         string           // ID стола
	Date            time.Time        // Дата бронирования (без времени)
	Time            types.TimeString // Время слота (например, "22:00")
	GuestCount      int              // Количество гостей
	SpecialRequests *string          // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         string           // ID созданного бронирования
	UserID     string           // ID пользователя
	TableID    string           // ID стола
	VenueID    string           // ID заведения
	Date       time.Time        // Дата бронирования
	Time       types.TimeString // Время слота
	GuestCount int              // Количество гостей

	// Цена зафиксирована в момент создания
	TablePrice  float64
	PlatformFee float64
	TotalAmount float64

	Status        string // Статус бронирования
	PaymentStatus string // Статус оплаты

	// ClientSecret платежного намерения для завершения оплаты на клиенте
	ClientSecret string

	SpecialRequests *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
