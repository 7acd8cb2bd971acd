package domain

// Business validation constants
const (
	MinGuestCount = 1
	MaxGuestCount = 20

	MaxSpecialRequestsLength = 500

	MinPlatformFeePercent = 0
	MaxPlatformFeePercent = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultCurrency used for all payments when config does not override it
const DefaultCurrency = "eur"

// ActiveStatuses список статусов, при которых бронирование занимает слот.
// Используется фильтрацией доступности: отменённые слоты свободны.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
