package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name       string
		tablePrice float64
		feePercent float64
		wantFee    float64
		wantTotal  float64
	}{
		{
			name:       "standard 10 percent fee",
			tablePrice: 100.00,
			feePercent: 10,
			wantFee:    10.00,
			wantTotal:  110.00,
		},
		{
			name:       "vip table 10 percent fee",
			tablePrice: 300.00,
			feePercent: 10,
			wantFee:    30.00,
			wantTotal:  330.00,
		},
		{
			name:       "fee rounded to cents",
			tablePrice: 99.99,
			feePercent: 10,
			wantFee:    10.00,
			wantTotal:  109.99,
		},
		{
			name:       "fractional fee percent",
			tablePrice: 150.00,
			feePercent: 12.5,
			wantFee:    18.75,
			wantTotal:  168.75,
		},
		{
			name:       "zero fee percent",
			tablePrice: 80.00,
			feePercent: 0,
			wantFee:    0,
			wantTotal:  80.00,
		},
		{
			name:       "rounding half up",
			tablePrice: 33.35,
			feePercent: 10,
			wantFee:    3.34,
			wantTotal:  36.69,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePrice(tt.tablePrice, tt.feePercent)

			assert.Equal(t, tt.tablePrice, got.TablePrice)
			assert.InDelta(t, tt.wantFee, got.PlatformFee, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.TotalAmount, 1e-9)
		})
	}
}

// Повторные вызовы с одинаковыми аргументами обязаны давать один и тот же
// результат - цена фиксируется при создании бронирования и сверяется аудитом.
func TestComputePriceDeterministic(t *testing.T) {
	first := ComputePrice(249.99, 10)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ComputePrice(249.99, 10))
	}
}

func TestBookingPredicates(t *testing.T) {
	b := &Booking{Status: StatusPending, PaymentStatus: PaymentPending}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeCancelled())
	assert.False(t, b.IsPaid())
	assert.False(t, b.HasTicket())

	code := "tkt"
	b.Status = StatusConfirmed
	b.PaymentStatus = PaymentPaid
	b.TicketCode = &code
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.IsPaid())
	assert.True(t, b.HasTicket())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())
	assert.True(t, b.IsCancelled())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive())
	assert.False(t, b.CanBeCancelled())
}
