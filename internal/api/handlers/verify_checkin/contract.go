package verify_checkin

import (
	"context"

	verifyCheckin "github.com/nocta/NCB-BookingService/internal/usecase/verify_checkin"
)

type VerifyCheckInUseCase interface {
	Execute(ctx context.Context, req *verifyCheckin.Request) (*verifyCheckin.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
