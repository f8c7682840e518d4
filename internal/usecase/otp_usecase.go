package usecase

import "context"

// OTPUsecase is satisfied by *otp.Service.
type OTPUsecase interface {
	Send(ctx context.Context, phone, purpose string) error
	Verify(ctx context.Context, phone, code, purpose string) error
}
