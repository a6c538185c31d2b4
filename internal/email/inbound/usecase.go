package inbound

import (
	"context"

	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
)

type uc interface {
	SendEmail(ctx context.Context, in usecase.SendEmailInput) error
	Health(ctx context.Context) usecase.HealthOutput
}
