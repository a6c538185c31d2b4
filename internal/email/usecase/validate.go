package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goerror"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
)

// ValidateRequest checks the canonical request against its rules and reports
// every violating field at once.
func (s *Usecase) ValidateRequest(ctx context.Context, req entity.EmailRequest) error {
	ctx, span := s.startSpan(ctx, "ValidateRequest")
	defer span.End()

	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	var verr validator.V10ValidationError
	if !errors.As(err, &verr) {
		slog.ErrorContext(ctx, "failed to run request validation", "error", err)
		return goerror.NewServer(err)
	}

	slog.WarnContext(ctx, "email request failed validation", "violations", verr.Values())
	return goerror.NewInvalidInput(verr)
}

func (s *Usecase) validatePayload(ctx context.Context, payload entity.Payload) error {
	err := s.validator.Validate(payload)
	if err == nil {
		return nil
	}

	var verr validator.V10ValidationError
	if !errors.As(err, &verr) {
		slog.ErrorContext(ctx, "failed to run payload validation", "provider", payload.Provider(), "error", err)
		return goerror.NewServer(err)
	}

	slog.WarnContext(ctx, "failed to validate adapted payload", "provider", payload.Provider(), "violations", verr.Values())
	return goerror.NewInvalidOutput(verr)
}
