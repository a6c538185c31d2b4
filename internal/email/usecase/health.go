package usecase

import (
	"context"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
)

const (
	HealthStatusUp            = "UP"
	HealthStatusMisconfigured = "MISCONFIGURED"
)

type HealthOutput struct {
	Status    string
	Provider  entity.Provider
	Providers []entity.Provider
}

// Health reports the active provider and whether a transform is registered for it.
func (s *Usecase) Health(ctx context.Context) HealthOutput {
	_, span := s.startSpan(ctx, "Health")
	defer span.End()

	status := HealthStatusUp
	if !s.registry.Has(s.provider) {
		status = HealthStatusMisconfigured
	}

	return HealthOutput{
		Status:    status,
		Provider:  s.provider,
		Providers: s.registry.Providers(),
	}
}
