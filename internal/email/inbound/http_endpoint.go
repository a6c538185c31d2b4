package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
	"github.com/shandysiswandi/mailadapter/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// SendEmail adapts the request to the configured provider and emits it.
// Responds 204 on success.
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SendEmail(r.Context(), usecase.SendEmailInput{
		Request: req.toEntity(),
		Source:  "http",
	})
}

// Health reports the active provider. Responds 503 when it has no transform.
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	out := h.uc.Health(r.Context())

	return HealthResponse{
		Status:   out.Status,
		Provider: out.Provider.String(),
		Providers: lo.Map(out.Providers, func(p entity.Provider, _ int) string {
			return p.String()
		}),
	}, nil
}
